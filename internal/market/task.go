package market

import (
	"math/rand"
	"time"
)

// Objective is a required buy or sell of a single asset.
type Objective struct {
	Symbol string
	IsBuy  bool
}

// Matches reports whether a trade of amount shares of symbol satisfies the
// objective. Any non-zero size in the right direction counts.
func (o Objective) Matches(symbol string, amount int64) bool {
	if symbol != o.Symbol || amount == 0 {
		return false
	}
	return (amount > 0) == o.IsBuy
}

// String returns "Buy SYM" or "Sell SYM".
func (o Objective) String() string {
	if o.IsBuy {
		return "Buy " + o.Symbol
	}
	return "Sell " + o.Symbol
}

// Task holds the current objective and replaces it once fulfilled.
type Task struct {
	symbols   []string
	rng       *rand.Rand
	current   Objective
	completed int
}

// NewTask picks a first random objective over symbols.
func NewTask(symbols []string, rng *rand.Rand) (*Task, error) {
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	t := &Task{
		symbols: append([]string(nil), symbols...),
		rng:     rng,
	}
	t.Reroll()
	return t, nil
}

// Reroll replaces the objective with a uniformly random direction and asset.
func (t *Task) Reroll() {
	t.current = Objective{
		IsBuy:  t.rng.Intn(2) == 0,
		Symbol: t.symbols[t.rng.Intn(len(t.symbols))],
	}
}

// Current returns the active objective.
func (t *Task) Current() Objective {
	return t.current
}

// Completed returns how many objectives have been fulfilled.
func (t *Task) Completed() int {
	return t.completed
}

// MaybeFulfil checks a completed trade against the objective. On a match a
// new objective is installed and true is returned; otherwise nothing changes.
func (t *Task) MaybeFulfil(symbol string, amount int64) bool {
	if !t.current.Matches(symbol, amount) {
		return false
	}
	t.completed++
	t.Reroll()
	return true
}
