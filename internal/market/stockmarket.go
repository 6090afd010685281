package market

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/btree"
)

const (
	// Sigma is the standard deviation of the per-tick price factor.
	// About 95% of ticks move a price by less than 2*Sigma.
	Sigma = 0.025

	degree = 8
)

// Quote is the current price of one asset in minor units.
type Quote struct {
	Symbol string
	Price  int64
}

func quoteLess(a, b Quote) bool { return a.Symbol < b.Symbol }

// Stockmarket holds one price per asset. Each tick multiplies every price by
// an independent N(1, Sigma) sample, truncates toward zero and floors at 0.
type Stockmarket struct {
	prices *btree.BTreeG[Quote]
	rng    *rand.Rand
}

// NewStockmarket copies initial into a new market. A nil rng is replaced
// with a time-seeded source.
func NewStockmarket(initial map[string]int64, rng *rand.Rand) (*Stockmarket, error) {
	if len(initial) == 0 {
		return nil, ErrNoSymbols
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	prices := btree.NewG[Quote](degree, quoteLess)
	for symbol, price := range initial {
		if price < 0 {
			return nil, fmt.Errorf("%w: %s at %d", ErrNegativePrice, symbol, price)
		}
		prices.ReplaceOrInsert(Quote{Symbol: symbol, Price: price})
	}
	return &Stockmarket{prices: prices, rng: rng}, nil
}

// Price returns the current price of symbol.
func (s *Stockmarket) Price(symbol string) (int64, bool) {
	q, ok := s.prices.Get(Quote{Symbol: symbol})
	return q.Price, ok
}

// Quotes returns all prices in ascending symbol order.
func (s *Stockmarket) Quotes() []Quote {
	out := make([]Quote, 0, s.prices.Len())
	s.prices.Ascend(func(q Quote) bool {
		out = append(out, q)
		return true
	})
	return out
}

// Symbols returns the asset names in ascending order.
func (s *Stockmarket) Symbols() []string {
	out := make([]string, 0, s.prices.Len())
	s.prices.Ascend(func(q Quote) bool {
		out = append(out, q.Symbol)
		return true
	})
	return out
}

// RandomUpdate applies one tick to every asset. Assets are visited in
// symbol order so a seeded source reproduces the same price path.
func (s *Stockmarket) RandomUpdate() {
	updated := s.Quotes()
	for i := range updated {
		factor := 1 + Sigma*s.rng.NormFloat64()
		updated[i].Price = applyFactor(updated[i].Price, factor)
	}
	for _, q := range updated {
		s.prices.ReplaceOrInsert(q)
	}
}

// applyFactor scales price by factor, truncating toward zero, never below 0.
func applyFactor(price int64, factor float64) int64 {
	p := int64(factor * float64(price))
	if p < 0 {
		return 0
	}
	return p
}

// String lists prices one per line, e.g. "FOO: 100.00".
func (s *Stockmarket) String() string {
	lines := make([]string, 0, s.prices.Len())
	for _, q := range s.Quotes() {
		lines = append(lines, fmt.Sprintf("%s: %s", q.Symbol, FormatCents(q.Price)))
	}
	return strings.Join(lines, "\n")
}
