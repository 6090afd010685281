package market

import (
	"fmt"
	"math"
	"strings"
)

// Holding is the share count of one asset.
type Holding struct {
	Symbol string
	Shares int64
}

// Portfolio is the player's cash and share counts, priced against a market.
// Cash and every share count stay non-negative.
type Portfolio struct {
	market *Stockmarket
	cash   int64
	shares map[string]int64
}

// NewPortfolio starts with initialCash and zero shares of every asset.
func NewPortfolio(market *Stockmarket, initialCash int64) (*Portfolio, error) {
	if initialCash < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCash, initialCash)
	}
	shares := make(map[string]int64)
	for _, symbol := range market.Symbols() {
		shares[symbol] = 0
	}
	return &Portfolio{
		market: market,
		cash:   initialCash,
		shares: shares,
	}, nil
}

// Trade buys (amount > 0) or sells (amount < 0) shares of symbol at the
// current market price. A failed trade changes nothing.
func (p *Portfolio) Trade(symbol string, amount int64) error {
	price, ok := p.market.Price(symbol)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}
	held := p.shares[symbol]
	if amount > 0 && held > math.MaxInt64-amount {
		return fmt.Errorf("%w: %d more %s on top of %d", ErrTradeTooLarge, amount, symbol, held)
	}
	if amount+held < 0 {
		return fmt.Errorf("%w: hold %d %s, asked to sell %d", ErrInsufficientHoldings, held, symbol, -amount)
	}
	// A buy whose cost does not fit in int64 costs more than any balance.
	if price != 0 && amount > math.MaxInt64/price {
		return fmt.Errorf("%w: %d %s at %s", ErrInsufficientCash, amount, symbol, FormatCents(price))
	}
	// Negative for a sell; held bounds a sell so only the proceeds can overflow.
	if price != 0 && amount < math.MinInt64/price {
		return fmt.Errorf("%w: proceeds of %d %s", ErrTradeTooLarge, -amount, symbol)
	}
	cost := price * amount
	if cost < 0 && p.cash > math.MaxInt64+cost {
		return fmt.Errorf("%w: proceeds of %s on %s cash", ErrTradeTooLarge, FormatCents(-cost), FormatCents(p.cash))
	}
	if p.cash-cost < 0 {
		return fmt.Errorf("%w: need %s, have %s", ErrInsufficientCash, FormatCents(cost), FormatCents(p.cash))
	}

	p.shares[symbol] = held + amount
	p.cash -= cost
	return nil
}

// MaybeTrade is Trade reporting only whether it succeeded.
func (p *Portfolio) MaybeTrade(symbol string, amount int64) bool {
	return p.Trade(symbol, amount) == nil
}

// Cash returns the cash balance in minor units.
func (p *Portfolio) Cash() int64 {
	return p.cash
}

// Shares returns the number of shares held of symbol.
func (p *Portfolio) Shares(symbol string) int64 {
	return p.shares[symbol]
}

// Holdings returns every share count in ascending symbol order.
func (p *Portfolio) Holdings() []Holding {
	symbols := p.market.Symbols()
	out := make([]Holding, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, Holding{Symbol: s, Shares: p.shares[s]})
	}
	return out
}

// String renders cash then one "N share(s) of SYM" line per asset.
func (p *Portfolio) String() string {
	lines := []string{"$" + FormatCents(p.cash)}
	for _, h := range p.Holdings() {
		lines = append(lines, fmt.Sprintf("%d share(s) of %s", h.Shares, h.Symbol))
	}
	return strings.Join(lines, "\n")
}
