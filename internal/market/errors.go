package market

import "errors"

// Sentinel errors for trade and construction failures.
// Gameplay code that only needs a yes/no answer uses the Maybe* wrappers.
var (
	ErrNoSymbols            = errors.New("no_symbols")
	ErrNegativePrice        = errors.New("negative_price")
	ErrNegativeCash         = errors.New("negative_cash")
	ErrUnknownSymbol        = errors.New("unknown_symbol")
	ErrInsufficientHoldings = errors.New("insufficient_holdings")
	ErrInsufficientCash     = errors.New("insufficient_cash")
	ErrTradeTooLarge        = errors.New("trade_too_large")
)
