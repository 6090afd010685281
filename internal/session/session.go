// Package session composes the maze, traveler, market, portfolio and task
// into one game session and exposes the actions a front end can take.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazebroker/internal/entity"
	"github.com/samdwyer/mazebroker/internal/market"
	"github.com/samdwyer/mazebroker/internal/telemetry"
	"github.com/samdwyer/mazebroker/internal/world"
)

// ErrNoVendor is returned when trading an asset with no vendor at the
// traveler's cell.
var ErrNoVendor = errors.New("no_vendor_here")

// Session is the single source of truth for one game.
type Session struct {
	ID        uuid.UUID
	Maze      *world.Maze
	Traveler  *entity.Traveler
	Market    *market.Stockmarket
	Portfolio *market.Portfolio
	Task      *market.Task

	names  map[string]string
	logger *slog.Logger
	moves  int
}

// New builds a session from cfg. All randomness is drawn from one source
// seeded by cfg.Seed.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Session, error) {
	tracer := telemetry.Tracer("session")
	ctx, span := tracer.Start(ctx, "session.new")
	defer span.End()

	if logger == nil {
		logger = slog.Default()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	stocks, err := market.NewStockmarket(cfg.InitialPrices, rng)
	if err != nil {
		return nil, fmt.Errorf("creating stockmarket: %w", err)
	}
	symbols := stocks.Symbols()

	maze, err := world.NewMaze(ctx, cfg.Width, cfg.Height, rng)
	if err != nil {
		return nil, fmt.Errorf("creating maze: %w", err)
	}
	for _, s := range symbols {
		pos := maze.AddVendor(s)
		logger.Debug("vendor placed", slog.String("symbol", s), slog.Int("row", pos.Row), slog.Int("col", pos.Col))
	}

	portfolio, err := market.NewPortfolio(stocks, cfg.InitialCash)
	if err != nil {
		return nil, fmt.Errorf("creating portfolio: %w", err)
	}
	task, err := market.NewTask(symbols, rng)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s := &Session{
		ID:        uuid.New(),
		Maze:      maze,
		Traveler:  entity.NewTraveler(maze),
		Market:    stocks,
		Portfolio: portfolio,
		Task:      task,
		names:     make(map[string]string, len(cfg.AssetNames)),
	}
	for k, n := range cfg.AssetNames {
		s.names[k] = n
	}
	s.logger = logger.With(slog.String("session", s.ID.String()))

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int64("session.seed", seed),
		attribute.Int("maze.width", cfg.Width),
		attribute.Int("maze.height", cfg.Height),
		attribute.Int("market.assets", len(symbols)),
	)
	s.logger.Info("session started",
		slog.Int64("seed", seed),
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.String("objective", task.Current().String()),
	)
	return s, nil
}

// Move tries to step the traveler in direction d and then ticks the market
// once, whether or not the step was blocked. Standing still never moves prices.
func (s *Session) Move(ctx context.Context, d world.Direction) bool {
	tracer := telemetry.Tracer("session")
	_, span := tracer.Start(ctx, "session.move")
	defer span.End()

	moved := s.Traveler.MaybeMove(d)
	s.Market.RandomUpdate()
	s.moves++

	pos := s.Traveler.Position
	span.SetAttributes(
		attribute.String("direction", d.String()),
		attribute.Bool("moved", moved),
		attribute.Int("row", pos.Row),
		attribute.Int("col", pos.Col),
	)
	s.logger.Debug("move",
		slog.String("direction", d.String()),
		slog.Bool("moved", moved),
		slog.Int("row", pos.Row),
		slog.Int("col", pos.Col),
	)
	return moved
}

// Trade buys (amount > 0) or sells (amount < 0) shares of symbol at the
// traveler's cell. On success the objective is checked; completed reports
// whether it was fulfilled by this trade.
func (s *Session) Trade(ctx context.Context, symbol string, amount int64) (completed bool, err error) {
	tracer := telemetry.Tracer("session")
	_, span := tracer.Start(ctx, "session.trade")
	defer span.End()
	span.SetAttributes(
		attribute.String("symbol", symbol),
		attribute.Int64("amount", amount),
	)

	if !s.Traveler.CanTrade(symbol) {
		err = fmt.Errorf("%w: %s", ErrNoVendor, symbol)
	} else {
		err = s.Portfolio.Trade(symbol, amount)
	}
	if err != nil {
		span.SetAttributes(attribute.Bool("ok", false))
		s.logger.Debug("trade rejected",
			slog.String("symbol", symbol),
			slog.Int64("amount", amount),
			slog.String("reason", err.Error()),
		)
		return false, err
	}

	completed = s.Task.MaybeFulfil(symbol, amount)
	span.SetAttributes(
		attribute.Bool("ok", true),
		attribute.Bool("objective_completed", completed),
	)
	s.logger.Debug("trade",
		slog.String("symbol", symbol),
		slog.Int64("amount", amount),
		slog.Int64("cash", s.Portfolio.Cash()),
		slog.Int64("shares", s.Portfolio.Shares(symbol)),
	)
	if completed {
		s.logger.Info("objective completed",
			slog.Int("completed", s.Task.Completed()),
			slog.String("next", s.Task.Current().String()),
		)
	}
	return completed, nil
}

// Buy trades one share of symbol.
func (s *Session) Buy(ctx context.Context, symbol string) (bool, error) {
	return s.Trade(ctx, symbol, 1)
}

// Sell trades one share of symbol back.
func (s *Session) Sell(ctx context.Context, symbol string) (bool, error) {
	return s.Trade(ctx, symbol, -1)
}

// Moves returns the number of move attempts so far.
func (s *Session) Moves() int {
	return s.moves
}
