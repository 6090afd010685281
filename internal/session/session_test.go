package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/mazebroker/internal/market"
	"github.com/samdwyer/mazebroker/internal/world"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultConfig(seed int64) Config {
	return Config{
		Width:  6,
		Height: 6,
		InitialPrices: map[string]int64{
			"FOO": 10000, "BAR": 10000, "BAZ": 10000, "QUZ": 10000,
		},
		InitialCash: 100000,
		Seed:        seed,
	}
}

func newTestSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	s, err := New(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

// moveToVendor teleports the traveler onto the vendor for symbol.
func moveToVendor(t *testing.T, s *Session, symbol string) {
	t.Helper()
	for r := 0; r < s.Maze.Height; r++ {
		for c := 0; c < s.Maze.Width; c++ {
			pos := world.Coord{Row: r, Col: c}
			if s.Maze.HasVendor(pos, symbol) {
				s.Traveler.Position = pos
				return
			}
		}
	}
	t.Fatalf("no vendor for %s in maze", symbol)
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, defaultConfig(1))

	if err := s.Maze.Validate(); err != nil {
		t.Errorf("maze invalid: %v", err)
	}
	if !s.Maze.InBounds(s.Traveler.Position) {
		t.Errorf("traveler at %v is outside the maze", s.Traveler.Position)
	}
	if s.Portfolio.Cash() != 100000 {
		t.Errorf("Cash() = %d, want 100000", s.Portfolio.Cash())
	}
	for _, q := range s.Market.Quotes() {
		if q.Price != 10000 {
			t.Errorf("%s price = %d, want 10000", q.Symbol, q.Price)
		}
		if s.Portfolio.Shares(q.Symbol) != 0 {
			t.Errorf("%s shares = %d, want 0", q.Symbol, s.Portfolio.Shares(q.Symbol))
		}
	}

	vendors := 0
	for r := 0; r < s.Maze.Height; r++ {
		for c := 0; c < s.Maze.Width; c++ {
			vendors += len(s.Maze.Vendors(world.Coord{Row: r, Col: c}))
		}
	}
	if vendors != 4 {
		t.Errorf("maze holds %d vendors, want 4", vendors)
	}
}

func TestNewSessionErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, world.ErrInvalidDimensions},
		{"no assets", func(c *Config) { c.InitialPrices = nil }, market.ErrNoSymbols},
		{"negative cash", func(c *Config) { c.InitialCash = -1 }, market.ErrNegativeCash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(1)
			tt.mutate(&cfg)
			_, err := New(context.Background(), cfg, testLogger())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSessionReproducibility(t *testing.T) {
	s1 := newTestSession(t, defaultConfig(777))
	s2 := newTestSession(t, defaultConfig(777))

	if s1.Maze.String() != s2.Maze.String() {
		t.Fatalf("same seed produced different mazes:\n%s\n%s", s1.Maze, s2.Maze)
	}
	if s1.Traveler.Position != s2.Traveler.Position {
		t.Errorf("start positions differ: %v != %v", s1.Traveler.Position, s2.Traveler.Position)
	}
	if s1.Task.Current() != s2.Task.Current() {
		t.Errorf("objectives differ: %v != %v", s1.Task.Current(), s2.Task.Current())
	}
	ctx := context.Background()
	for _, d := range []world.Direction{world.DirLeft, world.DirUp, world.DirRight, world.DirDown} {
		s1.Move(ctx, d)
		s2.Move(ctx, d)
	}
	if s1.Market.String() != s2.Market.String() {
		t.Errorf("price paths differ:\n%s\n%s", s1.Market, s2.Market)
	}
}

func TestMoveTicksMarketEveryAttempt(t *testing.T) {
	cfg := defaultConfig(3)
	cfg.Width, cfg.Height = 1, 1
	s := newTestSession(t, cfg)
	ctx := context.Background()

	// Every move in a 1x1 maze is blocked but still ticks.
	for i := 0; i < 30; i++ {
		if s.Move(ctx, world.DirUp) {
			t.Fatal("Move() in a 1x1 maze = true, want false")
		}
	}
	if s.Moves() != 30 {
		t.Errorf("Moves() = %d, want 30", s.Moves())
	}
	changed := false
	for _, q := range s.Market.Quotes() {
		if q.Price != 10000 {
			changed = true
		}
	}
	if !changed {
		t.Error("30 move attempts left every price unchanged")
	}
}

func TestTradeRequiresVendor(t *testing.T) {
	s := newTestSession(t, defaultConfig(11))
	ctx := context.Background()

	// Find a cell without a FOO vendor.
	for r := 0; r < s.Maze.Height; r++ {
		for c := 0; c < s.Maze.Width; c++ {
			pos := world.Coord{Row: r, Col: c}
			if !s.Maze.HasVendor(pos, "FOO") {
				s.Traveler.Position = pos
			}
		}
	}

	_, err := s.Buy(ctx, "FOO")
	if !errors.Is(err, ErrNoVendor) {
		t.Fatalf("Buy() away from vendor error = %v, want ErrNoVendor", err)
	}
	if s.Portfolio.Cash() != 100000 || s.Portfolio.Shares("FOO") != 0 {
		t.Errorf("rejected trade changed portfolio")
	}
}

func TestTradeFulfilsObjective(t *testing.T) {
	s := newTestSession(t, defaultConfig(5))
	ctx := context.Background()

	obj := s.Task.Current()
	moveToVendor(t, s, obj.Symbol)
	if !obj.IsBuy {
		// Need a share to sell first; buying does not match a sell objective.
		done, err := s.Buy(ctx, obj.Symbol)
		if err != nil || done {
			t.Fatalf("Buy() = %v, %v; want false, nil", done, err)
		}
	}

	var (
		done bool
		err  error
	)
	if obj.IsBuy {
		done, err = s.Buy(ctx, obj.Symbol)
	} else {
		done, err = s.Sell(ctx, obj.Symbol)
	}
	if err != nil {
		t.Fatalf("trade error = %v", err)
	}
	if !done {
		t.Error("trade matching the objective did not complete it")
	}
	if s.Task.Completed() != 1 {
		t.Errorf("Completed() = %d, want 1", s.Task.Completed())
	}
}

func TestTradeRejectedLeavesObjective(t *testing.T) {
	s := newTestSession(t, defaultConfig(9))
	ctx := context.Background()
	moveToVendor(t, s, "FOO")

	before := s.Task.Current()
	_, err := s.Sell(ctx, "FOO")
	if !errors.Is(err, market.ErrInsufficientHoldings) {
		t.Fatalf("Sell() with no shares error = %v, want ErrInsufficientHoldings", err)
	}
	if s.Task.Current() != before || s.Task.Completed() != 0 {
		t.Error("rejected trade touched the objective")
	}
}

func TestSessionSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	s := newTestSession(t, defaultConfig(21))
	ctx := context.Background()
	s.Move(ctx, world.DirLeft)
	moveToVendor(t, s, "BAR")
	s.Buy(ctx, "BAR")

	seen := make(map[string]bool)
	for _, span := range sr.Ended() {
		seen[span.Name()] = true
	}
	for _, name := range []string{"session.new", "maze.generate", "session.move", "session.trade"} {
		if !seen[name] {
			t.Errorf("span %q not recorded", name)
		}
	}
}
