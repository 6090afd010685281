package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazebroker/internal/market"
	"github.com/samdwyer/mazebroker/internal/session"
	"github.com/samdwyer/mazebroker/internal/telemetry"
	"github.com/samdwyer/mazebroker/internal/ui"
)

// Game drives a session from terminal input.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *session.Session
	logger   *slog.Logger
	state    State
	selected int // vendor index at the current cell while trading
	message  string
	running  bool
}

// New opens the terminal and creates a game around sess.
func New(sess *session.Session, logger *slog.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newGame(screen, sess, logger), nil
}

func newGame(screen *ui.Screen, sess *session.Session, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		session:  sess,
		logger:   logger,
		state:    StateExplore,
		message:  "Use WASD to move. Find traders to buy/sell.",
		running:  true,
	}
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	defer span.End()

	for g.running {
		// Render current state
		g.render()

		// Handle input (blocking)
		g.handleInput(ctx)
	}

	span.SetAttributes(
		attribute.Int("game.moves", g.session.Moves()),
		attribute.Int("game.objectives_completed", g.session.Task.Completed()),
		attribute.Int64("game.final_cash", g.session.Portfolio.Cash()),
	)
	g.logger.Info("game over",
		slog.Int("moves", g.session.Moves()),
		slog.Int("objectives_completed", g.session.Task.Completed()),
		slog.Int64("cash", g.session.Portfolio.Cash()),
	)

	// Cleanup
	g.screen.Close()
	return nil
}

func (g *Game) render() {
	g.renderer.Render(g.session.View(), ui.HUD{
		Trading:  g.state == StateTrade,
		Selected: g.selected,
		Message:  g.message,
	})
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.apply(ctx, keyAction(ev.Key(), ev.Rune()))
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// apply performs one action against the session.
func (g *Game) apply(ctx context.Context, a Action) {
	switch a {
	case ActionQuit:
		g.running = false
		return
	case ActionBack:
		if g.state == StateTrade {
			g.state = StateExplore
			g.message = ""
			return
		}
		g.running = false
		return
	case ActionToggleTrade:
		g.toggleTrade()
		return
	}

	if g.state == StateTrade {
		g.applyTrade(ctx, a)
		return
	}

	if d, ok := a.direction(); ok {
		if g.session.Move(ctx, d) {
			g.message = ""
		} else {
			g.message = "A wall blocks the way."
		}
	}
}

func (g *Game) toggleTrade() {
	if g.state == StateTrade {
		g.state = StateExplore
		g.message = ""
		return
	}
	if len(g.session.Traveler.VendorsHere()) == 0 {
		g.message = "No vendors here."
		return
	}
	g.state = StateTrade
	g.selected = 0
	g.message = ""
}

func (g *Game) applyTrade(ctx context.Context, a Action) {
	vendors := g.session.Traveler.VendorsHere()
	if len(vendors) == 0 {
		g.state = StateExplore
		return
	}
	if g.selected >= len(vendors) {
		g.selected = len(vendors) - 1
	}

	switch a {
	case ActionMoveUp:
		g.selected = (g.selected + len(vendors) - 1) % len(vendors)
	case ActionMoveDown:
		g.selected = (g.selected + 1) % len(vendors)
	case ActionBuy, ActionSell:
		symbol := vendors[g.selected]
		verb, trade := "Bought", g.session.Buy
		if a == ActionSell {
			verb, trade = "Sold", g.session.Sell
		}
		completed, err := trade(ctx, symbol)
		g.message = tradeMessage(verb, symbol, completed, err)
	}
}

// tradeMessage renders the outcome of a one-share trade for the status line.
func tradeMessage(verb, symbol string, completed bool, err error) string {
	switch {
	case errors.Is(err, market.ErrInsufficientHoldings):
		return fmt.Sprintf("You hold no %s to sell.", symbol)
	case errors.Is(err, market.ErrInsufficientCash):
		return fmt.Sprintf("Not enough cash for %s.", symbol)
	case err != nil:
		return fmt.Sprintf("Cannot trade %s here.", symbol)
	case completed:
		return fmt.Sprintf("%s 1 %s. Objective complete!", verb, symbol)
	default:
		return fmt.Sprintf("%s 1 %s.", verb, symbol)
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
