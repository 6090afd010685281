package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazebroker/internal/market"
	"github.com/samdwyer/mazebroker/internal/session"
	"github.com/samdwyer/mazebroker/internal/world"
)

// Layout of the panels, in screen cells.
const (
	viewX     = 2
	viewY     = 2
	cellW     = 10 // columns per neighbourhood slot
	cellH     = 2  // rows per neighbourhood slot
	panelX    = 56
	HelpLine  = "WASD/arrows move  t trade  q quit"
	TradeHelp = "up/down select  b buy  x sell  esc back"
)

// HUD is controller state drawn alongside the session view.
type HUD struct {
	Trading  bool
	Selected int // index into View.Here while trading
	Message  string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the maze view, market, portfolio, objective and trade panels.
func (r *Renderer) Render(v session.View, hud HUD) {
	r.screen.Clear()

	r.text(viewX, 0, "Maze view", headingStyle())
	r.renderNeighbourhood(v)
	r.renderMarket(v)
	r.renderTrade(v, hud)

	_, h := r.screen.Size()
	help := HelpLine
	if hud.Trading {
		help = TradeHelp
	}
	r.text(0, h-2, hud.Message, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.text(0, h-1, help, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))

	r.screen.Show()
}

// renderNeighbourhood draws the 3x3 view plus far-look slots on a 5x5 layout.
func (r *Renderer) renderNeighbourhood(v session.View) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			tile := v.Near[dr+1][dc+1]
			label := string(tile.Rune())
			if dr == 0 && dc == 0 && len(v.Here) > 0 {
				label = string(tile.Rune()) + string(world.TileVendor.Rune())
			}
			r.slot(dr, dc, label, r.getTileStyle(tile))
		}
	}

	for _, d := range world.AllDirections {
		far := v.Far[d]
		delta := d.Delta()
		label := string(world.TileUnknown.Rune())
		if far.Known {
			label = string(world.TileOpen.Rune())
			if len(far.Vendors) > 0 {
				label = strings.Join(far.Vendors, ",")
			}
		}
		r.slot(2*delta.Row, 2*delta.Col, label, vendorStyle())
	}
}

// slot draws label in the layout slot at (dr, dc), clipped to the slot width.
func (r *Renderer) slot(dr, dc int, label string, style tcell.Style) {
	if runes := []rune(label); len(runes) > cellW-1 {
		label = string(runes[:cellW-1])
	}
	x := viewX + (dc+2)*cellW
	y := viewY + (dr+2)*cellH
	r.text(x, y, label, style)
}

func (r *Renderer) renderMarket(v session.View) {
	y := 0
	r.text(panelX, y, "Current objective:", headingStyle())
	y++
	r.text(panelX, y, fmt.Sprintf("%s  (done: %d)", v.Objective, v.Completed), tcell.StyleDefault.Foreground(tcell.ColorYellow))
	y += 2

	r.text(panelX, y, "Your assets:", headingStyle())
	y++
	r.text(panelX, y, "$"+market.FormatCents(v.Cash), tcell.StyleDefault)
	y++
	for _, h := range v.Holdings {
		r.text(panelX, y, fmt.Sprintf("%d share(s) of %s", h.Shares, h.Symbol), tcell.StyleDefault)
		y++
	}
	y++

	r.text(panelX, y, "Current stock prices:", headingStyle())
	y++
	for _, q := range v.Quotes {
		r.text(panelX, y, fmt.Sprintf("%s: %s", q.Symbol, market.FormatCents(q.Price)), tcell.StyleDefault)
		y++
	}
}

func (r *Renderer) renderTrade(v session.View, hud HUD) {
	y := viewY + 5*cellH + 1
	if len(v.Here) == 0 {
		r.text(viewX, y, "No vendors here.", tcell.StyleDefault.Foreground(tcell.ColorGray))
		return
	}
	r.text(viewX, y, "Vendors:", headingStyle())
	for i, symbol := range v.Here {
		style := tcell.StyleDefault
		marker := "  "
		if hud.Trading && i == hud.Selected {
			style = style.Reverse(true)
			marker = "> "
		}
		line := marker + symbol
		if name := v.Names[symbol]; name != "" {
			line += "  " + name
		}
		r.text(viewX, y+1+i, line, style)
	}
}

// text writes s starting at (x, y), one rune per cell.
func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileOpen:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TilePlayer:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

func headingStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
}

func vendorStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorGreen)
}
