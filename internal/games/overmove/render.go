package overmove

import (
	"fmt"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/overmove/internal/core"
	"github.com/vovakirdan/overmove/internal/games/overmove/core"
	"github.com/vovakirdan/overmove/internal/games/overmove/levels/formats"
)

const (
	hudHeight    = 2
	footerHeight = 4 // Gap, move row, memory row, controls
	maxCellW     = 6
	maxCellH     = 3
)

var (
	colorPlayer = platformcore.ColorBrightCyan
	colorGoal   = platformcore.ColorGreen
	colorHazard = platformcore.ColorRed
)

// layout holds the board geometry for the current screen size.
type layout struct {
	cellW    int
	cellH    int
	board    platformcore.Rect // Including the border
	tooSmall bool
}

// computeLayout fits the grid to the screen, scaling cells between the
// minimum 2x1 and maxCellW x maxCellH characters.
func computeLayout(b core.Bounds, screenW, screenH int) layout {
	availW := screenW - 4
	availH := screenH - hudHeight - footerHeight - 2

	var l layout
	if b.Cols > 0 && b.Rows > 0 {
		l.cellW = platformcore.Min(availW/b.Cols, maxCellW)
		l.cellH = platformcore.Min(availH/b.Rows, maxCellH)
	}
	if l.cellW < 2 || l.cellH < 1 {
		l.tooSmall = true
		return l
	}

	w := b.Cols*l.cellW + 2
	h := b.Rows*l.cellH + 2
	l.board = platformcore.NewRect((screenW-w)/2, hudHeight, w, h)
	return l
}

// cellRect returns the screen area of grid cell p.
func (l layout) cellRect(p core.Pos) platformcore.Rect {
	return platformcore.NewRect(l.board.X+1+p.X*l.cellW, l.board.Y+1+p.Y*l.cellH, l.cellW, l.cellH)
}

// Render draws the session to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.layout.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)
	g.renderRows(dst)

	switch g.mode {
	case ModeVictory:
		g.renderOverlay(dst, "Level complete!", fmt.Sprintf("%d moves", g.engine.MovesPlayed()))
	case ModeDefeat:
		g.renderOverlay(dst, "Run lost", g.engine.Cause().String())
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" OverMove | %s | Attempt %d", g.level.Name, g.attempts)
	if g.engine != nil {
		hud += fmt.Sprintf(" | Step %d/%d", g.engine.Step(), core.MaxMoves)
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
}

// renderBoard draws the grid, the hints and the moving cells.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	l := g.layout
	bounds := g.level.Def.Bounds()

	dst.DrawBox(l.board, platformcore.ColorGray)
	for y := 0; y < bounds.Rows; y++ {
		for x := 0; x < bounds.Cols; x++ {
			cx, cy := l.cellRect(core.P(x, y)).Center()
			dst.SetWithColor(cx, cy, '·', platformcore.ColorGray)
		}
	}

	for _, h := range g.level.Hints {
		g.renderHint(dst, h)
	}

	goal, hazards, player := g.cells()
	g.fillCell(dst, goal, colorGoal)
	for _, h := range hazards {
		g.fillCell(dst, h, colorHazard)
	}
	g.fillCell(dst, player, colorPlayer)
}

// fillCell paints a grid cell solid. Cells off the grid are skipped.
func (g *Game) fillCell(dst *platformcore.Screen, p core.Pos, c platformcore.Color) {
	if !g.level.Def.Bounds().Contains(p) {
		return
	}
	dst.FillRect(g.layout.cellRect(p), platformcore.Cell{Rune: '█', Color: c})
}

// renderHint draws a hint glyph inside its cell, pushed toward its side.
func (g *Game) renderHint(dst *platformcore.Screen, h formats.Hint) {
	if !g.level.Def.Bounds().Contains(h.Pos) {
		return
	}
	r, _ := utf8.DecodeRuneInString(h.Glyph)
	if r == utf8.RuneError {
		return
	}
	color, ok := platformcore.ParseColor(h.Color)
	if !ok {
		color = platformcore.ColorWhite
	}

	rect := g.layout.cellRect(h.Pos)
	x, y := rect.Center()
	switch h.Side {
	case formats.SideLeft:
		x = rect.X
	case formats.SideRight:
		x = rect.Right() - 1
	case formats.SideUp:
		y = rect.Y
	case formats.SideDown:
		y = rect.Bottom() - 1
	}
	dst.SetWithColor(x, y, r, color)
}

// renderRows draws the move queue, the memory row and the controls.
func (g *Game) renderRows(dst *platformcore.Screen) {
	y := g.layout.board.Bottom() + 1
	x := g.layout.board.X

	dst.DrawTextWithColor(x, y, "Moves : ", platformcore.ColorGray)
	current := -1
	moves := g.queue
	if g.engine != nil && g.mode == ModeRunning {
		current = g.engine.LastMove()
	}
	g.renderPath(dst, x+8, y, moves, current, platformcore.ColorBrightYellow)
	count := fmt.Sprintf("%d/%d", len(moves), core.MaxMoves)
	dst.DrawTextWithColor(g.layout.board.Right()-len(count), y, count, platformcore.ColorGray)

	dst.DrawTextWithColor(x, y+1, "Memory: ", platformcore.ColorGray)
	if g.note != "" {
		dst.DrawTextWithColor(x+8, y+1, g.note, platformcore.ColorYellow)
	} else {
		g.renderPath(dst, x+8, y+1, g.memory, g.highlight, platformcore.ColorRed)
	}

	var controls string
	switch g.mode {
	case ModeInput:
		controls = " Arrows: Queue | Backspace: Undo | Enter: Run | A: Solve | R: Clear | Esc: Menu"
	default:
		controls = " Esc: Menu | Q: Quit"
	}
	dst.DrawTextWithColor(0, dst.Height()-1, controls, platformcore.ColorGray)
}

// renderPath draws glyphs separated by spaces, highlighting index hl.
func (g *Game) renderPath(dst *platformcore.Screen, x, y int, p core.Path, hl int, hlColor platformcore.Color) {
	for i, d := range p {
		cell := platformcore.Cell{Rune: d.Glyph(), Color: platformcore.ColorWhite}
		if i == hl {
			cell = platformcore.Cell{Rune: d.Glyph(), Color: hlColor, Reverse: true}
		}
		dst.SetCell(x+i*2, y, cell)
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := platformcore.Max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 6
	screen := platformcore.NewRect(0, 0, dst.Width(), dst.Height())
	box := screen.Centered(w, 5)

	dst.FillRect(box, platformcore.Cell{Rune: ' '})
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorGray)
}
