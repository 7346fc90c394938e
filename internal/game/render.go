package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/gift-runner/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar  = '█'
	PresentChar = '▣'
	GroundChar  = '═'
	SnowChar    = '·'
)

// obstacleStyles maps an obstacle variant to its look.
var obstacleStyles = []struct {
	char  rune
	color core.Color
}{
	{'▲', core.ColorGreen},      // tree
	{'▓', core.ColorGray},       // rock
	{'♣', core.ColorBrightGreen}, // bush
}

// ObstacleLook returns the glyph and color of an obstacle variant.
func ObstacleLook(variant int) (rune, core.Color) {
	if variant < 0 {
		variant = -variant
	}
	style := obstacleStyles[variant%len(obstacleStyles)]
	return style.char, style.color
}

// cellMapper converts world coordinates to screen cells.
// Row 0 is reserved for the HUD.
type cellMapper struct {
	sx, sy float64
}

func newCellMapper(snap Snapshot, dst *core.Screen) cellMapper {
	worldRows := core.Max(dst.Height()-1, 1)
	return cellMapper{
		sx: float64(dst.Width()) / snap.ViewportW,
		sy: float64(worldRows) / snap.ViewportH,
	}
}

func (m cellMapper) col(x float64) int { return int(math.Floor(x * m.sx)) }
func (m cellMapper) row(y float64) int { return 1 + int(math.Floor(y*m.sy)) }

// span returns the cell rectangle covering a world rectangle, at least one cell big.
func (m cellMapper) span(r core.Rect) (x, y, w, h int) {
	x, y = m.col(r.X), m.row(r.Y)
	x1 := core.Max(x+1, int(math.Ceil(r.Right()*m.sx)))
	y1 := core.Max(y+1, 1+int(math.Ceil(r.Bottom()*m.sy)))
	return x, y, x1 - x, y1 - y
}

// groundRow returns the screen row of the ground line.
func (m cellMapper) groundRow(snap Snapshot) int {
	return 1 + int(math.Ceil(snap.GroundY*m.sy))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(g.Snapshot(), dst)
}

// RenderSnapshot draws a snapshot scaled to the screen size.
func RenderSnapshot(snap Snapshot, dst *core.Screen) {
	dst.Clear()
	m := newCellMapper(snap, dst)
	ground := m.groundRow(snap)

	drawSnow(dst, m, snap, ground)
	dst.DrawHLine(0, ground, dst.Width(), GroundChar, core.ColorWhite)

	for _, o := range snap.Obstacles {
		char, color := ObstacleLook(o.Variant)
		x, y, w, h := m.span(o.Rect())
		dst.FillRect(x, y, w, h, char, color)
	}

	for _, p := range snap.Presents {
		x, y, w, h := m.span(p.Rect())
		dst.FillRect(x, y, w, h, PresentChar, core.ColorBrightYellow)
	}

	x, y, w, h := m.span(snap.Player.Rect())
	dst.FillRect(x, y, w, h, PlayerChar, core.ColorRed)

	drawHUD(dst, snap)

	switch snap.State {
	case StateMenu:
		drawCenteredMessage(dst, core.ColorBrightWhite,
			"GIFT RUNNER",
			"Type your name and press Enter",
			"Space jump  A/D move  P pause")
	case StatePaused:
		drawCenteredMessage(dst, core.ColorCyan, "GAME PAUSED", "Press P to resume")
	case StateGameOver:
		lines := []string{"GAME OVER", fmt.Sprintf("Final Score: %d", snap.Score)}
		if snap.NewBest {
			lines = append(lines, "New high score!")
		}
		lines = append(lines, "Press R to restart")
		drawCenteredMessage(dst, core.ColorBrightRed, lines...)
	}
}

// drawSnow draws a drifting snow pattern tied to the background offset.
func drawSnow(dst *core.Screen, m cellMapper, snap Snapshot, ground int) {
	shift := m.col(-snap.Background)
	for y := 2; y < ground; y += 3 {
		for x := 0; x < dst.Width(); x++ {
			if (x+shift+y*5)%13 == 0 {
				dst.SetColor(x, y, SnowChar, core.ColorGray)
			}
		}
	}
}

// drawHUD renders score, best and level on the top row.
func drawHUD(dst *core.Screen, snap Snapshot) {
	left := fmt.Sprintf(" Score: %d  High Score: %d ", snap.Score, snap.HighScore)
	dst.DrawTextColor(0, 0, left, core.ColorBrightWhite)

	right := fmt.Sprintf(" Lv %d ", snap.Difficulty)
	if snap.PlayerName != "" {
		right = fmt.Sprintf(" %s  Lv %d ", snap.PlayerName, snap.Difficulty)
	}
	dst.DrawTextColor(dst.Width()-len([]rune(right)), 0, right, core.ColorYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}

	boxW := width + 4
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, c)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawTextColor(x, boxY+1+i, l, c)
	}
}
