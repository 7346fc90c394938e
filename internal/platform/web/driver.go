//go:build js && wasm

package web

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/gift-runner/internal/core"
	"github.com/vovakirdan/gift-runner/internal/game"
)

// Glyph size of the ebitenutil debug font.
const (
	glyphW = 6
	glyphH = 16
)

// keyBindings lists the keys of each action. Browsers report real key-up
// events, so held actions need no latch here.
var keyBindings = map[core.Action][]ebiten.Key{
	core.ActionJump:    {ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp},
	core.ActionLeft:    {ebiten.KeyA, ebiten.KeyArrowLeft},
	core.ActionRight:   {ebiten.KeyD, ebiten.KeyArrowRight},
	core.ActionPause:   {ebiten.KeyP, ebiten.KeyEscape},
	core.ActionRestart: {ebiten.KeyR},
	core.ActionConfirm: {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
}

// Driver adapts a game.Game to ebiten.Game.
type Driver struct {
	game  *game.Game
	name  string
	typed []rune
}

// NewDriver wraps g. The game's player name, if set, prefills the title screen.
func NewDriver(g *game.Game) *Driver {
	return &Driver{game: g, name: g.Snapshot().PlayerName}
}

// Update runs one tick at ebiten's fixed TPS.
func (d *Driver) Update() error {
	in := core.NewInputFrame()

	if d.game.State() == game.StateMenu {
		d.typed = ebiten.AppendInputChars(d.typed[:0])
		backspaces := 0
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			backspaces = 1
		}
		d.name = EditName(d.name, d.typed, backspaces)
		d.game.SetPlayerName(d.name)

		if anyJustPressed(keyBindings[core.ActionConfirm]) {
			in.Set(core.ActionConfirm)
		}
		d.game.Step(in)
		return nil
	}

	for action, keys := range keyBindings {
		if action.IsHeld() {
			if anyPressed(keys) {
				in.Set(action)
			}
		} else if anyJustPressed(keys) {
			in.Set(action)
		}
	}

	d.game.Step(in)
	return nil
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Draw renders the snapshot in world coordinates; Layout makes them canvas pixels.
func (d *Driver) Draw(screen *ebiten.Image) {
	snap := d.game.Snapshot()
	screen.Fill(skyColor)

	drawSnow(screen, snap)
	vector.DrawFilledRect(screen, 0, float32(snap.GroundY), float32(snap.ViewportW),
		float32(snap.ViewportH-snap.GroundY), groundColor, false)

	for _, o := range snap.Obstacles {
		_, c := game.ObstacleLook(o.Variant)
		fillRect(screen, o.Rect(), RGBA(c))
	}
	for _, p := range snap.Presents {
		r := p.Rect()
		fillRect(screen, r, RGBA(core.ColorBrightYellow))
		// Ribbon
		vector.DrawFilledRect(screen, float32(r.X+r.W/2-2), float32(r.Y), 4, float32(r.H), RGBA(core.ColorRed), false)
	}
	fillRect(screen, snap.Player.Rect(), RGBA(core.ColorRed))

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  High Score: %d", snap.Score, snap.HighScore), 10, 10)
	right := fmt.Sprintf("Lv %d", snap.Difficulty)
	if snap.PlayerName != "" && snap.State != game.StateMenu {
		right = fmt.Sprintf("%s  Lv %d", snap.PlayerName, snap.Difficulty)
	}
	ebitenutil.DebugPrintAt(screen, right, int(snap.ViewportW)-10-len([]rune(right))*glyphW, 10)

	switch snap.State {
	case game.StateMenu:
		drawPanel(screen, snap,
			"GIFT RUNNER",
			"Type your name and press Enter",
			"Name: "+d.name+"_",
			"Space jump  A/D move  P pause")
	case game.StatePaused:
		drawPanel(screen, snap, "GAME PAUSED", "Press P to resume")
	case game.StateGameOver:
		lines := []string{"GAME OVER", fmt.Sprintf("Final Score: %d", snap.Score)}
		if snap.NewBest {
			lines = append(lines, "New high score!")
		}
		lines = append(lines, "Press R to restart")
		drawPanel(screen, snap, lines...)
	}
}

func fillRect(dst *ebiten.Image, r core.Rect, c color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

// drawSnow scatters flakes that drift with the background offset.
func drawSnow(dst *ebiten.Image, snap game.Snapshot) {
	flake := RGBA(core.ColorGray)
	for i := 0; i < 40; i++ {
		x := math.Mod(float64(i*97)+snap.Background+snap.ViewportW*2, snap.ViewportW)
		y := math.Mod(float64(i*53), snap.GroundY-10)
		vector.DrawFilledCircle(dst, float32(x), float32(y), 2, flake, false)
	}
}

// drawPanel draws centered text lines in an outlined box.
func drawPanel(dst *ebiten.Image, snap game.Snapshot, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l))*glyphW)
	}
	boxW := float32(width + 40)
	boxH := float32(len(lines)*glyphH + 30)
	boxX := (float32(snap.ViewportW) - boxW) / 2
	boxY := (float32(snap.ViewportH) - boxH) / 2

	vector.DrawFilledRect(dst, boxX, boxY, boxW, boxH, skyColor, false)
	vector.StrokeRect(dst, boxX, boxY, boxW, boxH, 2, RGBA(core.ColorBrightWhite), false)

	for i, l := range lines {
		x := int(boxX) + (int(boxW)-len([]rune(l))*glyphW)/2
		ebitenutil.DebugPrintAt(dst, l, x, int(boxY)+15+i*glyphH)
	}
}

// Layout fixes the logical screen to the game's viewport.
func (d *Driver) Layout(_, _ int) (int, int) {
	cfg := d.game.Config()
	return int(cfg.Viewport.Width), int(cfg.Viewport.Height)
}

// Run opens the canvas and blocks while the game runs.
func Run(g *game.Game, tickRate int) error {
	cfg := g.Config()
	ebiten.SetWindowTitle("Gift Runner")
	ebiten.SetWindowSize(int(cfg.Viewport.Width), int(cfg.Viewport.Height))
	if tickRate > 0 {
		ebiten.SetTPS(tickRate)
	}
	return ebiten.RunGame(NewDriver(g))
}
