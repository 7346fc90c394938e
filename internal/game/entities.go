package game

import "github.com/vovakirdan/gift-runner/internal/core"

// Player is the runner controlled by the user.
type Player struct {
	X, Y      float64
	Width     float64
	Height    float64
	VelocityY float64
	OnGround  bool
}

// Rect returns the player's collision rectangle.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Obstacle is a hazard moving right to left. Touching one ends the run.
type Obstacle struct {
	X, Y      float64
	Width     float64
	Height    float64
	VelocityX float64
	Variant   int // visual variant, chosen at spawn
}

// Rect returns the obstacle's collision rectangle.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(o.X, o.Y, o.Width, o.Height)
}

// Present is a collectible worth a score bonus.
type Present struct {
	X, Y      float64
	Width     float64
	Height    float64
	VelocityX float64
}

// Rect returns the present's collision rectangle.
func (p Present) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}
