// Package config provides YAML-based game configuration loading and
// difficulty management for Gift Runner.
package config

import (
	"errors"
	"fmt"
)

// GameConfig contains all tunables of the simulation.
type GameConfig struct {
	Viewport   ViewportConfig   `yaml:"viewport"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Presents   PresentConfig    `yaml:"presents"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Storage    StorageConfig    `yaml:"storage"`
}

// ViewportConfig is the size of the world in canvas pixels.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig defines fixed per-tick physics increments.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	JumpImpulse    float64 `yaml:"jump_impulse"` // negative = up
	MoveStep       float64 `yaml:"move_step"`
	BackgroundStep float64 `yaml:"background_step"`
	GroundMargin   float64 `yaml:"ground_margin"` // space below the player's feet
}

// PlayerConfig defines the player's start position and size.
type PlayerConfig struct {
	StartX float64 `yaml:"start_x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines obstacle shape and spawning.
type ObstacleConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	BottomOffset     float64 `yaml:"bottom_offset"` // distance from viewport bottom to obstacle bottom
	BaseSpeed        float64 `yaml:"base_speed"`
	SpawnIntervalMS  int     `yaml:"spawn_interval_ms"`
	MinSpawnInterval int     `yaml:"min_spawn_interval_ms"`
	Variants         int     `yaml:"variants"`
}

// PresentConfig defines collectible shape, spawning and reward.
type PresentConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Speed           float64 `yaml:"speed"`
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"`
	MinY            float64 `yaml:"min_y"`
	MaxY            float64 `yaml:"max_y"`
	Bonus           int     `yaml:"bonus"`
}

// DifficultyConfig defines the step-based difficulty progression.
type DifficultyConfig struct {
	Enabled        bool    `yaml:"enabled"`
	ScoreThreshold int     `yaml:"score_threshold"` // level up at every multiple of this score
	IntervalFactor float64 `yaml:"interval_factor"` // spawn interval multiplier per level
	InitialLevel   int     `yaml:"initial_level"`
}

// StorageConfig names the persisted keys.
type StorageConfig struct {
	HighScoreKey string `yaml:"high_score_key"`
}

// GroundLine returns the y coordinate of the player's top edge when standing.
func (c GameConfig) GroundLine() float64 {
	return c.Viewport.Height - c.Player.Height - c.Physics.GroundMargin
}

// Validate checks the configuration for values the simulation cannot run with.
func (c GameConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("viewport.width", c.Viewport.Width)
	positive("viewport.height", c.Viewport.Height)
	positive("physics.gravity", c.Physics.Gravity)
	positive("physics.move_step", c.Physics.MoveStep)
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("obstacles.width", c.Obstacles.Width)
	positive("obstacles.height", c.Obstacles.Height)
	positive("obstacles.base_speed", c.Obstacles.BaseSpeed)
	positive("obstacles.spawn_interval_ms", float64(c.Obstacles.SpawnIntervalMS))
	positive("obstacles.variants", float64(c.Obstacles.Variants))
	positive("presents.width", c.Presents.Width)
	positive("presents.height", c.Presents.Height)
	positive("presents.speed", c.Presents.Speed)
	positive("presents.spawn_interval_ms", float64(c.Presents.SpawnIntervalMS))

	if c.Physics.JumpImpulse >= 0 {
		errs = append(errs, fmt.Errorf("physics.jump_impulse must be negative, got %v", c.Physics.JumpImpulse))
	}
	if c.Player.Width > c.Viewport.Width {
		errs = append(errs, errors.New("player.width exceeds viewport.width"))
	}
	if c.GroundLine() < 0 {
		errs = append(errs, errors.New("player does not fit above the ground margin"))
	}
	if c.Obstacles.MinSpawnInterval < 0 {
		errs = append(errs, errors.New("obstacles.min_spawn_interval_ms must not be negative"))
	}
	if c.Presents.MinY > c.Presents.MaxY {
		errs = append(errs, fmt.Errorf("presents.min_y (%v) is greater than presents.max_y (%v)", c.Presents.MinY, c.Presents.MaxY))
	}
	if c.Presents.Bonus < 0 {
		errs = append(errs, errors.New("presents.bonus must not be negative"))
	}
	if c.Difficulty.Enabled {
		if c.Difficulty.ScoreThreshold <= 0 {
			errs = append(errs, errors.New("difficulty.score_threshold must be positive"))
		}
		if c.Difficulty.IntervalFactor <= 0 || c.Difficulty.IntervalFactor > 1 {
			errs = append(errs, fmt.Errorf("difficulty.interval_factor must be in (0, 1], got %v", c.Difficulty.IntervalFactor))
		}
	}
	if c.Difficulty.InitialLevel < 0 {
		errs = append(errs, errors.New("difficulty.initial_level must not be negative"))
	}
	if c.Storage.HighScoreKey == "" {
		errs = append(errs, errors.New("storage.high_score_key must not be empty"))
	}

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Empty means "use config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}
