package config

import (
	_ "embed"
)

//go:embed defaults/giftrun.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// Must stay in sync with defaults/giftrun.yaml.
func DefaultConfig() GameConfig {
	return GameConfig{
		Viewport: ViewportConfig{
			Width:  800,
			Height: 450,
		},
		Physics: PhysicsConfig{
			Gravity:        0.5,
			JumpImpulse:    -15,
			MoveStep:       5,
			BackgroundStep: 2,
			GroundMargin:   105,
		},
		Player: PlayerConfig{
			StartX: 100,
			Width:  53,
			Height: 100,
		},
		Obstacles: ObstacleConfig{
			Width:            40,
			Height:           40,
			BottomOffset:     110,
			BaseSpeed:        5,
			SpawnIntervalMS:  3000,
			MinSpawnInterval: 600,
			Variants:         3,
		},
		Presents: PresentConfig{
			Width:           30,
			Height:          30,
			Speed:           4,
			SpawnIntervalMS: 4500,
			MinY:            120,
			MaxY:            260,
			Bonus:           5,
		},
		Difficulty: DifficultyConfig{
			Enabled:        true,
			ScoreThreshold: 5,
			IntervalFactor: 0.8,
			InitialLevel:   0,
		},
		Storage: StorageConfig{
			HighScoreKey: "highScore",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
