package core

import "time"

// RuntimeConfig contains configuration passed to the game driver at startup.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// ScoreSubmission is the record handed to a score submitter when a run ends.
type ScoreSubmission struct {
	RunID      string
	Player     string
	Score      int
	FinishedAt time.Time
}
