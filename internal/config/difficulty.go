package config

import (
	"math"
	"time"
)

// DifficultyManager tracks the step-based difficulty level.
// The level rises by one for every multiple of the score threshold the score
// crosses; each level shrinks the obstacle spawn interval by a fixed factor and
// adds one unit of obstacle speed.
type DifficultyManager struct {
	cfg          DifficultyConfig
	baseSpeed    float64
	baseInterval time.Duration
	minInterval  time.Duration

	level    int
	interval time.Duration
	crossed  int // threshold multiples already applied
}

// NewDifficultyManager creates a difficulty manager at its initial level.
func NewDifficultyManager(cfg GameConfig) *DifficultyManager {
	d := &DifficultyManager{
		cfg:          cfg.Difficulty,
		baseSpeed:    cfg.Obstacles.BaseSpeed,
		baseInterval: time.Duration(cfg.Obstacles.SpawnIntervalMS) * time.Millisecond,
		minInterval:  time.Duration(cfg.Obstacles.MinSpawnInterval) * time.Millisecond,
	}
	d.Reset()
	return d
}

// Reset returns to the initial level.
func (d *DifficultyManager) Reset() {
	d.level = 0
	d.crossed = 0
	d.interval = d.baseInterval
	for i := 0; i < d.cfg.InitialLevel; i++ {
		d.levelUp()
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.ScoreThreshold > 0
}

// Observe applies every threshold crossing up to score and returns how many
// level-ups happened. Calling it again with the same score is a no-op.
func (d *DifficultyManager) Observe(score int) int {
	if !d.IsEnabled() {
		return 0
	}

	target := score / d.cfg.ScoreThreshold
	ups := 0
	for d.crossed < target {
		d.crossed++
		d.levelUp()
		ups++
	}
	return ups
}

func (d *DifficultyManager) levelUp() {
	d.level++
	next := time.Duration(math.Round(float64(d.interval) * d.cfg.IntervalFactor))
	if next < d.minInterval {
		next = d.minInterval
	}
	d.interval = next
}

// Level returns the current difficulty level.
func (d *DifficultyManager) Level() int {
	return d.level
}

// SpawnInterval returns the current obstacle spawn interval.
func (d *DifficultyManager) SpawnInterval() time.Duration {
	return d.interval
}

// ObstacleSpeed returns the speed given to newly spawned obstacles.
func (d *DifficultyManager) ObstacleSpeed() float64 {
	return d.baseSpeed + float64(d.level)
}
