package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/gift-runner/internal/config"
	"github.com/vovakirdan/gift-runner/internal/core"
)

// Spawner handles spawning, movement, and removal of obstacles and presents.
// Each kind has its own wall-clock spawn timer.
type Spawner struct {
	cfg          *config.GameConfig
	rng          *rand.Rand
	obstacles    []Obstacle
	presents     []Present
	lastObstacle time.Time
	lastPresent  time.Time
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(cfg *config.GameConfig, seed int64, now time.Time) *Spawner {
	s := &Spawner{
		cfg:       cfg,
		obstacles: make([]Obstacle, 0, 8),
		presents:  make([]Present, 0, 4),
	}
	s.Reset(seed, now)
	return s
}

// Reset clears all entities, reseeds the RNG and restarts both timers at now.
func (s *Spawner) Reset(seed int64, now time.Time) {
	s.obstacles = s.obstacles[:0]
	s.presents = s.presents[:0]
	s.rng = rand.New(rand.NewSource(seed))
	s.lastObstacle = now
	s.lastPresent = now
}

// Shift moves both timers forward by d, so time spent paused does not count.
func (s *Spawner) Shift(d time.Duration) {
	s.lastObstacle = s.lastObstacle.Add(d)
	s.lastPresent = s.lastPresent.Add(d)
}

// Advance moves every entity left by its own velocity and drops the ones whose
// right edge has left the screen. It returns the number of obstacles passed.
func (s *Spawner) Advance() int {
	passed := 0

	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		o.X -= o.VelocityX
		if o.X+o.Width < 0 {
			passed++
			continue
		}
		kept = append(kept, o)
	}
	s.obstacles = kept

	keptPresents := s.presents[:0]
	for _, p := range s.presents {
		p.X -= p.VelocityX
		if p.X+p.Width < 0 {
			continue
		}
		keptPresents = append(keptPresents, p)
	}
	s.presents = keptPresents

	return passed
}

// Spawn adds a new entity of each kind whose interval has elapsed since its last spawn.
func (s *Spawner) Spawn(now time.Time, obstacleInterval time.Duration, obstacleSpeed float64) {
	if now.Sub(s.lastObstacle) >= obstacleInterval {
		s.spawnObstacle(obstacleSpeed)
		s.lastObstacle = now
	}

	presentInterval := time.Duration(s.cfg.Presents.SpawnIntervalMS) * time.Millisecond
	if now.Sub(s.lastPresent) >= presentInterval {
		s.spawnPresent()
		s.lastPresent = now
	}
}

// spawnObstacle places an obstacle just off the right edge, resting on the ground.
func (s *Spawner) spawnObstacle(speed float64) {
	oc := s.cfg.Obstacles
	s.obstacles = append(s.obstacles, Obstacle{
		X:         s.cfg.Viewport.Width,
		Y:         s.cfg.Viewport.Height - oc.BottomOffset - oc.Height,
		Width:     oc.Width,
		Height:    oc.Height,
		VelocityX: speed,
		Variant:   s.rng.Intn(oc.Variants),
	})
}

// spawnPresent places a present just off the right edge at a random height in the band.
func (s *Spawner) spawnPresent() {
	pc := s.cfg.Presents
	y := pc.MinY
	if pc.MaxY > pc.MinY {
		y += s.rng.Float64() * (pc.MaxY - pc.MinY)
	}
	s.presents = append(s.presents, Present{
		X:         s.cfg.Viewport.Width,
		Y:         y,
		Width:     pc.Width,
		Height:    pc.Height,
		VelocityX: pc.Speed,
	})
}

// HitsObstacle tests if the given rectangle collides with any obstacle.
func (s *Spawner) HitsObstacle(r core.Rect) bool {
	for _, o := range s.obstacles {
		if r.Intersects(o.Rect()) {
			return true
		}
	}
	return false
}

// CollectPresents removes every present touching r and returns how many were taken.
func (s *Spawner) CollectPresents(r core.Rect) int {
	taken := 0
	kept := s.presents[:0]
	for _, p := range s.presents {
		if r.Intersects(p.Rect()) {
			taken++
			continue
		}
		kept = append(kept, p)
	}
	s.presents = kept
	return taken
}

// Obstacles returns the active obstacles in spawn order.
func (s *Spawner) Obstacles() []Obstacle {
	return s.obstacles
}

// Presents returns the active presents in spawn order.
func (s *Spawner) Presents() []Present {
	return s.presents
}
