// Package game implements Gift Runner: a side-scrolling runner where the
// player jumps over obstacles and collects presents for bonus points.
//
// All simulation state lives in Game and advances only through Step, once per
// frame. Time and randomness are injected so runs can be replayed exactly.
package game

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gift-runner/internal/config"
	"github.com/vovakirdan/gift-runner/internal/core"
)

// HighScoreStore persists the best score as a single integer.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// ScoreSubmitter receives finished runs. Calls are best-effort and run off the game loop.
type ScoreSubmitter interface {
	SubmitScore(ctx context.Context, sub core.ScoreSubmission) error
}

// DefaultSubmitTimeout bounds a single score submission.
const DefaultSubmitTimeout = 5 * time.Second

// Options holds the collaborators of a Game. Zero values are usable.
type Options struct {
	Clock         core.Clock     // defaults to core.SystemClock
	Seed          int64          // RNG seed; run n uses Seed+n
	HighScores    HighScoreStore // nil keeps the high score in memory only
	Submitter     ScoreSubmitter // nil disables submission
	SubmitTimeout time.Duration  // defaults to DefaultSubmitTimeout
	Logger        *log.Logger    // nil discards
	NewRunID      func() string  // defaults to uuid.NewString
}

// StepResult is returned by Step after each tick.
type StepResult struct {
	State  State
	Score  int
	Events []Event // transitions applied during this tick, in order
}

// Game owns the complete simulation state.
type Game struct {
	cfg        config.GameConfig
	clock      core.Clock
	seed       int64
	highScores HighScoreStore
	submitter  ScoreSubmitter
	timeout    time.Duration
	logger     *log.Logger
	newRunID   func() string

	state      State
	player     Player
	spawner    *Spawner
	difficulty *config.DifficultyManager
	background float64
	score      int
	highScore  int
	newBest    bool
	playerName string
	runID      string
	runs       int
	tick       uint64
	pausedAt   time.Time
	events     []Event

	pending sync.WaitGroup
}

// New creates a game in the Menu state. The high score is read once here;
// a failed or missing read starts from 0.
func New(cfg config.GameConfig, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:        cfg,
		clock:      opts.Clock,
		seed:       opts.Seed,
		highScores: opts.HighScores,
		submitter:  opts.Submitter,
		timeout:    opts.SubmitTimeout,
		logger:     opts.Logger,
		newRunID:   opts.NewRunID,
		state:      StateMenu,
	}
	if g.clock == nil {
		g.clock = core.SystemClock{}
	}
	if g.timeout <= 0 {
		g.timeout = DefaultSubmitTimeout
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.newRunID == nil {
		g.newRunID = uuid.NewString
	}

	g.difficulty = config.NewDifficultyManager(g.cfg)
	g.spawner = NewSpawner(&g.cfg, g.seed, g.clock.Now())
	g.resetSimulation()

	if g.highScores != nil {
		high, err := g.highScores.LoadHighScore()
		if err != nil {
			g.logger.Warn("could not load high score", "err", err)
			high = 0
		}
		if high > 0 {
			g.highScore = high
		}
	}

	return g, nil
}

// Config returns the configuration the game runs with.
func (g *Game) Config() config.GameConfig {
	return g.cfg
}

// State returns the active state.
func (g *Game) State() State {
	return g.state
}

// SetPlayerName stores the name used for the next Start via ActionConfirm.
func (g *Game) SetPlayerName(name string) {
	g.playerName = strings.TrimSpace(name)
}

// Start leaves the menu with the given player name. Empty names are rejected.
func (g *Game) Start(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || g.state != StateMenu {
		return false
	}
	g.playerName = name
	return g.fire(EventStart)
}

// TogglePause switches between Playing and Paused.
func (g *Game) TogglePause() bool {
	return g.fire(EventPauseToggle)
}

// Restart begins a new run after game over.
func (g *Game) Restart() bool {
	return g.fire(EventReset)
}

// Step advances the game by one tick. One-shot actions are applied first,
// then the simulation runs if the game is Playing.
func (g *Game) Step(in core.InputFrame) StepResult {
	g.events = g.events[:0]

	switch {
	case in.Has(core.ActionConfirm) && g.state == StateMenu:
		g.Start(g.playerName)
	case in.Has(core.ActionPause):
		g.TogglePause()
	case in.Has(core.ActionRestart):
		g.Restart()
	}

	if g.state == StatePlaying {
		g.update(in)
	}

	return StepResult{
		State:  g.state,
		Score:  g.score,
		Events: append([]Event(nil), g.events...),
	}
}

// update runs one Playing tick with fixed per-tick increments.
func (g *Game) update(in core.InputFrame) {
	g.tick++

	g.background -= g.cfg.Physics.BackgroundStep
	if g.background <= -g.cfg.Viewport.Width {
		g.background = 0
	}

	g.updatePlayer(in)

	g.score += g.spawner.Advance()

	g.spawner.Spawn(g.clock.Now(), g.difficulty.SpawnInterval(), g.difficulty.ObstacleSpeed())

	if ups := g.difficulty.Observe(g.score); ups > 0 {
		g.logger.Debug("difficulty increased", "level", g.difficulty.Level(), "interval", g.difficulty.SpawnInterval())
	}

	g.checkCollisions()
}

// updatePlayer applies jump, gravity, ground and edge clamping.
func (g *Game) updatePlayer(in core.InputFrame) {
	p := &g.player
	phys := g.cfg.Physics
	ground := g.cfg.GroundLine()

	if in.Has(core.ActionJump) && p.OnGround {
		p.VelocityY = phys.JumpImpulse
		p.OnGround = false
	}

	if !p.OnGround {
		p.VelocityY += phys.Gravity
	}

	p.Y += p.VelocityY
	if p.Y >= ground {
		p.Y = ground
		p.VelocityY = 0
		p.OnGround = true
	} else if p.Y < 0 {
		// Ceiling: stop rising and start falling
		p.Y = 0
		p.VelocityY = 0
	}

	if in.Has(core.ActionLeft) {
		p.X -= phys.MoveStep
	}
	if in.Has(core.ActionRight) {
		p.X += phys.MoveStep
	}
	p.X = core.Clamp(p.X, 0, g.cfg.Viewport.Width-p.Width)
}

// checkCollisions ends the run on an obstacle hit, otherwise collects presents.
func (g *Game) checkCollisions() {
	pr := g.player.Rect()

	if g.spawner.HitsObstacle(pr) {
		g.fire(EventCollide)
		return
	}

	if taken := g.spawner.CollectPresents(pr); taken > 0 {
		g.score += taken * g.cfg.Presents.Bonus
	}
}

// resetSimulation puts every simulation value back to its start-of-run state.
func (g *Game) resetSimulation() {
	now := g.clock.Now()

	g.player = Player{
		X:        g.cfg.Player.StartX,
		Y:        g.cfg.GroundLine(),
		Width:    g.cfg.Player.Width,
		Height:   g.cfg.Player.Height,
		OnGround: true,
	}
	g.player.X = core.Clamp(g.player.X, 0, g.cfg.Viewport.Width-g.player.Width)
	g.spawner.Reset(g.seed+int64(g.runs), now)
	g.difficulty.Reset()
	g.background = 0
	g.score = 0
	g.newBest = false
	g.tick = 0
}

// beginRun is the effect of Menu->Playing and GameOver->Playing.
func (g *Game) beginRun() {
	g.runs++
	g.resetSimulation()
	g.runID = g.newRunID()
	g.logger.Info("run started", "run", g.runID, "player", g.playerName)
}

// enterPause records when the pause began.
func (g *Game) enterPause() {
	g.pausedAt = g.clock.Now()
}

// leavePause shifts spawn timers by the time spent paused.
func (g *Game) leavePause() {
	if paused := g.clock.Now().Sub(g.pausedAt); paused > 0 {
		g.spawner.Shift(paused)
	}
}

// finishRun is the effect of Playing->GameOver: persist and submit.
func (g *Game) finishRun() {
	g.logger.Info("run finished", "run", g.runID, "player", g.playerName, "score", g.score)

	if g.score > g.highScore {
		g.highScore = g.score
		g.newBest = true
		if g.highScores != nil {
			if err := g.highScores.SaveHighScore(g.highScore); err != nil {
				g.logger.Warn("could not save high score", "score", g.highScore, "err", err)
			}
		}
	}

	g.submit(core.ScoreSubmission{
		RunID:      g.runID,
		Player:     g.playerName,
		Score:      g.score,
		FinishedAt: g.clock.Now(),
	})
}

// submit hands the run to the submitter on its own goroutine.
func (g *Game) submit(sub core.ScoreSubmission) {
	if g.submitter == nil {
		return
	}

	g.pending.Add(1)
	go func() {
		defer g.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
		defer cancel()

		if err := g.submitter.SubmitScore(ctx, sub); err != nil {
			g.logger.Warn("score submission failed", "run", sub.RunID, "err", err)
			return
		}
		g.logger.Debug("score submitted", "run", sub.RunID, "score", sub.Score)
	}()
}

// WaitSubmissions blocks until every in-flight score submission has returned.
func (g *Game) WaitSubmissions() {
	g.pending.Wait()
}
