package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/gift-runner/internal/config"
	"github.com/vovakirdan/gift-runner/internal/core"
)

var testEpoch = time.Date(2024, 12, 24, 18, 0, 0, 0, time.UTC)

// memHighScores is an in-memory HighScoreStore.
type memHighScores struct {
	value   int
	loadErr error
	saveErr error
	saves   []int
}

func (m *memHighScores) LoadHighScore() (int, error) {
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	return m.value, nil
}

func (m *memHighScores) SaveHighScore(score int) error {
	m.saves = append(m.saves, score)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.value = score
	return nil
}

// recordingSubmitter captures submissions and optionally fails them.
type recordingSubmitter struct {
	mu   sync.Mutex
	subs []core.ScoreSubmission
	err  error
}

func (r *recordingSubmitter) SubmitScore(_ context.Context, sub core.ScoreSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, sub)
	return r.err
}

func (r *recordingSubmitter) all() []core.ScoreSubmission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.ScoreSubmission(nil), r.subs...)
}

var errOffline = errors.New("offline")

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("run-%d", n)
	}
}

// newTestGame builds a game on a manual clock. Zero-value collaborators in
// opts are filled with test doubles.
func newTestGame(t *testing.T, cfg config.GameConfig, opts Options) (*Game, *core.ManualClock) {
	t.Helper()

	clock := core.NewManualClock(testEpoch)
	opts.Clock = clock
	if opts.NewRunID == nil {
		opts.NewRunID = sequentialIDs()
	}

	g, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g, clock
}

// startedGame returns a game already in the Playing state.
func startedGame(t *testing.T, cfg config.GameConfig, opts Options) (*Game, *core.ManualClock) {
	t.Helper()

	g, clock := newTestGame(t, cfg, opts)
	if !g.Start("Ana") {
		t.Fatal("Start() should leave the menu")
	}
	return g, clock
}

// noObstacles returns a config whose obstacle timer never fires during a test.
func noObstacles() config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.Obstacles.SpawnIntervalMS = 1 << 30
	return cfg
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

const (
	jump    = core.ActionJump
	left    = core.ActionLeft
	right   = core.ActionRight
	pause   = core.ActionPause
	restart = core.ActionRestart
	confirm = core.ActionConfirm
)

func frame(actions ...core.Action) core.InputFrame {
	return core.NewInputFrame(actions...)
}
