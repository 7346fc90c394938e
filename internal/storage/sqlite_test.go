package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/gift-runner/internal/config"
	"github.com/vovakirdan/gift-runner/internal/core"
	"github.com/vovakirdan/gift-runner/internal/game"
)

var (
	_ game.HighScoreStore = (*HighScoreKV)(nil)
	_ game.ScoreSubmitter = (*Store)(nil)
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func submission(run, player string, score int) core.ScoreSubmission {
	return core.ScoreSubmission{
		RunID:      run,
		Player:     player,
		Score:      score,
		FinishedAt: time.Date(2024, 12, 24, 18, 30, 0, 0, time.UTC),
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreCreatesNestedDirectories(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.giftrun/giftrun.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".giftrun", "giftrun.db"); got != want {
		t.Errorf("ExpandHome() = %q, expected %q", got, want)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}

func TestKVIntegers(t *testing.T) {
	store := openTestStore(t)

	v, err := store.GetInt("highScore")
	if err != nil || v != 0 {
		t.Fatalf("missing key = (%d, %v), expected (0, nil)", v, err)
	}

	tests := []struct {
		write int
		want  int
	}{
		{17, 17},
		{42, 42},
		{30, 42},
		{42, 42},
		{43, 43},
	}
	for _, tc := range tests {
		if err := store.SetMaxInt("highScore", tc.write); err != nil {
			t.Fatalf("SetMaxInt(%d) failed: %v", tc.write, err)
		}
		v, err = store.GetInt("highScore")
		if err != nil || v != tc.want {
			t.Errorf("after SetMaxInt(%d) GetInt() = (%d, %v), expected (%d, nil)", tc.write, v, err, tc.want)
		}
	}
}

func TestKVUnparsableReadsZero(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.db.Exec("INSERT INTO kv (key, value) VALUES ('highScore', 'lots')"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	v, err := store.GetInt("highScore")
	if v != 0 {
		t.Errorf("unparsable value read as %d, expected 0", v)
	}
	if err == nil {
		t.Error("unparsable value should report an error")
	}

	if err := store.SetMaxInt("highScore", 3); err != nil {
		t.Fatalf("SetMaxInt() failed: %v", err)
	}
	if v, err := store.GetInt("highScore"); err != nil || v != 3 {
		t.Errorf("unparsable value not replaced: (%d, %v)", v, err)
	}
}

func TestHighScoreKVIsolatesKeys(t *testing.T) {
	store := openTestStore(t)
	ana := store.HighScores("highScore/ana")
	bob := store.HighScores("highScore/bob")

	if err := ana.SaveHighScore(30); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}

	if v, _ := ana.LoadHighScore(); v != 30 {
		t.Errorf("ana = %d, expected 30", v)
	}
	if v, _ := bob.LoadHighScore(); v != 0 {
		t.Errorf("bob = %d, expected 0", v)
	}
}

func TestHighScoreKVNeverDecreases(t *testing.T) {
	store := openTestStore(t)
	first := store.HighScores("highScore/ana")
	second := store.HighScores("highScore/ana")

	if err := first.SaveHighScore(20); err != nil {
		t.Fatalf("SaveHighScore(20) failed: %v", err)
	}
	if err := second.SaveHighScore(5); err != nil {
		t.Fatalf("SaveHighScore(5) failed: %v", err)
	}
	if v, _ := first.LoadHighScore(); v != 20 {
		t.Errorf("stored high score = %d, expected 20", v)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore(ctx, submission(fmt.Sprintf("run-%d", i), "ana", score)); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore(ctx, submission("run-b", "bob", 500)); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}

	want := []int{500, 200, 100, 50}
	for i, e := range scores {
		if e.Score != want[i] {
			t.Errorf("scores[%d] = %d, expected %d", i, e.Score, want[i])
		}
	}
	if scores[0].Player != "bob" || scores[0].RunID != "run-b" {
		t.Errorf("unexpected top entry %+v", scores[0])
	}
	if !scores[0].CreatedAt.Equal(time.Date(2024, 12, 24, 18, 30, 0, 0, time.UTC)) {
		t.Errorf("created_at = %v, expected the submission time", scores[0].CreatedAt)
	}

	anaScores, err := store.PlayerScores("ana", 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(anaScores) != 3 || anaScores[0].Score != 200 {
		t.Errorf("unexpected ana scores %v", anaScores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(context.Background(), submission(fmt.Sprintf("run-%d", i), "ana", (i+1)*100))
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestSubmitScoreIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.SubmitScore(ctx, submission("run-1", "ana", 12)); err != nil {
			t.Fatalf("SubmitScore() failed: %v", err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 1 {
		t.Errorf("duplicate run id stored %d times", stats.Runs)
	}
}

func TestSaveScoreFillsMissingRunID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveScore(ctx, core.ScoreSubmission{Player: "ana", Score: 1})
	store.SaveScore(ctx, core.ScoreSubmission{Player: "ana", Score: 2})

	scores, _ := store.TopScores(10)
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	if scores[0].RunID == "" || scores[0].RunID == scores[1].RunID {
		t.Errorf("run ids should be generated and unique: %q %q", scores[0].RunID, scores[1].RunID)
	}
}

func TestSubmitScoreHonorsContext(t *testing.T) {
	store := openTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.SubmitScore(ctx, submission("run-1", "ana", 3)); err == nil {
		t.Error("SubmitScore() with a cancelled context should fail")
	}
}

func TestStoreClearKeepsHighScore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveScore(ctx, submission("a", "ana", 100))
	store.SaveScore(ctx, submission("b", "ana", 300))
	store.SaveScore(ctx, submission("c", "bob", 200))
	store.SetMaxInt("highScore", 300)

	if stats, _ := store.Stats(); stats.HighScore != 300 {
		t.Errorf("Stats().HighScore = %d, expected 300", stats.HighScore)
	}

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores(10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if stats, _ := store.Stats(); stats.HighScore != 0 {
		t.Errorf("Stats().HighScore after clear = %d, expected 0", stats.HighScore)
	}
	if v, _ := store.GetInt("highScore"); v != 300 {
		t.Errorf("ClearScores() should keep the stored high score, got %d", v)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore(ctx, submission("a", "ana", 10))
	store.SaveScore(ctx, submission("b", "ana", 20))
	store.SaveScore(ctx, submission("c", "bob", 30))

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Players != 2 || stats.HighScore != 30 || stats.TotalScore != 60 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, expected 20", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestConcurrentSubmissions(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := store.SubmitScore(context.Background(), submission(fmt.Sprintf("run-%d", i), "ana", i)); err != nil {
				t.Errorf("SubmitScore() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	stats, _ := store.Stats()
	if stats.Runs != 20 {
		t.Errorf("Expected 20 runs, got %d", stats.Runs)
	}
}

func TestGameEndToEnd(t *testing.T) {
	store := openTestStore(t)
	highScores := store.HighScores("highScore")
	highScores.SaveHighScore(2)

	clock := core.NewManualClock(time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC))
	g, err := game.New(config.DefaultConfig(), game.Options{
		Clock:      clock,
		HighScores: highScores,
		Submitter:  store,
	})
	if err != nil {
		t.Fatalf("game.New() failed: %v", err)
	}
	if g.Snapshot().HighScore != 2 {
		t.Errorf("high score not loaded from store: %d", g.Snapshot().HighScore)
	}

	g.Start("ana")
	clock.Advance(3 * time.Second)

	// Stand still until the first obstacle runs into the player
	for i := 0; i < 300 && g.State() == game.StatePlaying; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.State() != game.StateGameOver {
		t.Fatalf("state = %s, expected GameOver", g.State())
	}
	g.WaitSubmissions()

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Player != "ana" || scores[0].Score != 0 {
		t.Errorf("unexpected leaderboard %v", scores)
	}
	if scores[0].RunID != g.Snapshot().RunID {
		t.Errorf("run id %q, expected %q", scores[0].RunID, g.Snapshot().RunID)
	}
	if v, _ := highScores.LoadHighScore(); v != 2 {
		t.Errorf("high score overwritten with %d", v)
	}
}

// playSession stands still until the score reaches idleUntil, then jumps
// continuously until an overhead obstacle ends the run. It returns the final score.
func playSession(t *testing.T, g *game.Game, clock *core.ManualClock, idleUntil int) int {
	t.Helper()

	for i := 0; i < 20000 && g.State() == game.StatePlaying; i++ {
		in := core.NewInputFrame()
		if g.Snapshot().Score >= idleUntil {
			in.Set(core.ActionJump)
		}
		clock.Advance(time.Second / 60)
		g.Step(in)
	}
	if g.State() != game.StateGameOver {
		t.Fatalf("state = %s, expected GameOver", g.State())
	}
	return g.Snapshot().Score
}

func TestSessionsSharingHighScoreKeepTheBest(t *testing.T) {
	store := openTestStore(t)

	// Obstacles float above a standing player and only hit a jumping one
	cfg := config.DefaultConfig()
	cfg.Obstacles.BottomOffset = 350
	cfg.Difficulty.Enabled = false
	cfg.Presents.Bonus = 0

	newSession := func() (*game.Game, *core.ManualClock) {
		clock := core.NewManualClock(time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC))
		g, err := game.New(cfg, game.Options{
			Clock:      clock,
			Seed:       7,
			HighScores: store.HighScores("highScore/ana"),
		})
		if err != nil {
			t.Fatalf("game.New() failed: %v", err)
		}
		g.Start("ana")
		return g, clock
	}

	// Both sessions read the stored value before either finishes
	first, firstClock := newSession()
	second, secondClock := newSession()

	best := playSession(t, first, firstClock, 20)
	worse := playSession(t, second, secondClock, 1)
	if worse <= 0 || worse >= best {
		t.Fatalf("scores %d then %d, expected a lower positive second score", best, worse)
	}

	stored, err := store.HighScores("highScore/ana").LoadHighScore()
	if err != nil {
		t.Fatalf("LoadHighScore() failed: %v", err)
	}
	if stored != best {
		t.Errorf("stored high score = %d after runs of %d and %d, expected %d", stored, best, worse, best)
	}
}
