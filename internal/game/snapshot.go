package game

// Snapshot captures everything a renderer needs for one frame.
// Slices are copies; holding a Snapshot never aliases game state.
type Snapshot struct {
	State      State
	Tick       uint64
	Player     Player
	Obstacles  []Obstacle
	Presents   []Present
	Background float64
	Score      int
	HighScore  int
	NewBest    bool // the finished run beat the stored high score
	Difficulty int
	PlayerName string
	RunID      string
	ViewportW  float64
	ViewportH  float64
	GroundY    float64 // y of the player's feet when standing
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		State:      g.state,
		Tick:       g.tick,
		Player:     g.player,
		Obstacles:  append([]Obstacle(nil), g.spawner.Obstacles()...),
		Presents:   append([]Present(nil), g.spawner.Presents()...),
		Background: g.background,
		Score:      g.score,
		HighScore:  g.highScore,
		NewBest:    g.newBest,
		Difficulty: g.difficulty.Level(),
		PlayerName: g.playerName,
		RunID:      g.runID,
		ViewportW:  g.cfg.Viewport.Width,
		ViewportH:  g.cfg.Viewport.Height,
		GroundY:    g.cfg.GroundLine() + g.cfg.Player.Height,
	}
}
