package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gift-runner/internal/core"
	"github.com/vovakirdan/gift-runner/internal/game"
)

// maxNameLength bounds the player name typed on the menu.
const maxNameLength = 16

// Options holds the optional parts of a Model.
type Options struct {
	HoldWindow    time.Duration // defaults to DefaultHoldWindow
	ScreenshotDir string        // empty disables screenshots
	Clock         core.Clock    // drives the held-key latch; defaults to core.SystemClock
	Logger        *log.Logger   // nil discards
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model running one Gift Runner game.
type Model struct {
	game     *game.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	held     *HeldKeys
	help     help.Model
	name     textinput.Model
	frame    core.InputFrame // one-shot actions since the last tick
	opts     Options
	lastSeen game.State
	quitting bool
}

// NewModel creates a Bubble Tea model for the given game.
// The game's current player name, if any, prefills the name field.
func NewModel(g *game.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.Clock == nil {
		opts.Clock = core.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = "your name"
	ti.CharLimit = maxNameLength
	ti.Width = maxNameLength
	ti.SetValue(g.Snapshot().PlayerName)
	ti.Focus()

	return Model{
		game:     g,
		screen:   core.NewScreen(cfg.ScreenW, core.Max(cfg.ScreenH-1, 1)),
		config:   cfg,
		keys:     DefaultKeyMap(),
		held:     NewHeldKeys(opts.HoldWindow),
		help:     help.New(),
		name:     ti,
		frame:    core.NewInputFrame(),
		opts:     opts,
		lastSeen: g.State(),
	}
}

// Init starts the tick loop and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.game.State() == game.StateMenu {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "err", err)
		} else if path != "" {
			m.opts.Logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	// On the menu every printable key goes to the name field
	if m.game.State() == game.StateMenu {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			m.game.SetPlayerName(m.name.Value())
			m.frame.Set(core.ActionConfirm)
			return m, nil
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}

	action := m.keys.Action(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action.IsHeld():
		m.held.Press(action, m.opts.Clock.Now())
		// A single tap still jumps even if the latch expires before the tick
		m.frame.Set(action)
	case action != core.ActionNone:
		m.frame.Set(action)
	}

	return m, nil
}

// handleResize keeps the simulation untouched and only rescales the view.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes one simulation tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.frame.Clone()
	m.held.Apply(&in, m.opts.Clock.Now())

	res := m.game.Step(in)
	m.frame.Clear()

	if res.State != m.lastSeen {
		// Keys held across a pause or game over must be pressed again
		if m.lastSeen == game.StatePlaying {
			m.held.Reset()
		}
		if res.State == game.StateMenu {
			m.name.Focus()
		}
		m.lastSeen = res.State
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current frame as plain text and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	if m.opts.ScreenshotDir == "" {
		return "", nil
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405.000")
	path := filepath.Join(m.opts.ScreenshotDir, fmt.Sprintf("giftrun_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the game with a footer line: the name field on the menu,
// key help otherwise.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := footerStyle.Render(m.help.View(m.keys))
	if m.game.State() == game.StateMenu {
		footer = m.name.View()
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for the given game.
func Run(g *game.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(g, cfg, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
