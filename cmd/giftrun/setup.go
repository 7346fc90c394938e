package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gift-runner/internal/config"
)

// stateDir is where logs, screenshots and the default database live.
func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".giftrun"
	}
	return filepath.Join(home, ".giftrun")
}

// loadGameConfig resolves the config file and applies the difficulty flag.
func loadGameConfig() (config.GameConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.GameConfig{}, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.GameConfig{}, err
	}

	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.GameConfig{}, err
	}
	return cfg, nil
}

// newLogger builds a logger at the level given by --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
	}), nil
}

// openLogFile opens the play log. The terminal belongs to the game while it
// runs, so play logs go to a file instead of stderr.
func openLogFile() (*os.File, error) {
	dir := stateDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "giftrun.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
