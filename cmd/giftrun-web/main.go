//go:build js && wasm

// giftrun-web is the browser build of Gift Runner.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o giftrun.wasm ./cmd/giftrun-web
//
// and serve it next to wasm_exec.js from the Go distribution.
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gift-runner/internal/config"
	"github.com/vovakirdan/gift-runner/internal/game"
	"github.com/vovakirdan/gift-runner/internal/platform/web"
)

func main() {
	// Stderr is the browser console
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:  log.InfoLevel,
		Prefix: "giftrun",
	})

	cfg := config.DefaultConfig()
	g, err := game.New(cfg, game.Options{
		Seed:       time.Now().UnixNano(),
		HighScores: web.LocalStorage{Key: cfg.Storage.HighScoreKey},
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("cannot create game", "err", err)
	}

	if err := web.Run(g, 60); err != nil {
		logger.Fatal("game stopped", "err", err)
	}
}
