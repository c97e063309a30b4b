package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/Kalyan9AI/blubblegame/internal/audio"
	"github.com/Kalyan9AI/blubblegame/internal/config"
	"github.com/Kalyan9AI/blubblegame/internal/draw"
	"github.com/Kalyan9AI/blubblegame/internal/game"
	"github.com/Kalyan9AI/blubblegame/internal/session"
	"github.com/Kalyan9AI/blubblegame/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Preferences persist across runs; play continues without them.
	var prefs store.Store
	sq, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		prefs = &store.Memory{}
	} else {
		prefs = sq
		defer sq.Close()
	}

	muted, _ := prefs.Muted()
	var feedback audio.Feedback
	if synth, err := audio.NewSynth(muted); err == nil {
		feedback = synth
	} else {
		feedback = audio.Nop{}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctrl := session.NewController(session.Options{
		Store:    prefs,
		Feedback: feedback,
		Rand:     rand.New(rand.NewSource(seed)),
		ViewportWidth: func() int {
			w, _, err := draw.DefaultTermSizeFunc()
			if err != nil || w <= 0 {
				return 120
			}
			return w
		},
	})

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctrl.Run(ctx)

	client := game.NewClient(ctrl, os.Stdin, os.Stdout, game.Options{})
	if err := client.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
