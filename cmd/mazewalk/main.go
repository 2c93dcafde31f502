package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mazewalk/audio"
	"github.com/lixenwraith/mazewalk/config"
	"github.com/lixenwraith/mazewalk/engine"
	"github.com/lixenwraith/mazewalk/input"
	"github.com/lixenwraith/mazewalk/surface"
)

var (
	configFlag = flag.String("config", "", "Session config file (default ./mazewalk.toml, then built-in)")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/mazewalk.log")
	seedFlag   = flag.Int64("seed", 0, "Maze seed, 0 keeps the configured seed")
	audioFlag  = flag.Bool("audio", false, "Enable audio cues")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Maze.Seed = *seedFlag
	}
	if *audioFlag {
		cfg.Audio.Enabled = true
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mMAZEWALK CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	err = run(cfg, screen)
	screen.Fini()

	switch {
	case err == nil:
	case errors.Is(err, engine.ErrInterrupted):
		log.Printf("session interrupted")
		os.Exit(130)
	default:
		fmt.Fprintf(os.Stderr, "mazewalk: %v\n", err)
		os.Exit(1)
	}
}

// run drives one session on an initialized screen until the queue empties
func run(cfg *config.Session, screen tcell.Screen) error {
	backend := surface.NewBackend(screen)
	backend.HideCursor()

	cues := startAudio(cfg)
	if sm, ok := cues.(*audio.SoundManager); ok {
		defer sm.Cleanup()
	}

	listener := input.NewListener(screen)
	if err := listener.Start(); err != nil {
		return err
	}
	defer listener.Stop()

	sched, err := newSession(cfg, backend, listener, cues)
	if err != nil {
		return err
	}

	err = sched.Run(context.Background())
	for _, turn := range sched.Turns() {
		if turn.ExitCode != 0 {
			log.Printf("turn %s exited %d: %v", turn.State, turn.ExitCode, turn.Err)
		}
	}
	return err
}

// startAudio returns a live sound manager, or Silent when audio is off or unavailable
func startAudio(cfg *config.Session) audio.Cues {
	acfg := cfg.AudioConfig()
	if !acfg.Enabled {
		return audio.Silent{}
	}
	sm := audio.NewSoundManager(acfg)
	if err := sm.Initialize(); err != nil {
		log.Printf("audio initialization failed: %v (continuing without audio)", err)
		return audio.Silent{}
	}
	return sm
}
