// Command golfterm plays a hole in the terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/playmatatu/golf/internal/config"
	"github.com/playmatatu/golf/internal/golf"
	"github.com/playmatatu/golf/internal/levelcode"
	"github.com/playmatatu/golf/internal/sound"
)

func main() {
	code := flag.String("code", "", "level code to play (default practice hole when empty)")
	file := flag.String("file", "", "read the level code from a file")
	speed := flag.Float64("speed", 1, "simulation speed multiplier")
	mute := flag.Bool("mute", false, "disable sound")
	logFile := flag.String("log", "", "write the session log to this file")
	flag.Parse()

	hole, err := loadHole(*code, *file, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "golfterm: %v\n", err)
		os.Exit(1)
	}

	physics := config.Load().Physics()

	// The screen owns the terminal, so the session log goes to a file or nowhere.
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "golfterm: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	sfx := sound.NewPlayer()
	if !*mute {
		if err := sfx.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "Audio initialization failed: %v (continuing without audio)\n", err)
		}
		defer sfx.Cleanup()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "golfterm: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "golfterm: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	run(screen, newGame(hole, physics, *speed, sfx), physics.TickDuration)
}

func run(screen tcell.Screen, g *game, frame time.Duration) {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	g.clock.Start(time.Now())
	g.draw(screen)
	for !g.quit {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				g.handleKey(ev)
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			g.tick(now)
		}
		g.draw(screen)
	}
}

// loadHole picks the level code from -code, then -file, then the first
// argument.
func loadHole(code, file string, args []string) (golf.HoleData, error) {
	if code == "" && file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return golf.HoleData{}, fmt.Errorf("read level file: %w", err)
		}
		code = string(raw)
	}
	if code == "" && len(args) > 0 {
		code = args[0]
	}
	hole, err := levelcode.DecodeHole(strings.TrimSpace(code))
	if err != nil {
		return golf.HoleData{}, fmt.Errorf("decode level: %w", err)
	}
	return hole, nil
}
