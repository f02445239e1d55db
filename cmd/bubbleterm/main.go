// Command bubbleterm previews the floating skills strip in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/internal/bubble"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/skills"
	"github.com/Zachkp/portfolio/internal/termview"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}
	skillsFile := flag.String("skills", cfg.SkillsFile, "skills catalog (YAML); embedded list when empty")
	hz := flag.Int("hz", cfg.FrameHz, "frames per second")
	logFile := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	// The terminal is ours while running; keep log output off it.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	catalog, err := skills.Load(*skillsFile)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	err = run(screen, catalog.Skills(), *hz, *logFile != "")
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func run(screen tcell.Screen, list []bubble.Skill, hz int, logging bool) error {
	opts := []bubble.DriverOption{bubble.WithFrameRate(hz), bubble.WithPlaceholder()}
	if !logging {
		opts = append(opts, bubble.WithLogger(log.New(io.Discard, "", 0)))
	}
	field := bubble.NewField(list)
	driver := bubble.NewDriver(field, termview.NewSurface(screen), opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized.
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				driver.Resize(termview.Viewport(ev.Size()))
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					cancel()
					return
				}
			}
		}
	}()

	return driver.Run(ctx, termview.Viewport(screen.Size()))
}
