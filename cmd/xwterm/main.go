// Command xwterm plays crossword puzzles in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bodul/xwplayer/puzzle"
	"github.com/bodul/xwplayer/source"
)

type loaded struct {
	desc *puzzle.Descriptor
	err  error
}

type player struct {
	screen     tcell.Screen
	state      puzzle.Session
	source     source.Source
	catalog    *source.Catalog
	level      int
	difficulty puzzle.Difficulty
	timeout    time.Duration
	results    chan loaded
	msg        string
}

// load starts fetching the next puzzle. A fixed catalog level is served
// immediately; anything else goes through the generator in the background.
func (p *player) load() {
	if p.level >= 0 {
		desc, err := p.catalog.Level(p.level)
		p.level = (p.level + 1) % p.catalog.Len()
		p.finishLoad(loaded{desc, err})
		return
	}

	p.state = p.state.Loading(p.difficulty)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		desc, err := p.source.Generate(ctx, p.difficulty)
		p.results <- loaded{desc, err}
	}()
}

func (p *player) finishLoad(r loaded) {
	if r.err != nil {
		log.Printf("Échec de la génération : %v", r.err)
		p.state = p.state.Fail()
		p.msg = "Impossible de charger une grille."
		return
	}
	d := p.difficulty
	if p.level >= 0 || d == "" {
		d = source.TierOfSize(r.desc.Dimensions)
	}
	p.state = p.state.Start(*r.desc, d)
	p.msg = ""
}

// handle applies a key press. It returns false when the player quits.
func (p *player) handle(ev *tcell.EventKey) bool {
	cmd, ok := translate(ev, p.state.Selection)
	if !ok {
		return true
	}
	switch {
	case cmd.quit:
		p.state = p.state.Quit()
		return false
	case cmd.next:
		if p.state.Status != puzzle.StatusLoading {
			p.load()
		}
	default:
		before := p.state.Status
		p.state = p.state.Apply(cmd.event)
		p.msg = ""
		if cmd.event.Type == puzzle.EventValidate && before == puzzle.StatusPlaying && p.state.Status != puzzle.StatusWon {
			p.msg = "Pas encore : les cases en vert sont justes."
		}
	}
	return true
}

func (p *player) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	p.load()
	for {
		draw(p.screen, p.state, p.msg)

		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !p.handle(ev) {
					return
				}
			case *tcell.EventResize:
				p.screen.Sync()
			}
		case r := <-p.results:
			p.finishLoad(r)
		case <-ticker.C:
			p.state = p.state.Tick()
		}
	}
}

func main() {
	level := flag.Int("level", -1, "catalog level to start with (0-based); -1 picks by difficulty")
	difficulty := flag.String("difficulty", string(puzzle.Easy), "difficulty of generated puzzles: easy, medium or hard")
	alphabet := flag.String("alphabet", puzzle.Arabic.Name, "accepted letters: arabic or latin")
	timeout := flag.Duration("timeout", 90*time.Second, "puzzle generation timeout")
	logFile := flag.String("log", "", "write logs to this file; they are discarded otherwise")
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	a, err := puzzle.LookupAlphabet(*alphabet)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	d, err := source.ParseDifficulty(*difficulty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	catalog := source.DefaultCatalog()
	if *level >= catalog.Len() {
		fmt.Fprintf(os.Stderr, "level must be below %d\n", catalog.Len())
		os.Exit(2)
	}

	gen := source.Chain{catalog}
	cfg := source.GeminiConfig{
		Project: os.Getenv("GCP_PROJECT_ID"),
		Region:  os.Getenv("GCP_REGION"),
		APIKey:  os.Getenv("GEMINI_API_KEY"),
	}
	if cfg.Enabled() && *level < 0 {
		gemini, err := source.NewGemini(context.Background(), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gemini: %v\n", err)
			os.Exit(1)
		}
		gen = source.Chain{gemini, catalog}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	p := &player{
		screen:     screen,
		state:      puzzle.NewSession(a),
		source:     gen,
		catalog:    catalog,
		level:      *level,
		difficulty: d,
		timeout:    *timeout,
		results:    make(chan loaded, 1),
	}
	p.run()
}
