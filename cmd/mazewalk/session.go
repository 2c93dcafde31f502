package main

import (
	"fmt"
	"log"

	"github.com/lixenwraith/mazewalk/audio"
	"github.com/lixenwraith/mazewalk/config"
	"github.com/lixenwraith/mazewalk/engine"
	"github.com/lixenwraith/mazewalk/input"
	"github.com/lixenwraith/mazewalk/mapgrid"
	"github.com/lixenwraith/mazewalk/maze"
	"github.com/lixenwraith/mazewalk/states"
	"github.com/lixenwraith/mazewalk/surface"
)

var (
	titleOptions = []string{"Start (s)", "Quit (q)"}
	pauseOptions = []string{"Continue (c)", "Return to menu (r)", "Quit (q)"}
)

// start cell of every maze, the top-left passage
var entrance = mapgrid.Point{X: 1, Y: 1}

// newSession wires the demo: title menu, a freshly generated scrolling maze per
// start, and a transient pause menu over the maze.
func newSession(cfg *config.Session, root surface.Surface, source input.Source, cues audio.Cues) (*engine.Scheduler, error) {
	sched := engine.NewScheduler(root, source)
	sched.OnEnter = func(string) { cues.Transition() }

	title, err := states.NewMenu("title", root, states.MenuConfig{
		Title:    cfg.Menu.Title,
		Options:  titleOptions,
		Rounding: cfg.Rounding(),
		Cues:     cues,
	})
	if err != nil {
		return nil, fmt.Errorf("title menu: %w", err)
	}

	pause, err := states.NewMenu("pause", root, states.MenuConfig{
		Title:    cfg.Menu.PauseTitle,
		Options:  pauseOptions,
		Rounding: cfg.Rounding(),
		Cues:     cues,
	})
	if err != nil {
		return nil, fmt.Errorf("pause menu: %w", err)
	}

	mazeEntry := engine.Deferred("maze", func() (engine.State, error) {
		return newMazeState(cfg, root, cues, pause)
	})

	title.LinkChange(nil, engine.Chosen("Quit"), engine.BindKey(input.Rune('q')))
	title.LinkChange([]engine.Entry{mazeEntry}, engine.Chosen("Start"), engine.BindKey(input.Rune('s')))

	// the paused maze is already queued behind the pause menu
	pause.LinkChange(nil, engine.Chosen("Continue"), engine.Appending(), engine.BindKey(input.Rune('c')))
	pause.LinkChange([]engine.Entry{engine.Instance(title)}, engine.Chosen("Return to menu"), engine.BindKey(input.Rune('r')))
	pause.LinkChange(nil, engine.Chosen("Quit"), engine.BindKey(input.Rune('q')))

	sched.Enqueue(engine.Instance(title))
	return sched, nil
}

// newMazeState generates a maze and frames its scrolling view through the filter
func newMazeState(cfg *config.Session, root surface.Surface, cues audio.Cues, pause *states.Menu) (engine.State, error) {
	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	res, err := maze.Generate(maze.Config{
		Columns:    cfg.Maze.Columns,
		Rows:       cfg.Maze.Rows,
		Seed:       cfg.Maze.Seed,
		WorkBudget: cfg.Maze.WorkBudget,
		Table:      table,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("maze: %dx%d grid, %d cells, %d steps", res.Grid.Width(), res.Grid.Height(), res.Cells, res.Steps)

	m, err := states.NewScrolling("maze", nil, res.Grid, entrance,
		cfg.View.WindowWidth, cfg.View.WindowHeight,
		states.WithEdge(cfg.Edge()),
		states.WithAvatar(cfg.AvatarGlyphs()),
		states.WithCues(cues),
	)
	if err != nil {
		return nil, err
	}

	filter := surface.NewFilter(root, cfg.Replacements()...)
	frame, err := states.FrameFor(filter, 0, 0, m, cfg.Faces())
	if err != nil {
		return nil, err
	}
	m.SetSurface(frame)

	m.LinkChange([]engine.Entry{engine.Instance(pause)}, engine.Never, engine.Transient(), engine.BindKey(input.Rune('p')))
	for _, p := range cfg.PortalPoints() {
		if err := m.LinkRelocation(p[0], p[1]); err != nil {
			return nil, fmt.Errorf("portal %v -> %v: %w", p[0], p[1], err)
		}
	}
	return m, nil
}
