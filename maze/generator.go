package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/mazewalk/mapgrid"
)

// MaxCells caps Columns*Rows; larger mazes are rejected before any allocation
const MaxCells = 1 << 22

var (
	ErrInvalidSize      = errors.New("invalid maze size")
	ErrGenerationFailed = errors.New("maze generation failed")
)

type Config struct {
	// Maze graph dimensions. The resulting grid is (2*Columns+1) x (2*Rows+1).
	Columns, Rows int

	Seed int64      // Optional (0 = Random)
	Rand *rand.Rand // Optional, takes precedence over Seed

	// Start cell in maze coordinates (nil = random)
	Start *mapgrid.Point

	// Maximum loop iterations before giving up (0 = 4*Columns*Rows+4)
	WorkBudget int

	Table   *mapgrid.Table // nil = mapgrid.DefaultTable()
	Wall    mapgrid.Tag    // "" = mapgrid.TagWall
	Passage mapgrid.Tag    // "" = mapgrid.TagFloor
}

type Result struct {
	Grid *mapgrid.Grid

	// Start is the grid coordinate of the cell the walk began from
	Start mapgrid.Point

	// Cells is the number of maze cells reached, always Columns*Rows on success
	Cells int

	// Passages is the number of walls opened, always Cells-1 on success
	Passages int

	// Steps is the number of loop iterations the walk took
	Steps int
}

// Generate carves a perfect maze (uniform random spanning tree walk) with an iterative backtracker.
// Even grid coordinates on both axes stay walls, odd/odd coordinates are always passages.
func Generate(cfg Config) (*Result, error) {
	if cfg.Columns < 1 || cfg.Rows < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Columns, cfg.Rows)
	}
	if cfg.Columns > MaxCells/cfg.Rows {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidSize, cfg.Columns, cfg.Rows, MaxCells)
	}

	// 1. Resolve tags
	table := cfg.Table
	if table == nil {
		table = mapgrid.DefaultTable()
	}
	wall, passage := cfg.Wall, cfg.Passage
	if wall == "" {
		wall = mapgrid.TagWall
	}
	if passage == "" {
		passage = mapgrid.TagFloor
	}
	if ok, err := table.Walkable(passage); err != nil || !ok {
		return nil, fmt.Errorf("passage tag %q must be declared walkable", passage)
	}

	// 2. Initialize grid, filled with walls
	grid, err := mapgrid.New(2*cfg.Columns+1, 2*cfg.Rows+1, table, wall)
	if err != nil {
		return nil, err
	}

	// 3. RNG setup
	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	budget := cfg.WorkBudget
	if budget <= 0 {
		budget = 4*cfg.Columns*cfg.Rows + 4
	}

	// 4. Walk
	g := newGraph(cfg.Columns, cfg.Rows)
	start := g.resolveStart(cfg.Start, rng)

	steps, err := g.walk(start, rng, budget)
	if err != nil {
		return nil, err
	}

	// 5. Carve: every visited cell and every opened wall becomes passage
	g.visited.Each(func(c mapgrid.Point) {
		p := toGrid(c)
		_ = grid.DrawTo(passage, p.X, p.Y)
	})
	for _, w := range g.passages {
		_ = grid.DrawTo(passage, w.X, w.Y)
	}

	return &Result{
		Grid:     grid,
		Start:    toGrid(start),
		Cells:    g.visited.Size(),
		Passages: len(g.passages),
		Steps:    steps,
	}, nil
}

// edge is an unordered pair of adjacent maze cells, a < b in row-major order
type edge struct {
	a, b mapgrid.Point
}

func makeEdge(p, q mapgrid.Point) edge {
	if q.Y < p.Y || (q.Y == p.Y && q.X < p.X) {
		p, q = q, p
	}
	return edge{a: p, b: q}
}

// graph is the transient maze-cell structure used during a single walk
type graph struct {
	cols, rows int
	visited    mapset.Set[mapgrid.Point]

	// Opened walls keyed by the pair of cells they separate, values in grid coordinates
	passages map[edge]mapgrid.Point
}

func newGraph(cols, rows int) *graph {
	return &graph{
		cols:     cols,
		rows:     rows,
		visited:  mapset.New[mapgrid.Point](),
		passages: make(map[edge]mapgrid.Point, cols*rows),
	}
}

// North, east, south, west in maze coordinates
var dirs = [4]mapgrid.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

func (g *graph) resolveStart(p *mapgrid.Point, rng *rand.Rand) mapgrid.Point {
	if p == nil {
		return mapgrid.Point{X: rng.Intn(g.cols), Y: rng.Intn(g.rows)}
	}
	x, y := p.X, p.Y
	// Clamp
	if x < 0 {
		x = 0
	}
	if x >= g.cols {
		x = g.cols - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= g.rows {
		y = g.rows - 1
	}
	return mapgrid.Point{X: x, Y: y}
}

func (g *graph) walk(start mapgrid.Point, rng *rand.Rand, budget int) (int, error) {
	stack := []mapgrid.Point{start}
	g.visited.Put(start)

	candidates := make([]mapgrid.Point, 0, 4)
	steps := 0

	for len(stack) > 0 {
		steps++
		if steps > budget {
			return steps, fmt.Errorf("%w: work budget %d exhausted with %d of %d cells visited",
				ErrGenerationFailed, budget, g.visited.Size(), g.cols*g.rows)
		}

		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range dirs {
			next := mapgrid.Point{X: curr.X + d.X, Y: curr.Y + d.Y}
			if next.X < 0 || next.X >= g.cols || next.Y < 0 || next.Y >= g.rows {
				continue
			}
			if !g.visited.Has(next) {
				candidates = append(candidates, next)
			}
		}

		if len(candidates) > 0 {
			next := candidates[rng.Intn(len(candidates))]
			g.visited.Put(next)
			g.passages[makeEdge(curr, next)] = wallBetween(curr, next)
			stack = append(stack, next)
		} else {
			stack = stack[:len(stack)-1]
		}
	}

	return steps, nil
}

// toGrid maps a maze cell to its grid coordinate
func toGrid(c mapgrid.Point) mapgrid.Point {
	return mapgrid.Point{X: 2*c.X + 1, Y: 2*c.Y + 1}
}

// wallBetween returns the grid coordinate midway between two adjacent maze cells
func wallBetween(a, b mapgrid.Point) mapgrid.Point {
	ga, gb := toGrid(a), toGrid(b)
	return mapgrid.Point{X: (ga.X + gb.X) / 2, Y: (ga.Y + gb.Y) / 2}
}
