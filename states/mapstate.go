package states

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/mazewalk/audio"
	"github.com/lixenwraith/mazewalk/engine"
	"github.com/lixenwraith/mazewalk/input"
	"github.com/lixenwraith/mazewalk/mapgrid"
	"github.com/lixenwraith/mazewalk/surface"
)

var (
	ErrStartOutOfBounds = errors.New("start position outside map")
	ErrAvatarWidth      = errors.New("avatar glyph width does not match map cell width")
	ErrWindowTooLarge   = errors.New("window larger than map")
)

// Edge decides what happens to a move that leaves the map
type Edge uint8

const (
	Clamp Edge = iota // stay on the last row or column
	Wrap              // continue from the opposite side
)

// ParseEdge accepts "clamp" and "wrap"
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(s) {
	case "", "clamp":
		return Clamp, nil
	case "wrap":
		return Wrap, nil
	}
	return Clamp, fmt.Errorf("unknown edge policy %q", s)
}

func (e Edge) String() string {
	if e == Wrap {
		return "wrap"
	}
	return "clamp"
}

func (e Edge) apply(v, n int) int {
	if e == Wrap {
		return ((v % n) + n) % n
	}
	return min(n-1, max(0, v))
}

// Avatar holds the player glyphs, each one map cell wide
type Avatar struct {
	Idle, Left, Right, Up, Down string
}

// DefaultAvatar is P1 facing nowhere, arrows when moving
var DefaultAvatar = Avatar{Idle: "P1", Left: "<<", Right: ">>", Up: "^^", Down: "vv"}

func (a Avatar) glyphs() []string {
	return []string{a.Idle, a.Left, a.Right, a.Up, a.Down}
}

// MapOption configures a Map
type MapOption func(*Map)

// WithEdge sets the edge policy, Clamp by default
func WithEdge(e Edge) MapOption {
	return func(m *Map) { m.edge = e }
}

// WithAvatar replaces the player glyphs
func WithAvatar(a Avatar) MapOption {
	return func(m *Map) { m.avatar = a }
}

// WithCues plays a bump when a move is blocked
func WithCues(c audio.Cues) MapOption {
	return func(m *Map) {
		if c != nil {
			m.cues = c
		}
	}
}

// Map lets the player walk a grid with the arrow keys.
// A static map redraws only the two affected cells per move; a scrolling map
// redraws its whole window around the player.
type Map struct {
	engine.Base
	grid   *mapgrid.Grid
	pos    mapgrid.Point
	glyph  string
	moved  bool
	edge   Edge
	avatar Avatar
	cues   audio.Cues

	scrolling bool
	winW      int
	winH      int
}

// NewMap creates a static map state
func NewMap(name string, surf surface.Surface, grid *mapgrid.Grid, start mapgrid.Point, opts ...MapOption) (*Map, error) {
	if !grid.InBounds(start.X, start.Y) {
		return nil, fmt.Errorf("%w: %v in %dx%d", ErrStartOutOfBounds, start, grid.Width(), grid.Height())
	}

	m := &Map{
		Base:   engine.NewBase(name, surf),
		grid:   grid,
		pos:    start,
		avatar: DefaultAvatar,
		cues:   audio.Silent{},
	}
	for _, opt := range opts {
		opt(m)
	}

	cw := grid.Table().CellWidth()
	for _, g := range m.avatar.glyphs() {
		if w := mapgrid.Width(g); w != cw {
			return nil, fmt.Errorf("%w: %q is %d wide, cells are %d", ErrAvatarWidth, g, w, cw)
		}
	}
	m.glyph = m.avatar.Idle
	return m, nil
}

// NewScrolling creates a map state that shows a fixed window centered on the player
func NewScrolling(name string, surf surface.Surface, grid *mapgrid.Grid, start mapgrid.Point, winW, winH int, opts ...MapOption) (*Map, error) {
	if winW < 1 || winH < 1 || winW > grid.Width() || winH > grid.Height() {
		return nil, fmt.Errorf("%w: window %dx%d, map %dx%d", ErrWindowTooLarge, winW, winH, grid.Width(), grid.Height())
	}
	m, err := NewMap(name, surf, grid, start, opts...)
	if err != nil {
		return nil, err
	}
	m.scrolling = true
	m.winW, m.winH = winW, winH
	return m, nil
}

func (m *Map) Grid() *mapgrid.Grid { return m.grid }
func (m *Map) Position() mapgrid.Point { return m.pos }
func (m *Map) Facing() string { return m.glyph }
func (m *Map) Moved() bool { return m.moved }
func (m *Map) Edge() Edge { return m.edge }
func (m *Map) Scrolling() bool { return m.scrolling }
func (m *Map) Window() (w, h int) { return m.winW, m.winH }

// View returns the map rectangle currently on screen
func (m *Map) View() (x, y, w, h int) {
	if !m.scrolling {
		return 0, 0, m.grid.Width(), m.grid.Height()
	}
	x, y = Viewport(m.pos.X, m.pos.Y, m.winW, m.winH, m.grid.Width(), m.grid.Height())
	return x, y, m.winW, m.winH
}

func (m *Map) InitialDraw() error {
	s := m.Surface()
	if err := s.Clear(); err != nil {
		return err
	}

	x0, y0, w, h := m.View()
	for row := 0; row < h; row++ {
		if err := m.drawCells(row, 0, y0+row, x0, x0+w); err != nil {
			return err
		}
	}
	if err := m.drawAvatar(x0, y0); err != nil {
		return err
	}
	return s.Present()
}

func (m *Map) drawAvatar(x0, y0 int) error {
	cw := m.grid.Table().CellWidth()
	return m.Surface().WriteText(m.pos.Y-y0, (m.pos.X-x0)*cw, m.glyph)
}

// drawCells writes map columns [x0, x1) of grid row y at screen (row, col), one write per style run
func (m *Map) drawCells(row, col, y, x0, x1 int) error {
	segs, err := m.grid.Segments(y, x0, x1)
	if err != nil {
		return err
	}
	cw := m.grid.Table().CellWidth()
	for _, seg := range segs {
		c := col + seg.Offset*cw
		if seg.Styled {
			err = surface.WriteStyled(m.Surface(), row, c, seg.Text, seg.Style)
		} else {
			err = m.Surface().WriteText(row, c, seg.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// restoreCell redraws the map cell under the avatar
func (m *Map) restoreCell() error {
	if !m.grid.InBounds(m.pos.X, m.pos.Y) {
		return fmt.Errorf("%w: %v", mapgrid.ErrOutOfBounds, m.pos)
	}
	cw := m.grid.Table().CellWidth()
	return m.drawCells(m.pos.Y, m.pos.X*cw, m.pos.Y, m.pos.X, m.pos.X+1)
}

func (m *Map) HandleInput(t *engine.Turn, ev input.Event) (engine.Signal, error) {
	if ev.Kind != input.KeyDown {
		return engine.Continue, nil
	}

	if err := m.step(ev.Key); err != nil {
		return m.Fail(err)
	}
	return m.CheckTriggers(t, engine.EvalContext{}.WithPosition(m.pos, m.moved))
}

// step applies one key: facing always follows the direction, the position only
// when the target cell is walkable
func (m *Map) step(k input.Key) error {
	if !m.scrolling {
		if err := m.restoreCell(); err != nil {
			return err
		}
	}

	next := m.pos
	old := m.glyph
	direction := true
	switch k {
	case input.Left:
		next.X--
		m.glyph = m.avatar.Left
	case input.Right:
		next.X++
		m.glyph = m.avatar.Right
	case input.Up:
		next.Y--
		m.glyph = m.avatar.Up
	case input.Down:
		next.Y++
		m.glyph = m.avatar.Down
	default:
		direction = false
	}

	next.X = m.edge.apply(next.X, m.grid.Width())
	next.Y = m.edge.apply(next.Y, m.grid.Height())

	m.moved = m.glyph != old
	if next != m.pos {
		if m.grid.IsWalkable(next.X, next.Y) {
			m.pos = next
			m.moved = true
		} else if direction {
			m.cues.Bump()
		}
	}

	if m.scrolling {
		if m.moved {
			return m.InitialDraw()
		}
		return nil
	}
	if err := m.drawAvatar(0, 0); err != nil {
		return err
	}
	return m.Surface().Present()
}

// Relocate moves the player to p and redraws
func (m *Map) Relocate(p mapgrid.Point) error {
	if !m.grid.InBounds(p.X, p.Y) {
		return fmt.Errorf("%w: relocation target %v", ErrStartOutOfBounds, p)
	}
	if m.scrolling {
		m.pos = p
		return m.InitialDraw()
	}
	if err := m.restoreCell(); err != nil {
		return err
	}
	m.pos = p
	if err := m.drawAvatar(0, 0); err != nil {
		return err
	}
	return m.Surface().Present()
}

// wrapPoint maps negative or overflowing coordinates into the grid
func (m *Map) wrapPoint(p mapgrid.Point) mapgrid.Point {
	w, h := m.grid.Width(), m.grid.Height()
	return mapgrid.Point{X: ((p.X % w) + w) % w, Y: ((p.Y % h) + h) % h}
}

// LinkRelocation adds a portal: stepping onto trip moves the player to dest.
// Negative coordinates count from the far edge. Both cells are drawn with the portal tag.
func (m *Map) LinkRelocation(trip, dest mapgrid.Point) error {
	from, to := m.wrapPoint(trip), m.wrapPoint(dest)
	if err := m.grid.DrawTo(mapgrid.TagPortal, from.X, from.Y); err != nil {
		return err
	}
	if err := m.grid.DrawTo(mapgrid.TagPortal, to.X, to.Y); err != nil {
		return err
	}
	m.AddTrigger(&engine.Relocate{From: from, To: to})
	return nil
}

// LinkRelocationCycle links each point to the next, and the last back to the first
func (m *Map) LinkRelocationCycle(points ...mapgrid.Point) error {
	for i := range points {
		prev := points[(i+len(points)-1)%len(points)]
		if err := m.LinkRelocation(prev, points[i]); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ engine.State     = (*Map)(nil)
	_ engine.Relocator = (*Map)(nil)
	_ engine.State     = (*Menu)(nil)
)
