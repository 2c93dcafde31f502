// Package config loads the session description: maze size, view window,
// glyphs and their colours, filter, border faces, portals, menus and audio.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mazewalk/audio"
	"github.com/lixenwraith/mazewalk/mapgrid"
	"github.com/lixenwraith/mazewalk/states"
	"github.com/lixenwraith/mazewalk/surface"
)

// DefaultPath is read when no explicit path is given and the file exists
const DefaultPath = "mazewalk.toml"

//go:embed default.toml
var defaultTOML []byte

var ErrInvalid = errors.New("invalid configuration")

type Session struct {
	Maze    Maze     `toml:"maze"`
	View    View     `toml:"view"`
	Glyphs  Glyphs   `toml:"glyphs"`
	Styles  Styles   `toml:"styles"`
	Avatar  Avatar   `toml:"avatar"`
	Filter  Filter   `toml:"filter"`
	Border  Border   `toml:"border"`
	Audio   Audio    `toml:"audio"`
	Portals []Portal `toml:"portals"`
	Menu    Menu     `toml:"menu"`
}

// Maze sizes are in maze cells; the grid is (2*Columns+1) x (2*Rows+1)
type Maze struct {
	Columns    int   `toml:"columns"`
	Rows       int   `toml:"rows"`
	Seed       int64 `toml:"seed"`
	WorkBudget int   `toml:"work_budget"`
}

type View struct {
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`
	Edge         string `toml:"edge"`
}

type Glyphs struct {
	Floor  string `toml:"floor"`
	Wall   string `toml:"wall"`
	Portal string `toml:"portal"`
}

// Style colours one cell tag; colours are tcell names ("yellow") or "#rrggbb"
type Style struct {
	Fg   string `toml:"fg"`
	Bg   string `toml:"bg"`
	Bold bool   `toml:"bold"`
}

// Styles is keyed by glyph name: floor, wall, portal
type Styles map[string]Style

var styledTags = map[string][]mapgrid.Tag{
	"floor":  {mapgrid.TagDefault, mapgrid.TagFloor},
	"wall":   {mapgrid.TagWall},
	"portal": {mapgrid.TagPortal},
}

func parseColor(name string) (tcell.Color, error) {
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault && !strings.EqualFold(name, "default") {
		return c, fmt.Errorf("%w: unknown colour %q", ErrInvalid, name)
	}
	return c, nil
}

// TcellStyle converts the entry to a screen style
func (st Style) TcellStyle() (tcell.Style, error) {
	out := tcell.StyleDefault
	if st.Fg != "" {
		c, err := parseColor(st.Fg)
		if err != nil {
			return out, err
		}
		out = out.Foreground(c)
	}
	if st.Bg != "" {
		c, err := parseColor(st.Bg)
		if err != nil {
			return out, err
		}
		out = out.Background(c)
	}
	return out.Bold(st.Bold), nil
}

type Avatar struct {
	Idle  string `toml:"idle"`
	Left  string `toml:"left"`
	Right string `toml:"right"`
	Up    string `toml:"up"`
	Down  string `toml:"down"`
}

// Filter holds ordered [old, new] replacement pairs
type Filter struct {
	Replace [][]string `toml:"replace"`
}

type Border struct {
	All         string `toml:"all"`
	Horizontal  string `toml:"horizontal"`
	Vertical    string `toml:"vertical"`
	Corner      string `toml:"corner"`
	Top         string `toml:"top"`
	Bottom      string `toml:"bottom"`
	Left        string `toml:"left"`
	Right       string `toml:"right"`
	TopLeft     string `toml:"top_left"`
	TopRight    string `toml:"top_right"`
	BottomLeft  string `toml:"bottom_left"`
	BottomRight string `toml:"bottom_right"`
}

type Audio struct {
	Enabled bool `toml:"enabled"`
	Volume  int  `toml:"volume"` // 0-100
}

// Portal coordinates may be negative, counting from the far edge
type Portal struct {
	From []int `toml:"from"`
	To   []int `toml:"to"`
}

type Menu struct {
	Title      []string `toml:"title"`
	PauseTitle []string `toml:"pause_title"`
	Rounding   string   `toml:"rounding"`
}

// Default returns the embedded configuration
func Default() (*Session, error) {
	s := &Session{}
	if err := decode(defaultTOML, s, "default.toml"); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the embedded defaults, then overlays path if given, else ./mazewalk.toml if present
func Load(path string) (*Session, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			return s, s.Validate()
		}
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := decode(data, s, path); err != nil {
		return nil, err
	}
	return s, s.Validate()
}

// Parse overlays TOML data on the embedded defaults
func Parse(data []byte) (*Session, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	if err := decode(data, s, "input"); err != nil {
		return nil, err
	}
	return s, s.Validate()
}

func decode(data []byte, s *Session, name string) error {
	md, err := toml.Decode(string(data), s)
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: %s: unknown key %q", ErrInvalid, name, undecoded[0].String())
	}
	return nil
}

// GridSize is the map size in cells for the configured maze
func (s *Session) GridSize() (w, h int) {
	return 2*s.Maze.Columns + 1, 2*s.Maze.Rows + 1
}

// Validate checks sizes, edge policy, glyph widths and portal shapes
func (s *Session) Validate() error {
	if s.Maze.Columns < 1 || s.Maze.Rows < 1 {
		return fmt.Errorf("%w: maze size %dx%d", ErrInvalid, s.Maze.Columns, s.Maze.Rows)
	}
	if s.Maze.WorkBudget < 0 {
		return fmt.Errorf("%w: negative work budget", ErrInvalid)
	}

	gw, gh := s.GridSize()
	if s.View.WindowWidth < 1 || s.View.WindowHeight < 1 ||
		s.View.WindowWidth > gw || s.View.WindowHeight > gh {
		return fmt.Errorf("%w: window %dx%d for a %dx%d map",
			ErrInvalid, s.View.WindowWidth, s.View.WindowHeight, gw, gh)
	}

	if _, err := states.ParseEdge(s.View.Edge); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := sameWidth("glyph", s.Glyphs.Floor, s.Glyphs.Wall, s.Glyphs.Portal,
		s.Avatar.Idle, s.Avatar.Left, s.Avatar.Right, s.Avatar.Up, s.Avatar.Down); err != nil {
		return err
	}

	for name, st := range s.Styles {
		if _, ok := styledTags[name]; !ok {
			return fmt.Errorf("%w: style for unknown glyph %q", ErrInvalid, name)
		}
		if _, err := st.TcellStyle(); err != nil {
			return fmt.Errorf("style %s: %w", name, err)
		}
	}

	for i, pair := range s.Filter.Replace {
		if len(pair) != 2 || pair[0] == "" {
			return fmt.Errorf("%w: filter replacement %d must be a non-empty [old, new] pair", ErrInvalid, i)
		}
	}

	for i, p := range s.Portals {
		if len(p.From) != 2 || len(p.To) != 2 {
			return fmt.Errorf("%w: portal %d needs [x, y] from and to", ErrInvalid, i)
		}
	}

	if s.Audio.Volume < 0 || s.Audio.Volume > 100 {
		return fmt.Errorf("%w: audio volume %d outside 0-100", ErrInvalid, s.Audio.Volume)
	}
	return nil
}

func sameWidth(what string, glyphs ...string) error {
	want := mapgrid.Width(glyphs[0])
	if want == 0 {
		return fmt.Errorf("%w: empty %s", ErrInvalid, what)
	}
	for _, g := range glyphs[1:] {
		if w := mapgrid.Width(g); w != want {
			return fmt.Errorf("%w: %s %q is %d wide, expected %d", ErrInvalid, what, g, w, want)
		}
	}
	return nil
}

// Table builds the cell table from the glyph and style sections
func (s *Session) Table() (*mapgrid.Table, error) {
	t := mapgrid.NewTable()
	decls := []struct {
		tag      mapgrid.Tag
		glyph    string
		walkable bool
	}{
		{mapgrid.TagDefault, s.Glyphs.Floor, true},
		{mapgrid.TagFloor, s.Glyphs.Floor, true},
		{mapgrid.TagWall, s.Glyphs.Wall, false},
		{mapgrid.TagPortal, s.Glyphs.Portal, true},
	}
	for _, d := range decls {
		if err := t.Declare(d.tag, d.glyph, d.walkable); err != nil {
			return nil, err
		}
	}
	for name, st := range s.Styles {
		style, err := st.TcellStyle()
		if err != nil {
			return nil, err
		}
		for _, tag := range styledTags[name] {
			if err := t.SetStyle(tag, style); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func (s *Session) Edge() states.Edge {
	e, _ := states.ParseEdge(s.View.Edge)
	return e
}

func (s *Session) AvatarGlyphs() states.Avatar {
	a := s.Avatar
	return states.Avatar{Idle: a.Idle, Left: a.Left, Right: a.Right, Up: a.Up, Down: a.Down}
}

func (s *Session) Replacements() []surface.Replacement {
	out := make([]surface.Replacement, 0, len(s.Filter.Replace))
	for _, pair := range s.Filter.Replace {
		if len(pair) == 2 {
			out = append(out, surface.Replacement{Old: pair[0], New: pair[1]})
		}
	}
	return out
}

func (s *Session) Faces() surface.Faces {
	b := s.Border
	return surface.Faces{
		All: b.All, Horizontal: b.Horizontal, Vertical: b.Vertical, Corner: b.Corner,
		Top: b.Top, Bottom: b.Bottom, Left: b.Left, Right: b.Right,
		TopLeft: b.TopLeft, TopRight: b.TopRight, BottomLeft: b.BottomLeft, BottomRight: b.BottomRight,
	}
}

// PortalPoints returns (from, to) pairs in declaration order
func (s *Session) PortalPoints() [][2]mapgrid.Point {
	out := make([][2]mapgrid.Point, 0, len(s.Portals))
	for _, p := range s.Portals {
		if len(p.From) != 2 || len(p.To) != 2 {
			continue
		}
		out = append(out, [2]mapgrid.Point{
			{X: p.From[0], Y: p.From[1]},
			{X: p.To[0], Y: p.To[1]},
		})
	}
	return out
}

func (s *Session) Rounding() states.Rounding {
	return states.ParseRounding(s.Menu.Rounding)
}

// AudioConfig maps the audio section onto the sound manager config, then applies MAZEWALK_* env overrides
func (s *Session) AudioConfig() *audio.Config {
	cfg := audio.DefaultConfig()
	cfg.Enabled = s.Audio.Enabled
	cfg.MasterVolume = float64(s.Audio.Volume) / 100.0
	return audio.ApplyEnv(cfg)
}
