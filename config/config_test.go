package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mazewalk/mapgrid"
	"github.com/lixenwraith/mazewalk/states"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}

	if w, h := s.GridSize(); w != 41 || h != 41 {
		t.Errorf("grid size = %dx%d, want 41x41", w, h)
	}
	if s.View.WindowWidth != 21 || s.View.WindowHeight != 21 {
		t.Errorf("window = %dx%d", s.View.WindowWidth, s.View.WindowHeight)
	}
	if s.Edge() != states.Clamp {
		t.Errorf("edge = %v, want clamp", s.Edge())
	}

	pts := s.PortalPoints()
	if len(pts) != 1 || pts[0][0] != (mapgrid.Point{X: -2, Y: -2}) || pts[0][1] != (mapgrid.Point{X: 1, Y: 1}) {
		t.Errorf("portals = %v", pts)
	}

	repl := s.Replacements()
	if len(repl) != 2 || repl[0].Old != " " || repl[0].New != "_" || repl[1].Old != "█" {
		t.Errorf("replacements = %+v", repl)
	}
	if len(s.Menu.Title) == 0 {
		t.Error("default title is empty")
	}
}

func TestTable(t *testing.T) {
	s, _ := Default()
	table, err := s.Table()
	if err != nil {
		t.Fatal(err)
	}
	for _, tag := range []mapgrid.Tag{mapgrid.TagDefault, mapgrid.TagFloor, mapgrid.TagWall, mapgrid.TagPortal} {
		if !table.Has(tag) {
			t.Errorf("tag %q not declared", tag)
		}
	}
	if w, _ := table.Walkable(mapgrid.TagWall); w {
		t.Error("wall is walkable")
	}
	if w, _ := table.Walkable(mapgrid.TagPortal); !w {
		t.Error("portal is not walkable")
	}
	if table.CellWidth() != 2 {
		t.Errorf("cell width = %d", table.CellWidth())
	}

	wantPortal := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	if st, ok := table.Style(mapgrid.TagPortal); !ok || st != wantPortal {
		t.Errorf("portal style = %v %v", st, ok)
	}
	if _, ok := table.Style(mapgrid.TagWall); ok {
		t.Error("wall styled by default")
	}
}

func TestStyleOverlay(t *testing.T) {
	s, err := Parse([]byte(`
[styles.floor]
bg = "#303030"

[styles.wall]
fg = "default"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	table, err := s.Table()
	if err != nil {
		t.Fatal(err)
	}

	floor := tcell.StyleDefault.Background(tcell.GetColor("#303030"))
	for _, tag := range []mapgrid.Tag{mapgrid.TagDefault, mapgrid.TagFloor} {
		if st, ok := table.Style(tag); !ok || st != floor {
			t.Errorf("%s style = %v %v", tag, st, ok)
		}
	}
	if st, ok := table.Style(mapgrid.TagWall); !ok || st != tcell.StyleDefault.Foreground(tcell.ColorDefault) {
		t.Errorf("wall style = %v %v", st, ok)
	}
	// the embedded portal style survives the overlay
	if _, ok := table.Style(mapgrid.TagPortal); !ok {
		t.Error("portal style dropped")
	}
}

func TestParseOverlay(t *testing.T) {
	s, err := Parse([]byte(`
[maze]
columns = 5
rows = 4
seed = 7

[view]
window_width = 7
window_height = 5
edge = "wrap"

[menu]
rounding = "mod_round"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Maze.Columns != 5 || s.Maze.Rows != 4 || s.Maze.Seed != 7 {
		t.Errorf("maze = %+v", s.Maze)
	}
	if s.Edge() != states.Wrap {
		t.Errorf("edge = %v", s.Edge())
	}
	if s.Rounding() != states.ModRound {
		t.Errorf("rounding = %v", s.Rounding())
	}
	// untouched sections keep their defaults
	if s.Glyphs.Wall != "██" {
		t.Errorf("wall glyph = %q", s.Glyphs.Wall)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"zero columns", "[maze]\ncolumns = 0"},
		{"window wider than map", "[maze]\ncolumns = 2\nrows = 2\n[view]\nwindow_width = 6\nwindow_height = 5"},
		{"unknown edge", "[view]\nedge = \"bounce\""},
		{"mixed glyph widths", "[glyphs]\nportal = \"@\""},
		{"narrow avatar", "[avatar]\nidle = \"@\""},
		{"bad portal", "[[portals]]\nfrom = [1]\nto = [1, 1]"},
		{"bad filter pair", "[filter]\nreplace = [[\"a\"]]"},
		{"volume out of range", "[audio]\nvolume = 150"},
		{"unknown key", "[maze]\nheight = 3"},
		{"style for unknown glyph", "[styles.lava]\nfg = \"red\""},
		{"unknown colour", "[styles.wall]\nfg = \"blurple\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}

	if _, err := Parse([]byte("[maze")); err == nil {
		t.Error("malformed TOML accepted")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.toml")
	if err := os.WriteFile(path, []byte("[maze]\ncolumns = 11\nrows = 11\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Maze.Columns != 11 {
		t.Errorf("columns = %d", s.Maze.Columns)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("missing explicit path accepted")
	}
}

func TestLoadWorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	if s.Maze.Columns != 20 {
		t.Errorf("defaults not used: columns = %d", s.Maze.Columns)
	}

	if err := os.WriteFile(DefaultPath, []byte("[maze]\ncolumns = 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = Load("")
	if err != nil {
		t.Fatalf("Load with ./%s: %v", DefaultPath, err)
	}
	if s.Maze.Columns != 12 {
		t.Errorf("working directory file not read: columns = %d", s.Maze.Columns)
	}
}

func TestAudioConfig(t *testing.T) {
	t.Setenv("MAZEWALK_AUDIO_ENABLED", "")
	t.Setenv("MAZEWALK_MASTER_VOLUME", "")
	s, _ := Parse([]byte("[audio]\nenabled = true\nvolume = 80"))
	cfg := s.AudioConfig()
	if !cfg.Enabled || cfg.MasterVolume != 0.8 {
		t.Errorf("audio = %+v", cfg)
	}

	t.Setenv("MAZEWALK_AUDIO_ENABLED", "false")
	if s.AudioConfig().Enabled {
		t.Error("env override ignored")
	}
}
