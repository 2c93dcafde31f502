package main

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/lixenwraith/mazewalk/mapgrid"
	"github.com/lixenwraith/mazewalk/maze"
)

var sgr = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestGetInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"12\n", 12},
		{"\n", 7},
		{"abc\n", 7},
		{"  -3 \n", -3},
	}
	for _, tt := range tests {
		r := bufio.NewReader(strings.NewReader(tt.input))
		if got := getInt(r, "", 7); got != tt.want {
			t.Errorf("getInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestDraw(t *testing.T) {
	res, err := maze.Generate(maze.Config{Columns: 4, Rows: 3, Seed: 9})
	if err != nil {
		t.Fatal(err)
	}
	start := mapgrid.Point{X: 1, Y: 1}
	end := mapgrid.Point{X: 7, Y: 5}
	path := maze.Solve(res.Grid, start, end)
	if path == nil {
		t.Fatal("perfect maze has no path between corners")
	}

	var buf bytes.Buffer
	draw(&buf, res.Grid, start, end, path)

	plain := sgr.ReplaceAllString(buf.String(), "")
	lines := strings.Split(strings.TrimSuffix(plain, "\n"), "\n")
	if len(lines) != res.Grid.Height() {
		t.Fatalf("lines = %d, want %d", len(lines), res.Grid.Height())
	}
	if []rune(lines[1])[1] != 'S' || []rune(lines[5])[7] != 'E' {
		t.Errorf("endpoints not drawn:\n%s", plain)
	}
	if got := strings.Count(plain, "•"); got != len(path)-2 {
		t.Errorf("path dots = %d, want %d", got, len(path)-2)
	}
}
