package surface

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimBackend(t *testing.T, w, h int) (*Backend, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return NewBackend(screen), screen
}

func cellAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestBackendWrite(t *testing.T) {
	b, screen := newSimBackend(t, 10, 3)

	if err := b.WriteText(1, 7, "abcdef"); err != nil {
		t.Fatal(err)
	}
	if err := b.Present(); err != nil {
		t.Fatal(err)
	}

	for i, want := range "abc" {
		if got := cellAt(screen, 7+i, 1); got != want {
			t.Errorf("cell (%d,1) = %q, want %q", 7+i, got, want)
		}
	}

	if w, h := b.Size(); w != 10 || h != 3 {
		t.Errorf("size %dx%d", w, h)
	}
}

func TestBackendOutOfBounds(t *testing.T) {
	b, _ := newSimBackend(t, 10, 3)

	cases := [][2]int{{3, 0}, {-1, 0}, {0, 10}, {0, -2}}
	for _, c := range cases {
		err := b.WriteText(c[0], c[1], "x")
		var serr *Error
		if !errors.As(err, &serr) {
			t.Fatalf("write at %v: expected *Error, got %v", c, err)
		}
		if !errors.Is(err, ErrOutOfBounds) || serr.Row != c[0] || serr.Col != c[1] {
			t.Errorf("write at %v: %v", c, err)
		}
	}
}

func TestBackendClear(t *testing.T) {
	b, screen := newSimBackend(t, 5, 2)
	_ = b.WriteText(0, 0, "zz")
	_ = b.Clear()
	_ = b.Present()

	if got := cellAt(screen, 0, 0); got != ' ' && got != 0 {
		t.Errorf("cell after clear = %q", got)
	}
}

func TestTreeOverBackend(t *testing.T) {
	b, screen := newSimBackend(t, 20, 8)

	filter := NewFilter(b, Replacement{Old: " ", New: "_"}, Replacement{Old: "█", New: " "})
	border, err := NewBorder(filter, 2, 1, 8, 4, Faces{})
	if err != nil {
		t.Fatal(err)
	}

	_ = border.WriteText(0, 0, "█ █ █ █")
	_ = border.WriteText(5, 0, "dropped")
	if err := border.Present(); err != nil {
		t.Fatal(err)
	}

	if got := cellAt(screen, 2, 1); got != '┌' {
		t.Errorf("top-left corner = %q", got)
	}
	if got := cellAt(screen, 9, 4); got != '┘' {
		t.Errorf("bottom-right corner = %q", got)
	}
	// Interior starts at (3,2); "█ █ █ " after truncation to 6, filtered to " _ _ _"
	want := " _ _ _"
	for i, r := range want {
		if got := cellAt(screen, 3+i, 2); got != r {
			t.Errorf("interior col %d = %q, want %q", i, got, r)
		}
	}

	// A bordered frame that does not fit reports a recoverable error
	low, _ := NewBorder(b, 0, 6, 5, 4, Faces{})
	if err := low.Present(); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds for frame below screen, got %v", err)
	}
}

func TestWriteStyledThroughTree(t *testing.T) {
	b, screen := newSimBackend(t, 10, 3)
	p := NewPlain(NewFilter(b, Replacement{Old: "#", New: "="}), 2, 1, 5, 1)
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)

	if err := WriteStyled(p, 0, 0, "##", red); err != nil {
		t.Fatal(err)
	}
	if err := p.WriteText(0, 2, "ab"); err != nil {
		t.Fatal(err)
	}

	for x, want := range map[int]tcell.Style{2: red, 3: red, 4: tcell.StyleDefault, 5: tcell.StyleDefault} {
		_, _, st, _ := screen.GetContent(x, 1)
		if st != want {
			t.Errorf("cell %d style = %v, want %v", x, st, want)
		}
	}
	if r := cellAt(screen, 2, 1); r != '=' {
		t.Errorf("filter skipped on styled write, got %q", r)
	}
	if b.Style() != tcell.StyleDefault {
		t.Errorf("root style not restored")
	}
}
