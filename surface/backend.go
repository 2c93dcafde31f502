package surface

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var widthCond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Backend is the root surface over the physical terminal.
// Exactly one exists per process; every composite forwards to it.
type Backend struct {
	mu     sync.Mutex
	screen tcell.Screen
	style  tcell.Style
}

// NewBackend wraps an initialized screen
func NewBackend(screen tcell.Screen) *Backend {
	return &Backend{
		screen: screen,
		style:  tcell.StyleDefault,
	}
}

// Screen returns the wrapped screen
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

// Style returns the style applied to writes
func (b *Backend) Style() tcell.Style {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.style
}

// SetStyle changes the style applied to subsequent writes
func (b *Backend) SetStyle(style tcell.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.style = style
}

// WriteText places runes starting at (row, col). The starting cell must be on screen;
// the tail beyond the right edge is clipped.
func (b *Backend) WriteText(row, col int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	w, h := b.screen.Size()
	if row < 0 || row >= h || col < 0 || col >= w {
		return &Error{Op: "write", Row: row, Col: col, Err: ErrOutOfBounds}
	}

	x := col
	for _, r := range text {
		if x >= w {
			break
		}
		b.screen.SetContent(x, row, r, nil, b.style)
		rw := widthCond.RuneWidth(r)
		if rw < 1 {
			rw = 1
		}
		x += rw
	}
	return nil
}

// Clear erases the whole screen
func (b *Backend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.screen.Clear()
	return nil
}

// Present flushes the screen buffer to the terminal
func (b *Backend) Present() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.screen.Show()
	return nil
}

// HideCursor hides the terminal cursor
func (b *Backend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.screen.HideCursor()
}

// Size returns the current terminal size
func (b *Backend) Size() (width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.screen.Size()
}

// Sync repaints the terminal from scratch, used after resize
func (b *Backend) Sync() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.screen.Sync()
}
