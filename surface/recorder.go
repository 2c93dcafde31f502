package surface

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Write is one call received by a Recorder
type Write struct {
	Row, Col int
	Text     string
	Style    tcell.Style
}

// Recorder is an in-memory root surface for tests and headless runs.
// It keeps every write and a rune canvas of the result.
type Recorder struct {
	mu       sync.Mutex
	width    int
	height   int
	writes   []Write
	canvas   map[[2]int]rune
	clears   int
	presents int
	style    tcell.Style

	// FailAfter makes the n-th and later writes fail with ErrOutOfBounds (0 = never)
	FailAfter int
}

// NewRecorder creates a recorder, Unbounded dimensions accept any coordinate
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		canvas: make(map[[2]int]rune),
	}
}

func (r *Recorder) WriteText(row, col int, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailAfter > 0 && len(r.writes)+1 >= r.FailAfter {
		return &Error{Op: "write", Row: row, Col: col, Err: ErrOutOfBounds}
	}
	if row < 0 || col < 0 ||
		(r.height != Unbounded && row >= r.height) ||
		(r.width != Unbounded && col >= r.width) {
		return &Error{Op: "write", Row: row, Col: col, Err: ErrOutOfBounds}
	}

	r.writes = append(r.writes, Write{Row: row, Col: col, Text: text, Style: r.style})
	x := col
	for _, ch := range text {
		if r.width != Unbounded && x >= r.width {
			break
		}
		r.canvas[[2]int{row, x}] = ch
		x++
	}
	return nil
}

func (r *Recorder) Style() tcell.Style {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.style
}

// SetStyle sets the style stamped on subsequent writes
func (r *Recorder) SetStyle(style tcell.Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.style = style
}

func (r *Recorder) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
	r.canvas = make(map[[2]int]rune)
	return nil
}

func (r *Recorder) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presents++
	return nil
}

func (r *Recorder) Size() (width, height int) {
	return r.width, r.height
}

// Writes returns a copy of all successful writes
func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Write, len(r.writes))
	copy(out, r.writes)
	return out
}

// Last returns the most recent write
func (r *Recorder) Last() (Write, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.writes) == 0 {
		return Write{}, false
	}
	return r.writes[len(r.writes)-1], true
}

// Rune returns the canvas content at (row, col), 0 if untouched since the last Clear
func (r *Recorder) Rune(row, col int) rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.canvas[[2]int{row, col}]
}

// Line returns canvas columns [0, n) of row, untouched cells as spaces
func (r *Recorder) Line(row, n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sb strings.Builder
	for x := 0; x < n; x++ {
		ch, ok := r.canvas[[2]int{row, x}]
		if !ok {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

// Clears returns how many times Clear was called
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// Presents returns how many times Present was called
func (r *Recorder) Presents() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presents
}

// Reset drops recorded writes and counters
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = nil
	r.canvas = make(map[[2]int]rune)
	r.clears = 0
	r.presents = 0
}
