package states

import (
	"github.com/lixenwraith/mazewalk/surface"
)

// Viewport returns the top-left corner of a w×h window centered on (x, y)
// and shifted one cell at a time until it lies inside a maxW×maxH map.
// The window is never resized; a map smaller than the window pins it at 0.
func Viewport(x, y, w, h, maxW, maxH int) (x0, y0 int) {
	x0, y0 = x-w/2, y-h/2
	x1, y1 := x0+w, y0+h

	for x1 > maxW {
		x0--
		x1--
	}
	for y1 > maxH {
		y0--
		y1--
	}
	for x0 < 0 {
		x0++
		x1++
	}
	for y0 < 0 {
		y0++
		y1++
	}
	return x0, y0
}

// FrameSize is the outer size of a border around cols×rows map cells of cellWidth columns
func FrameSize(cols, rows, cellWidth int) (w, h int) {
	return cols*cellWidth + 2, rows + 2
}

// Framed borders a map window of cols×rows cells at (x, y) of parent
func Framed(parent surface.Surface, x, y, cols, rows, cellWidth int, faces surface.Faces) (*surface.Border, error) {
	w, h := FrameSize(cols, rows, cellWidth)
	return surface.NewBorder(parent, x, y, w, h, faces)
}

// FrameFor sizes the frame to what m shows: the whole grid or the scrolling window
func FrameFor(parent surface.Surface, x, y int, m *Map, faces surface.Faces) (*surface.Border, error) {
	_, _, w, h := m.View()
	return Framed(parent, x, y, w, h, m.grid.Table().CellWidth(), faces)
}
