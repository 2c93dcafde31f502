package surface

import (
	"fmt"
	"strings"
)

// Default box drawing glyphs
const (
	defaultHorizontal  = "─"
	defaultVertical    = "│"
	defaultTopLeft     = "┌"
	defaultTopRight    = "┐"
	defaultBottomLeft  = "└"
	defaultBottomRight = "┘"
)

// Faces overrides border glyphs. Empty fields fall back:
// edges to Horizontal/Vertical then All; corners to the adjacent edge faces
// (horizontal side first), then Corner, then All.
type Faces struct {
	All        string
	Horizontal string
	Vertical   string
	Corner     string

	Top, Bottom, Left, Right string

	TopLeft, TopRight, BottomLeft, BottomRight string
}

func firstOf(def string, candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return def
}

// resolved holds the eight glyphs after fallback
type resolved struct {
	top, bottom, left, right string
	tl, tr, bl, br           string
}

func (f Faces) resolve() resolved {
	return resolved{
		top:    firstOf(defaultHorizontal, f.Top, f.Horizontal, f.All),
		bottom: firstOf(defaultHorizontal, f.Bottom, f.Horizontal, f.All),
		left:   firstOf(defaultVertical, f.Left, f.Vertical, f.All),
		right:  firstOf(defaultVertical, f.Right, f.Vertical, f.All),
		tl:     firstOf(defaultTopLeft, f.TopLeft, f.Top, f.Horizontal, f.Left, f.Vertical, f.Corner, f.All),
		tr:     firstOf(defaultTopRight, f.TopRight, f.Top, f.Horizontal, f.Right, f.Vertical, f.Corner, f.All),
		bl:     firstOf(defaultBottomLeft, f.BottomLeft, f.Bottom, f.Horizontal, f.Left, f.Vertical, f.Corner, f.All),
		br:     firstOf(defaultBottomRight, f.BottomRight, f.Bottom, f.Horizontal, f.Right, f.Vertical, f.Corner, f.All),
	}
}

// Border frames a rectangle of its parent and exposes the inset interior.
// Writes go to the interior; the frame is redrawn on every Present.
type Border struct {
	frame  *Plain
	inner  *Plain
	width  int
	height int
	glyphs resolved
}

// NewBorder frames the width x height rectangle at (x, y) of parent.
// Unbounded dimensions take the parent's remaining extent; an unbounded parent is an error.
func NewBorder(parent Surface, x, y, width, height int, faces Faces) (*Border, error) {
	pw, ph := parent.Size()
	if width == Unbounded {
		if pw == Unbounded {
			return nil, ErrUnboundedBorder
		}
		width = pw - x
	}
	if height == Unbounded {
		if ph == Unbounded {
			return nil, ErrUnboundedBorder
		}
		height = ph - y
	}
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBorderTooSmall, width, height)
	}

	frame := NewPlain(parent, x, y, width, height)
	inner := NewPlain(frame, 1, 1, width-2, height-2)

	return &Border{
		frame:  frame,
		inner:  inner,
		width:  width,
		height: height,
		glyphs: faces.resolve(),
	}, nil
}

// Parent returns the inset interior the content is forwarded through
func (b *Border) Parent() Surface {
	return b.inner
}

func (b *Border) WriteText(row, col int, text string) error {
	return b.inner.WriteText(row, col, text)
}

func (b *Border) Clear() error {
	return b.inner.Clear()
}

// Present draws the four edges and corners on the frame, then flushes downstream
func (b *Border) Present() error {
	if err := b.drawFrame(); err != nil {
		return err
	}
	return b.frame.Present()
}

func (b *Border) drawFrame() error {
	g := b.glyphs
	inner := b.width - 2

	if err := b.frame.WriteText(0, 0, g.tl+strings.Repeat(g.top, inner)+g.tr); err != nil {
		return err
	}
	for i := 1; i < b.height-1; i++ {
		if err := b.frame.WriteText(i, 0, g.left); err != nil {
			return err
		}
		if err := b.frame.WriteText(i, b.width-1, g.right); err != nil {
			return err
		}
	}
	return b.frame.WriteText(b.height-1, 0, g.bl+strings.Repeat(g.bottom, inner)+g.br)
}

// Size is the interior extent
func (b *Border) Size() (width, height int) {
	return b.width - 2, b.height - 2
}

// Outer is the framed extent including the edges
func (b *Border) Outer() (width, height int) {
	return b.width, b.height
}
