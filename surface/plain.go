package surface

// Scale is the number of parent columns and rows occupied by one local cell
type Scale struct {
	W, H int
}

// Plain is an offset view into its parent.
// Width counts cells of Scale.W columns; height counts rows.
// Text is cut to the columns left in the row, by display width.
type Plain struct {
	parent        Surface
	x, y          int
	width, height int
	scale         Scale
}

// NewPlain creates a view at cell offset (x, y) of the given size, Unbounded allowed per axis
func NewPlain(parent Surface, x, y, width, height int) *Plain {
	return &Plain{
		parent: parent,
		x:      x,
		y:      y,
		width:  width,
		height: height,
		scale:  Scale{W: 1, H: 1},
	}
}

// Full creates an unbounded view at the parent's origin
func Full(parent Surface) *Plain {
	return NewPlain(parent, 0, 0, Unbounded, Unbounded)
}

// WithScale sets the cell scale; non-positive values reset to 1
func (p *Plain) WithScale(w, h int) *Plain {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	p.scale = Scale{W: w, H: h}
	return p
}

// Parent returns the surface this view forwards to
func (p *Plain) Parent() Surface {
	return p.parent
}

// Offset returns the cell offset in the parent
func (p *Plain) Offset() (x, y int) {
	return p.x, p.y
}

// Scale returns the cell scale
func (p *Plain) Scale() Scale {
	return p.scale
}

func (p *Plain) WriteText(row, col int, text string) error {
	if p.height != Unbounded && row >= p.height {
		return nil
	}
	if p.width != Unbounded {
		text = truncate(text, p.width*p.scale.W-col)
		if text == "" {
			return nil
		}
	}
	return p.parent.WriteText(p.y*p.scale.H+row, p.x*p.scale.W+col, text)
}

func (p *Plain) Clear() error {
	return p.parent.Clear()
}

func (p *Plain) Present() error {
	return p.parent.Present()
}

// Size reports the extent in columns (width * scale) and rows
func (p *Plain) Size() (width, height int) {
	width, height = p.width, p.height
	if width != Unbounded {
		width *= p.scale.W
	}
	return width, height
}

// truncate keeps the longest prefix of s that fits in n columns.
// Columns are counted the way Backend advances: display width, at least one per rune.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	used := 0
	for i, r := range s {
		rw := widthCond.RuneWidth(r)
		if rw < 1 {
			rw = 1
		}
		if used+rw > n {
			return s[:i]
		}
		used += rw
	}
	return s
}
