package mapgrid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var ErrOutOfBounds = errors.New("cell outside grid")

// Grid is a width x height array of cell tags backed by a Table
type Grid struct {
	width, height int
	cells         [][]Tag // [y][x]
	table         *Table
}

// New creates a grid filled with the given tag
func New(width, height int, table *Table, fill Tag) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", width, height)
	}
	if table == nil {
		table = DefaultTable()
	}
	if !table.Has(fill) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, fill)
	}

	cells := make([][]Tag, height)
	for y := range cells {
		cells[y] = make([]Tag, width)
		for x := range cells[y] {
			cells[y][x] = fill
		}
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
		table:  table,
	}, nil
}

// Width returns the column count
func (g *Grid) Width() int { return g.width }

// Height returns the row count
func (g *Grid) Height() int { return g.height }

// Table returns the glyph and walkability table
func (g *Grid) Table() *Table { return g.table }

// InBounds reports whether (x, y) is a cell of the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the tag at (x, y)
func (g *Grid) At(x, y int) (Tag, error) {
	if !g.InBounds(x, y) {
		return "", fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return g.cells[y][x], nil
}

// DrawTo sets a single cell
func (g *Grid) DrawTo(tag Tag, x, y int) error {
	if !g.table.Has(tag) {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	g.cells[y][x] = tag
	return nil
}

// DrawRect draws the outline of a w x h rectangle with its top-left corner at (x, y)
func (g *Grid) DrawRect(tag Tag, x, y, w, h int) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	for i := x; i < x+w; i++ {
		if err := g.DrawTo(tag, i, y); err != nil {
			return err
		}
		if err := g.DrawTo(tag, i, y+h-1); err != nil {
			return err
		}
	}
	for j := y; j < y+h; j++ {
		if err := g.DrawTo(tag, x, j); err != nil {
			return err
		}
		if err := g.DrawTo(tag, x+w-1, j); err != nil {
			return err
		}
	}
	return nil
}

// FillRect fills a w x h rectangle with its top-left corner at (x, y)
func (g *Grid) FillRect(tag Tag, x, y, w, h int) error {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			if err := g.DrawTo(tag, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

// Blit copies sub onto g with sub's origin at (x, y).
// Cells landing outside g are skipped. Tags of sub must be declared in g's table.
func (g *Grid) Blit(sub *Grid, x, y int) error {
	for sy := 0; sy < sub.height; sy++ {
		for sx := 0; sx < sub.width; sx++ {
			tx, ty := x+sx, y+sy
			if !g.InBounds(tx, ty) {
				continue
			}
			tag := sub.cells[sy][sx]
			if !g.table.Has(tag) {
				return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
			}
			g.cells[ty][tx] = tag
		}
	}
	return nil
}

// IsWalkable reports whether the cell at (x, y) can be entered; off-grid cells never can
func (g *Grid) IsWalkable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	w, err := g.table.Walkable(g.cells[y][x])
	return err == nil && w
}

// Glyph returns the display string of the cell at (x, y)
func (g *Grid) Glyph(x, y int) (string, error) {
	tag, err := g.At(x, y)
	if err != nil {
		return "", err
	}
	return g.table.Glyph(tag)
}

// RowString renders columns [x0, x1) of row y, clipped to the grid
func (g *Grid) RowString(y, x0, x1 int) (string, error) {
	if y < 0 || y >= g.height {
		return "", fmt.Errorf("%w: row %d of %d", ErrOutOfBounds, y, g.height)
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > g.width {
		x1 = g.width
	}

	var sb strings.Builder
	for x := x0; x < x1; x++ {
		glyph, err := g.table.Glyph(g.cells[y][x])
		if err != nil {
			return "", err
		}
		sb.WriteString(glyph)
	}
	return sb.String(), nil
}

// Segment is a run of adjacent cells drawn in one style
type Segment struct {
	Offset int // cells from the first rendered column
	Text   string
	Style  tcell.Style
	Styled bool // false: draw in the surface's current style
}

// Segments renders columns [x0, x1) of row y as runs of equal style, clipped to the grid.
// An unstyled table yields a single segment equal to RowString.
func (g *Grid) Segments(y, x0, x1 int) ([]Segment, error) {
	if y < 0 || y >= g.height {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfBounds, y, g.height)
	}
	x0 = max(0, x0)
	x1 = min(g.width, x1)

	var segs []Segment
	var sb strings.Builder
	cur := Segment{}
	for x := x0; x < x1; x++ {
		tag := g.cells[y][x]
		glyph, err := g.table.Glyph(tag)
		if err != nil {
			return nil, err
		}
		st, styled := g.table.Style(tag)
		if x > x0 && (styled != cur.Styled || st != cur.Style) {
			cur.Text = sb.String()
			segs = append(segs, cur)
			sb.Reset()
			cur = Segment{Offset: x - x0}
		}
		cur.Style, cur.Styled = st, styled
		sb.WriteString(glyph)
	}
	if x1 > x0 {
		cur.Text = sb.String()
		segs = append(segs, cur)
	}
	return segs, nil
}

// Lines renders the whole grid, one string per row
func (g *Grid) Lines() ([]string, error) {
	lines := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		line, err := g.RowString(y, 0, g.width)
		if err != nil {
			return nil, err
		}
		lines[y] = line
	}
	return lines, nil
}

// String renders the grid with newline separated rows.
// A cell whose tag is missing from the table renders as '?' filling the cell width.
func (g *Grid) String() string {
	unknown := strings.Repeat("?", max(1, g.table.CellWidth()))

	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			glyph, err := g.table.Glyph(g.cells[y][x])
			if err != nil {
				glyph = unknown
			}
			sb.WriteString(glyph)
		}
	}
	return sb.String()
}
