// @focus: #world { map }
package mapgrid

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Tag names a cell type. Every tag placed on a Grid must be declared in its Table.
type Tag string

// Built-in cell tags
const (
	TagDefault Tag = "default"
	TagFloor   Tag = "floor"
	TagWall    Tag = "wall"
	TagPortal  Tag = "portal"
)

var (
	ErrUnknownTag   = errors.New("undeclared cell tag")
	ErrDuplicateTag = errors.New("cell tag already declared")
	ErrGlyphWidth   = errors.New("glyph width does not match table cell width")
)

// Ambiguous-width block glyphs count as one column regardless of locale
var widthCond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// Point is a grid coordinate, X is the column and Y the row
type Point struct {
	X, Y int
}

// Table maps cell tags to their display glyph, walkability and optional colour.
// All glyphs in one table share the same display width, fixed by the first declaration.
type Table struct {
	glyphs    map[Tag]string
	walkable  map[Tag]bool
	styles    map[Tag]tcell.Style
	order     []Tag
	cellWidth int
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		glyphs:   make(map[Tag]string),
		walkable: make(map[Tag]bool),
		styles:   make(map[Tag]tcell.Style),
	}
}

// DefaultTable declares default and floor as walkable blanks and wall as a solid block, two columns per cell
func DefaultTable() *Table {
	t := NewTable()
	_ = t.Declare(TagDefault, "  ", true)
	_ = t.Declare(TagFloor, "  ", true)
	_ = t.Declare(TagWall, "██", false)
	return t
}

// Declare registers a new tag. Re-declaring an existing tag is an error.
func (t *Table) Declare(tag Tag, glyph string, walkable bool) error {
	if _, exists := t.glyphs[tag]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}

	w := widthCond.StringWidth(glyph)
	if w == 0 {
		return fmt.Errorf("%w: %q has empty glyph", ErrGlyphWidth, tag)
	}
	if t.cellWidth == 0 {
		t.cellWidth = w
	} else if w != t.cellWidth {
		return fmt.Errorf("%w: %q is %d wide, table cells are %d", ErrGlyphWidth, tag, w, t.cellWidth)
	}

	t.glyphs[tag] = glyph
	t.walkable[tag] = walkable
	t.order = append(t.order, tag)
	return nil
}

// Redefine replaces the glyph and walkability of an already declared tag
func (t *Table) Redefine(tag Tag, glyph string, walkable bool) error {
	if _, exists := t.glyphs[tag]; !exists {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	if w := widthCond.StringWidth(glyph); w != t.cellWidth {
		return fmt.Errorf("%w: %q is %d wide, table cells are %d", ErrGlyphWidth, tag, w, t.cellWidth)
	}
	t.glyphs[tag] = glyph
	t.walkable[tag] = walkable
	return nil
}

// Glyph returns the display string for a tag
func (t *Table) Glyph(tag Tag) (string, error) {
	g, ok := t.glyphs[tag]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return g, nil
}

// Walkable reports whether cells of this tag can be entered
func (t *Table) Walkable(tag Tag) (bool, error) {
	w, ok := t.walkable[tag]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return w, nil
}

// SetStyle colours every cell of a declared tag
func (t *Table) SetStyle(tag Tag, style tcell.Style) error {
	if !t.Has(tag) {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	t.styles[tag] = style
	return nil
}

// Style returns the colour of a tag, false when it draws in the surface's current style
func (t *Table) Style(tag Tag) (tcell.Style, bool) {
	st, ok := t.styles[tag]
	return st, ok
}

// Has reports whether tag is declared
func (t *Table) Has(tag Tag) bool {
	_, ok := t.glyphs[tag]
	return ok
}

// Tags returns declared tags in declaration order
func (t *Table) Tags() []Tag {
	out := make([]Tag, len(t.order))
	copy(out, t.order)
	return out
}

// CellWidth is the display width of every glyph, 0 for an empty table
func (t *Table) CellWidth() int {
	return t.cellWidth
}

// Width returns the display width of s using the table's width rules
func Width(s string) int {
	return widthCond.StringWidth(s)
}
