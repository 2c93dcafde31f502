package surface

import "strings"

// Replacement swaps every occurrence of Old with New
type Replacement struct {
	Old, New string
}

// Filter rewrites outgoing text with ordered literal replacements before forwarding.
// Each replacement runs on the output of the previous one.
type Filter struct {
	parent       Surface
	replacements []Replacement
}

// NewFilter creates a filter over parent
func NewFilter(parent Surface, replacements ...Replacement) *Filter {
	r := make([]Replacement, 0, len(replacements))
	for _, rep := range replacements {
		if rep.Old == "" {
			continue
		}
		r = append(r, rep)
	}
	return &Filter{parent: parent, replacements: r}
}

// Parent returns the surface this filter forwards to
func (f *Filter) Parent() Surface {
	return f.parent
}

// Apply runs the replacements over text
func (f *Filter) Apply(text string) string {
	for _, r := range f.replacements {
		text = strings.ReplaceAll(text, r.Old, r.New)
	}
	return text
}

func (f *Filter) WriteText(row, col int, text string) error {
	return f.parent.WriteText(row, col, f.Apply(text))
}

func (f *Filter) Clear() error {
	return f.parent.Clear()
}

func (f *Filter) Present() error {
	return f.parent.Present()
}

func (f *Filter) Size() (width, height int) {
	return f.parent.Size()
}
