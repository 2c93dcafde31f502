package surface

import "github.com/gdamore/tcell/v2"

// Styler is a root surface that draws subsequent writes in a settable style
type Styler interface {
	Style() tcell.Style
	SetStyle(style tcell.Style)
}

// WriteStyled writes text through s with the root switched to style for this write only.
// Roots without style support receive a plain write.
func WriteStyled(s Surface, row, col int, text string, style tcell.Style) error {
	st, ok := Root(s).(Styler)
	if !ok {
		return s.WriteText(row, col, text)
	}
	prev := st.Style()
	st.SetStyle(style)
	defer st.SetStyle(prev)
	return s.WriteText(row, col, text)
}
