// @focus: #sys { io } #input { keys }
package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Key is a comparable key identity: a named key, or KeyRune with the character
type Key struct {
	Code tcell.Key
	Rune rune
}

// Named keys
var (
	Up        = Key{Code: tcell.KeyUp}
	Down      = Key{Code: tcell.KeyDown}
	Left      = Key{Code: tcell.KeyLeft}
	Right     = Key{Code: tcell.KeyRight}
	Enter     = Key{Code: tcell.KeyEnter}
	Escape    = Key{Code: tcell.KeyEscape}
	Interrupt = Key{Code: tcell.KeyCtrlC}
)

// Rune returns the key for a printable character
func Rune(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// FromEvent converts a tcell key event
func FromEvent(ev *tcell.EventKey) Key {
	if ev.Key() == tcell.KeyRune {
		return Rune(ev.Rune())
	}
	return Key{Code: ev.Key()}
}

// Parse resolves a binding string: a single character, or a key name such as "enter", "up", "esc"
func Parse(s string) (Key, error) {
	runes := []rune(s)
	if len(runes) == 1 {
		return Rune(runes[0]), nil
	}
	for code, name := range tcell.KeyNames {
		if strings.EqualFold(name, s) {
			return Key{Code: code}, nil
		}
	}
	switch s {
	case "esc", "escape":
		return Escape, nil
	case "space":
		return Rune(' '), nil
	}
	return Key{}, fmt.Errorf("unknown key %q", s)
}

func (k Key) String() string {
	if k.Code == tcell.KeyRune {
		return string(k.Rune)
	}
	if name, ok := tcell.KeyNames[k.Code]; ok {
		return name
	}
	return fmt.Sprintf("Key[%d]", k.Code)
}
