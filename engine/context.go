package engine

import (
	"strings"

	"github.com/lixenwraith/mazewalk/input"
	"github.com/lixenwraith/mazewalk/mapgrid"
)

// MenuChoice is the selection snapshot of a menu state
type MenuChoice struct {
	Chosen bool
	Option string
	Index  int
}

// EvalContext is what a predicate can observe about the active state.
// Facts a state does not provide read as absent, so predicates over them do not fire.
type EvalContext struct {
	keys     *input.KeySet
	state    State
	position *mapgrid.Point
	moved    bool
	menu     *MenuChoice
	flags    map[string]bool
}

// WithPosition records the avatar position and whether the last input changed it or the facing
func (c EvalContext) WithPosition(p mapgrid.Point, moved bool) EvalContext {
	c.position = &p
	c.moved = moved
	return c
}

// WithMenu records the current menu selection
func (c EvalContext) WithMenu(m MenuChoice) EvalContext {
	c.menu = &m
	return c
}

// WithKeys overrides the key set, used when evaluating outside a turn
func (c EvalContext) WithKeys(k *input.KeySet) EvalContext {
	c.keys = k
	return c
}

// WithFlags overrides the flag map
func (c EvalContext) WithFlags(f map[string]bool) EvalContext {
	c.flags = f
	return c
}

// Pressed reports whether k is in the current batch
func (c EvalContext) Pressed(k input.Key) bool {
	return c.keys != nil && c.keys.Has(k)
}

func (c EvalContext) Position() (mapgrid.Point, bool) {
	if c.position == nil {
		return mapgrid.Point{}, false
	}
	return *c.position, true
}

func (c EvalContext) Moved() bool {
	return c.position != nil && c.moved
}

func (c EvalContext) Menu() (MenuChoice, bool) {
	if c.menu == nil {
		return MenuChoice{}, false
	}
	return *c.menu, true
}

func (c EvalContext) Flag(name string) bool {
	return c.flags[name]
}

// Predicate is a pure condition over the evaluation context
type Predicate func(EvalContext) bool

// Always fires on every evaluation
func Always(EvalContext) bool { return true }

// Never does not fire, useful with BindKey for key-only changes
func Never(EvalContext) bool { return false }

// Pressed fires when k is in the key set
func Pressed(k input.Key) Predicate {
	return func(c EvalContext) bool { return c.Pressed(k) }
}

// Chosen fires once a menu option starting with prefix has been chosen
func Chosen(prefix string) Predicate {
	return func(c EvalContext) bool {
		m, ok := c.Menu()
		return ok && m.Chosen && strings.HasPrefix(m.Option, prefix)
	}
}

// At fires when the avatar stands on p
func At(p mapgrid.Point) Predicate {
	return func(c EvalContext) bool {
		pos, ok := c.Position()
		return ok && pos == p
	}
}

// Flag fires while the named flag is set
func Flag(name string) Predicate {
	return func(c EvalContext) bool { return c.Flag(name) }
}

// Any fires when one of ps holds
func Any(ps ...Predicate) Predicate {
	return func(c EvalContext) bool {
		for _, p := range ps {
			if p(c) {
				return true
			}
		}
		return false
	}
}

// All fires when every p holds
func All(ps ...Predicate) Predicate {
	return func(c EvalContext) bool {
		for _, p := range ps {
			if !p(c) {
				return false
			}
		}
		return true
	}
}
