package states

import (
	"errors"

	"github.com/lixenwraith/mazewalk/audio"
	"github.com/lixenwraith/mazewalk/engine"
	"github.com/lixenwraith/mazewalk/input"
	"github.com/lixenwraith/mazewalk/surface"
)

// ErrNoOptions is returned for a menu without options
var ErrNoOptions = errors.New("menu has no options")

// Rounding selects how the cursor behaves past the first or last option
type Rounding uint8

const (
	HardBound Rounding = iota // stop at the ends
	ModRound                  // wrap around
)

// ParseRounding maps "hard_bound" and "mod_round"; anything else is HardBound
func ParseRounding(s string) Rounding {
	if s == "mod_round" {
		return ModRound
	}
	return HardBound
}

func (r Rounding) apply(i, n int) int {
	if r == ModRound {
		return ((i % n) + n) % n
	}
	return min(n-1, max(0, i))
}

// MenuConfig describes a title or pause menu
type MenuConfig struct {
	Title    []string
	Options  []string
	Initial  int
	Rounding Rounding
	Cues     audio.Cues
}

// Menu renders title lines and a vertical option list with a cursor.
// An option is chosen by pressing and releasing Enter on it.
type Menu struct {
	engine.Base
	title    []string
	options  []string
	rounding Rounding
	cues     audio.Cues

	choice    int
	pending   string
	hasChoice bool
	chosen    bool
}

// NewMenu creates a menu state drawing through surf
func NewMenu(name string, surf surface.Surface, cfg MenuConfig) (*Menu, error) {
	if len(cfg.Options) == 0 {
		return nil, ErrNoOptions
	}
	cues := cfg.Cues
	if cues == nil {
		cues = audio.Silent{}
	}
	return &Menu{
		Base:     engine.NewBase(name, surf),
		title:    append([]string(nil), cfg.Title...),
		options:  append([]string(nil), cfg.Options...),
		rounding: cfg.Rounding,
		cues:     cues,
		choice:   cfg.Rounding.apply(cfg.Initial, len(cfg.Options)),
	}, nil
}

func (m *Menu) optionRow(i int) int {
	return len(m.title) + 2 + i
}

// Choice returns the option under the cursor
func (m *Menu) Choice() (int, string) {
	return m.choice, m.options[m.choice]
}

// Selection is the menu's view for trigger predicates
func (m *Menu) Selection() engine.MenuChoice {
	return engine.MenuChoice{Chosen: m.chosen, Option: m.pending, Index: m.choice}
}

func (m *Menu) InitialDraw() error {
	m.chosen = false
	s := m.Surface()
	if err := s.Clear(); err != nil {
		return err
	}
	for i, line := range m.title {
		if err := s.WriteText(i, 0, line); err != nil {
			return err
		}
	}
	for i, opt := range m.options {
		if err := s.WriteText(m.optionRow(i), 3, opt); err != nil {
			return err
		}
	}
	if err := s.WriteText(m.optionRow(m.choice), 1, ">"); err != nil {
		return err
	}
	return s.Present()
}

func (m *Menu) HandleInput(t *engine.Turn, ev input.Event) (engine.Signal, error) {
	switch ev.Kind {
	case input.KeyDown:
		return m.press(t, ev.Key)
	case input.KeyUp:
		m.chosen = ev.Key == input.Enter && m.hasChoice && m.pending == m.options[m.choice]
		return m.CheckTriggers(t, engine.EvalContext{}.WithMenu(m.Selection()))
	}
	return engine.Continue, nil
}

func (m *Menu) press(t *engine.Turn, k input.Key) (engine.Signal, error) {
	m.chosen = false
	s := m.Surface()
	if err := s.WriteText(m.optionRow(m.choice), 1, " "); err != nil {
		return m.Fail(err)
	}

	switch k {
	case input.Up:
		m.choice = m.rounding.apply(m.choice-1, len(m.options))
	case input.Down:
		m.choice = m.rounding.apply(m.choice+1, len(m.options))
	case input.Enter:
		m.pending = m.options[m.choice]
		m.hasChoice = true
		m.cues.Select()
	}

	if err := s.WriteText(m.optionRow(m.choice), 1, ">"); err != nil {
		return m.Fail(err)
	}
	if err := s.Present(); err != nil {
		return m.Fail(err)
	}
	return m.CheckTriggers(t, engine.EvalContext{}.WithMenu(m.Selection()))
}
