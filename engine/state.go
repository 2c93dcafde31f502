package engine

import (
	"fmt"

	"github.com/lixenwraith/mazewalk/input"
	"github.com/lixenwraith/mazewalk/mapgrid"
	"github.com/lixenwraith/mazewalk/surface"
)

// Signal tells the scheduler whether the active state keeps its input loop
type Signal uint8

const (
	Continue Signal = iota
	Stop
)

func (s Signal) String() string {
	if s == Stop {
		return "stop"
	}
	return "continue"
}

// State is one screen of the session. Only one state runs its input loop at a time.
type State interface {
	Name() string
	// InitialDraw renders the full state and presents it
	InitialDraw() error
	// HandleInput reacts to one event and evaluates triggers; Stop or an error ends the turn
	HandleInput(t *Turn, ev input.Event) (Signal, error)
	// Dispose releases per-turn resources and clears the screen
	Dispose()
}

// Relocator is implemented by states with a movable position
type Relocator interface {
	Relocate(p mapgrid.Point) error
}

// Factory builds a state when it is popped from the queue
type Factory func() (State, error)

// Entry is a queued state: a live instance or a deferred constructor
type Entry struct {
	name    string
	state   State
	factory Factory
}

// Instance queues an existing state, it resumes with its current data
func Instance(s State) Entry {
	return Entry{name: s.Name(), state: s}
}

// Deferred queues a constructor invoked on pop
func Deferred(name string, f Factory) Entry {
	return Entry{name: name, factory: f}
}

// Name identifies the entry in logs
func (e Entry) Name() string {
	return e.name
}

// State returns the live instance, nil for deferred entries
func (e Entry) State() State {
	return e.state
}

func (e Entry) resolve() (State, error) {
	if e.state != nil {
		return e.state, nil
	}
	if e.factory == nil {
		return nil, fmt.Errorf("entry %q has neither state nor factory", e.name)
	}
	st, err := e.factory()
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("factory %q returned nil state", e.name)
	}
	return st, nil
}

// Turn is the context of one state's input loop
type Turn struct {
	sched *Scheduler
	state State
	keys  *input.KeySet
}

// NewTurn creates a turn outside the scheduler loop, used by tests driving a state directly
func NewTurn(sched *Scheduler, state State) *Turn {
	return &Turn{sched: sched, state: state, keys: input.NewKeySet()}
}

func (t *Turn) Scheduler() *Scheduler { return t.sched }
func (t *Turn) State() State          { return t.state }
func (t *Turn) Keys() *input.KeySet   { return t.keys }

// Base carries the surface, ordered triggers, and flags shared by concrete states
type Base struct {
	name     string
	surf     surface.Surface
	triggers []Trigger
	flags    map[string]bool
}

// NewBase creates the shared part of a state
func NewBase(name string, surf surface.Surface) Base {
	return Base{
		name:  name,
		surf:  surf,
		flags: make(map[string]bool),
	}
}

func (b *Base) Name() string {
	return b.name
}

// Surface returns the surface the state draws through
func (b *Base) Surface() surface.Surface {
	return b.surf
}

// SetSurface replaces the surface, e.g. to wrap the state in a border
func (b *Base) SetSurface(s surface.Surface) {
	b.surf = s
}

// AddTrigger appends a trigger, evaluation follows registration order
func (b *Base) AddTrigger(tr Trigger) {
	b.triggers = append(b.triggers, tr)
}

// Triggers returns the registered triggers
func (b *Base) Triggers() []Trigger {
	return b.triggers
}

// LinkChange registers a state change to targets when the predicate holds.
// An empty target list ends the session once the queue drains.
func (b *Base) LinkChange(targets []Entry, when Predicate, opts ...ChangeOption) {
	var cfg changeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Change{Targets: targets, When: when, Transient: cfg.transient, Append: cfg.append}
	if cfg.bound {
		b.AddTrigger(&KeyBound{Key: cfg.key, Inner: c})
		return
	}
	b.AddTrigger(c)
}

// SetFlag stores a named flag visible to predicates
func (b *Base) SetFlag(name string, v bool) {
	if b.flags == nil {
		b.flags = make(map[string]bool)
	}
	b.flags[name] = v
}

// Flags returns the flag map backing EvalContext
func (b *Base) Flags() map[string]bool {
	return b.flags
}

// Fail clears the screen and ends the turn with err
func (b *Base) Fail(err error) (Signal, error) {
	if b.surf != nil {
		_ = b.surf.Clear()
		_ = b.surf.Present()
	}
	return Stop, err
}

// Dispose clears the screen
func (b *Base) Dispose() {
	if b.surf != nil {
		_ = b.surf.Clear()
		_ = b.surf.Present()
	}
}
