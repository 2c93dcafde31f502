package engine

import (
	"github.com/lixenwraith/mazewalk/input"
	"github.com/lixenwraith/mazewalk/mapgrid"
)

// Trigger is a condition plus transition effect attached to one state.
// The variant set is closed: *Change, *Relocate, *KeyBound.
type Trigger interface {
	isTrigger()
}

// Change rewrites the scheduler queue and stops the current state.
// Append concatenates Targets to the queue instead of replacing it;
// Transient re-queues the current state after the targets so it resumes later.
type Change struct {
	Targets   []Entry
	When      Predicate
	Transient bool
	Append    bool
}

// Relocate moves the player of a Relocator state from one cell to another when it arrives on From
type Relocate struct {
	From, To mapgrid.Point
}

// KeyBound fires its inner trigger's effect when Key was pressed or the inner condition holds
type KeyBound struct {
	Key   input.Key
	Inner Trigger
}

func (*Change) isTrigger()   {}
func (*Relocate) isTrigger() {}
func (*KeyBound) isTrigger() {}

type changeConfig struct {
	transient bool
	append    bool
	bound     bool
	key       input.Key
}

// ChangeOption configures LinkChange
type ChangeOption func(*changeConfig)

// Transient re-queues the current state after the targets
func Transient() ChangeOption {
	return func(c *changeConfig) { c.transient = true }
}

// Appending adds the targets to the existing queue instead of replacing it
func Appending() ChangeOption {
	return func(c *changeConfig) { c.append = true }
}

// BindKey also fires the change when k is pressed
func BindKey(k input.Key) ChangeOption {
	return func(c *changeConfig) {
		c.bound = true
		c.key = k
	}
}

// Evaluate reports whether tr's condition holds. Conditions that do not apply
// to the active state evaluate to false.
func Evaluate(tr Trigger, ctx EvalContext) bool {
	switch tr := tr.(type) {
	case *Change:
		return holds(tr.When, ctx)
	case *Relocate:
		if _, ok := ctx.state.(Relocator); !ok {
			return false
		}
		p, ok := ctx.Position()
		return ok && ctx.Moved() && p == tr.From
	case *KeyBound:
		return ctx.Pressed(tr.Key) || (tr.Inner != nil && Evaluate(tr.Inner, ctx))
	default:
		return false
	}
}

// holds runs a user predicate; a panicking predicate counts as not fired
func holds(p Predicate, ctx EvalContext) (fired bool) {
	if p == nil {
		return false
	}
	defer func() {
		if recover() != nil {
			fired = false
		}
	}()
	return p(ctx)
}

// CheckTriggers evaluates triggers in registration order and fires the first whose condition holds.
// The batch key set is reset after a fire.
func (b *Base) CheckTriggers(t *Turn, ctx EvalContext) (Signal, error) {
	ctx.keys = t.keys
	ctx.state = t.state
	if ctx.flags == nil {
		ctx.flags = b.flags
	}

	for _, tr := range b.triggers {
		if !Evaluate(tr, ctx) {
			continue
		}
		sig, err := b.fire(t, tr)
		t.keys.Reset()
		return sig, err
	}
	return Continue, nil
}

func (b *Base) fire(t *Turn, tr Trigger) (Signal, error) {
	switch tr := tr.(type) {
	case *Change:
		targets := make([]Entry, len(tr.Targets))
		copy(targets, tr.Targets)

		if t.sched != nil {
			if tr.Append {
				t.sched.Enqueue(targets...)
			} else {
				t.sched.Replace(targets...)
			}
			if tr.Transient {
				t.sched.Enqueue(Instance(t.state))
			}
			t.sched.logf("%s: change -> %v (transient=%v append=%v)", b.name, entryNames(targets), tr.Transient, tr.Append)
		}

		if b.surf != nil {
			if err := b.surf.Clear(); err != nil {
				return Stop, err
			}
			if err := b.surf.Present(); err != nil {
				return Stop, err
			}
		}
		return Stop, nil

	case *Relocate:
		r, ok := t.state.(Relocator)
		if !ok {
			return Continue, nil
		}
		if t.sched != nil {
			t.sched.logf("%s: relocate %v -> %v", b.name, tr.From, tr.To)
		}
		if err := r.Relocate(tr.To); err != nil {
			return b.Fail(err)
		}
		return Continue, nil

	case *KeyBound:
		return b.fire(t, tr.Inner)
	}
	return Continue, nil
}

func entryNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}
