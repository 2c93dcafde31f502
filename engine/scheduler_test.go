package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lixenwraith/mazewalk/input"
	"github.com/lixenwraith/mazewalk/mapgrid"
	"github.com/lixenwraith/mazewalk/surface"
)

// fakeState records its inputs and evaluates triggers on every event
type fakeState struct {
	Base
	draws    int
	disposed int
	events   []input.Event
	pos      *mapgrid.Point
	moved    bool
	drawErr  error
	inputErr error
}

func newFake(name string, surf surface.Surface) *fakeState {
	return &fakeState{Base: NewBase(name, surf)}
}

func (f *fakeState) InitialDraw() error {
	f.draws++
	if f.drawErr != nil {
		return f.drawErr
	}
	if err := f.Surface().WriteText(0, 0, f.Name()); err != nil {
		return err
	}
	return f.Surface().Present()
}

func (f *fakeState) HandleInput(t *Turn, ev input.Event) (Signal, error) {
	f.events = append(f.events, ev)
	if f.inputErr != nil {
		return f.Fail(f.inputErr)
	}
	ctx := EvalContext{}
	if f.pos != nil {
		ctx = ctx.WithPosition(*f.pos, f.moved)
	}
	return f.CheckTriggers(t, ctx)
}

func (f *fakeState) Dispose() {
	f.disposed++
	f.Base.Dispose()
}

type relocFake struct {
	*fakeState
	relocated []mapgrid.Point
}

func (r *relocFake) Relocate(p mapgrid.Point) error {
	r.relocated = append(r.relocated, p)
	r.pos = &p
	return nil
}

func names(entries []Entry) []string {
	return entryNames(entries)
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRunEmptyQueue(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	s := NewScheduler(rec, input.Script())
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run on empty queue: %v", err)
	}
	if len(s.Turns()) != 0 {
		t.Errorf("expected no turns, got %d", len(s.Turns()))
	}
}

func TestChangeReplacesQueue(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	a := newFake("A", rec)
	b := newFake("B", rec)
	c := newFake("C", rec)
	q := input.Rune('q')

	a.LinkChange([]Entry{Instance(b)}, Pressed(input.Rune('x')))
	b.LinkChange(nil, Pressed(q))

	s := NewScheduler(rec, input.Script(input.Rune('x'), q))
	s.Enqueue(Instance(a), Instance(c))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	turns := s.Turns()
	if len(turns) != 2 || turns[0].State != "A" || turns[1].State != "B" {
		t.Fatalf("unexpected turns: %+v", turns)
	}
	if c.draws != 0 {
		t.Errorf("C should have been discarded by the replace, drawn %d times", c.draws)
	}
	if a.disposed != 1 || b.disposed != 1 {
		t.Errorf("dispose counts A=%d B=%d, want 1", a.disposed, b.disposed)
	}
	t.Logf("✓ change replaced queue, turns %v", turns)
}

func TestFirstMatchWins(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	a := newFake("A", rec)
	b := newFake("B", rec)
	c := newFake("C", rec)

	a.LinkChange([]Entry{Instance(b)}, Always)
	a.LinkChange([]Entry{Instance(c)}, Always)

	s := NewScheduler(rec, input.Script(input.Rune('z')))
	turn := NewTurn(s, a)
	turn.Keys().Add(input.Rune('z'))

	sig, err := a.HandleInput(turn, input.Press(input.Rune('z')))
	if err != nil || sig != Stop {
		t.Fatalf("got (%v, %v), want (stop, nil)", sig, err)
	}
	if got := names(s.Queue()); !equalNames(got, []string{"B"}) {
		t.Errorf("queue = %v, want [B]", got)
	}
	if turn.Keys().Len() != 0 {
		t.Errorf("key set not reset after fire")
	}
}

func TestTransientChange(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	a := newFake("A", rec)
	b := newFake("B", rec)

	a.LinkChange([]Entry{Instance(b)}, Always, Transient())

	s := NewScheduler(rec, input.Script())
	s.Enqueue(newFake("later", rec).entry())
	turn := NewTurn(s, a)

	if sig, err := a.HandleInput(turn, input.Press(input.Rune('p'))); sig != Stop || err != nil {
		t.Fatalf("got (%v, %v)", sig, err)
	}
	if got := names(s.Queue()); !equalNames(got, []string{"B", "A"}) {
		t.Errorf("queue = %v, want [B A]", got)
	}
}

func TestAppendChange(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	a := newFake("A", rec)
	b := newFake("B", rec)
	c := newFake("C", rec)

	a.LinkChange([]Entry{Instance(b)}, Always, Appending())

	s := NewScheduler(rec, input.Script())
	s.Enqueue(Instance(c))
	turn := NewTurn(s, a)

	if _, err := a.HandleInput(turn, input.Press(input.Rune('a'))); err != nil {
		t.Fatal(err)
	}
	if got := names(s.Queue()); !equalNames(got, []string{"C", "B"}) {
		t.Errorf("queue = %v, want [C B]", got)
	}
}

func TestKeyBoundChange(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	a := newFake("A", rec)
	b := newFake("B", rec)
	a.LinkChange([]Entry{Instance(b)}, Never, BindKey(input.Escape))

	s := NewScheduler(rec, input.Script(input.Rune('k'), input.Escape))
	s.Enqueue(Instance(a))

	// B is entered then the source closes while it waits for input
	err := s.Run(context.Background())
	if !errors.Is(err, ErrInputClosed) {
		t.Fatalf("Run error = %v, want ErrInputClosed", err)
	}
	if len(a.events) != 3 {
		t.Errorf("A saw %d events, want press+release of k and press of esc", len(a.events))
	}
	if b.draws != 1 {
		t.Errorf("B drawn %d times, want 1", b.draws)
	}
}

func TestIncompatiblePredicateDoesNotFire(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	a := newFake("A", rec)
	a.LinkChange(nil, Chosen("Quit"))
	a.LinkChange(nil, At(mapgrid.Point{X: 1, Y: 1}))
	a.AddTrigger(&Relocate{From: mapgrid.Point{X: 1, Y: 1}, To: mapgrid.Point{X: 2, Y: 2}})

	s := NewScheduler(rec, input.Script())
	turn := NewTurn(s, a)
	sig, err := a.HandleInput(turn, input.Press(input.Rune('x')))
	if sig != Continue || err != nil {
		t.Fatalf("got (%v, %v), want (continue, nil)", sig, err)
	}
}

func TestPanickingPredicateDoesNotFire(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	a := newFake("A", rec)
	b := newFake("B", rec)
	a.LinkChange(nil, func(EvalContext) bool { panic("nil menu") })
	a.LinkChange([]Entry{Instance(b)}, Always)

	s := NewScheduler(rec, input.Script())
	turn := NewTurn(s, a)
	sig, err := a.HandleInput(turn, input.Press(input.Rune('x')))
	if sig != Stop || err != nil {
		t.Fatalf("got (%v, %v), want (stop, nil)", sig, err)
	}
	if got := names(s.Queue()); !equalNames(got, []string{"B"}) {
		t.Errorf("queue = %v, want [B]", got)
	}
}

func TestRelocateTrigger(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	from := mapgrid.Point{X: 3, Y: 3}
	to := mapgrid.Point{X: 1, Y: 1}
	r := &relocFake{fakeState: newFake("map", rec)}
	r.pos = &from
	r.moved = true
	r.AddTrigger(&Relocate{From: from, To: to})

	s := NewScheduler(rec, input.Script())
	turn := NewTurn(s, r)

	sig, err := r.CheckTriggers(turn, EvalContext{}.WithPosition(from, true))
	if sig != Continue || err != nil {
		t.Fatalf("got (%v, %v)", sig, err)
	}
	if len(r.relocated) != 1 || r.relocated[0] != to {
		t.Fatalf("relocated = %v, want [%v]", r.relocated, to)
	}

	// not moved: standing still on the trip cell does not fire
	r.relocated = nil
	if _, err := r.CheckTriggers(turn, EvalContext{}.WithPosition(from, false)); err != nil {
		t.Fatal(err)
	}
	if len(r.relocated) != 0 {
		t.Errorf("relocate fired without movement")
	}
}

func TestTurnFailureIsRecorded(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	boom := errors.New("boom")
	a := newFake("A", rec)
	a.inputErr = boom
	b := newFake("B", rec)
	b.drawErr = boom

	s := NewScheduler(rec, input.Script(input.Rune('x')))
	s.Enqueue(Instance(a), Instance(b))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	turns := s.Turns()
	if len(turns) != 2 {
		t.Fatalf("turns = %+v", turns)
	}
	for _, tr := range turns {
		if tr.ExitCode != 1 || !errors.Is(tr.Err, boom) {
			t.Errorf("turn %s: exit %d err %v", tr.State, tr.ExitCode, tr.Err)
		}
		var te *TurnError
		if !errors.As(tr.Err, &te) {
			t.Errorf("turn %s error is not a TurnError", tr.State)
		}
	}
}

func TestInterrupt(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	a := newFake("A", rec)
	s := NewScheduler(rec, input.Script(input.Interrupt))
	s.Enqueue(Instance(a))

	if err := s.Run(context.Background()); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("Run = %v, want ErrInterrupted", err)
	}
	if len(a.events) != 0 {
		t.Errorf("interrupt reached the state")
	}
	if a.disposed != 1 {
		t.Errorf("state not disposed on interrupt")
	}
}

func TestStateInterruptEndsSession(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	a := newFake("A", rec)
	a.inputErr = fmt.Errorf("aborted by user: %w", ErrInterrupted)
	b := newFake("B", rec)

	s := NewScheduler(rec, input.Script(input.Rune('x')))
	s.Enqueue(Instance(a), Instance(b))

	if err := s.Run(context.Background()); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("Run = %v, want ErrInterrupted", err)
	}
	if len(s.Turns()) != 0 {
		t.Errorf("interrupt recorded as a turn: %+v", s.Turns())
	}
	if b.draws != 0 {
		t.Errorf("session continued after interrupt")
	}
}

func TestReleaseFollowsPress(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	a := newFake("A", rec)
	k := input.Rune('w')
	a.LinkChange(nil, Flag("done"))

	ch := make(input.Chan, 1)
	s := NewScheduler(rec, ch)
	s.Enqueue(Instance(a))

	ch <- input.Press(k)
	close(ch)
	_ = s.Run(context.Background())

	if len(a.events) != 2 {
		t.Fatalf("events = %v", a.events)
	}
	if a.events[0].Kind != input.KeyDown || a.events[1].Kind != input.KeyUp {
		t.Errorf("expected down then up, got %v %v", a.events[0].Kind, a.events[1].Kind)
	}
}

func TestDeferredEntry(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	built := 0
	var made *fakeState
	entry := Deferred("lazy", func() (State, error) {
		built++
		made = newFake("lazy", rec)
		made.LinkChange(nil, Always)
		return made, nil
	})

	s := NewScheduler(rec, input.Script(input.Rune('a')))
	s.Enqueue(entry)
	if built != 0 {
		t.Fatal("factory ran before pop")
	}
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if built != 1 || made.draws != 1 {
		t.Errorf("built=%d draws=%d", built, made.draws)
	}

	failing := Deferred("broken", func() (State, error) { return nil, errors.New("no map") })
	s.Enqueue(failing)
	if err := s.Run(context.Background()); err == nil {
		t.Error("expected factory error")
	}
}

func TestContextCancel(t *testing.T) {
	rec := surface.NewRecorder(20, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewScheduler(rec, make(input.Chan))
	s.Enqueue(Instance(newFake("A", rec)))
	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func (f *fakeState) entry() Entry { return Instance(f) }
