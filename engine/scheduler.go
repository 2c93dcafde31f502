package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/lixenwraith/mazewalk/input"
	"github.com/lixenwraith/mazewalk/surface"
)

var (
	// ErrInterrupted is returned by Run when the user presses Ctrl-C
	ErrInterrupted = errors.New("session interrupted")
	// ErrInputClosed is returned when the input source ends while a state is active
	ErrInputClosed = errors.New("input source closed")
)

// TurnError wraps a failure that ended one state's turn
type TurnError struct {
	State string
	Err   error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("state %s: %v", e.State, e.Err)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}

// TurnResult records how a turn ended. ExitCode is 0 for a normal stop, 1 for a failure.
type TurnResult struct {
	State    string
	ExitCode int
	Err      error
}

// Scheduler owns the state queue and runs one state's input loop at a time
type Scheduler struct {
	mu      sync.Mutex
	queue   []Entry
	turns   []TurnResult
	source  input.Source
	backend surface.Surface
	logger  *log.Logger

	// OnEnter is called with the state name before each turn
	OnEnter func(name string)
}

// NewScheduler creates a scheduler drawing to backend and reading from source
func NewScheduler(backend surface.Surface, source input.Source) *Scheduler {
	return &Scheduler{
		backend: backend,
		source:  source,
	}
}

// SetLogger sets the logger for transitions and turn failures, nil uses the standard logger
func (s *Scheduler) SetLogger(l *log.Logger) {
	s.logger = l
}

func (s *Scheduler) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Enqueue appends entries to the queue
func (s *Scheduler) Enqueue(entries ...Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, entries...)
}

// Replace discards the queue and installs entries
func (s *Scheduler) Replace(entries ...Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append([]Entry(nil), entries...)
}

// Queue returns a copy of the pending entries
func (s *Scheduler) Queue() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.queue))
	copy(out, s.queue)
	return out
}

// Len returns the number of pending entries
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Turns returns the results of completed turns in order
func (s *Scheduler) Turns() []TurnResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TurnResult, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Scheduler) pop() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return Entry{}, false
	}
	e := s.queue[0]
	s.queue = s.queue[1:]
	return e, true
}

func (s *Scheduler) record(r TurnResult) {
	s.mu.Lock()
	s.turns = append(s.turns, r)
	s.mu.Unlock()
}

// Run executes queued states until the queue is empty.
// It returns nil on normal completion, ErrInterrupted on Ctrl-C, or the context error.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, ok := s.pop()
		if !ok {
			s.logf("scheduler: queue empty, session complete")
			return nil
		}

		st, err := entry.resolve()
		if err != nil {
			return fmt.Errorf("resolve %s: %w", entry.Name(), err)
		}

		if err := s.Restart(ctx, st); err != nil {
			return err
		}
	}
}

// Restart runs one turn of st: clear, initial draw, then its input loop until it stops.
// Turn failures are recorded and swallowed; ErrInterrupted, ErrInputClosed and
// context errors are returned.
func (s *Scheduler) Restart(ctx context.Context, st State) error {
	name := st.Name()
	s.logf("scheduler: enter %s (queued %d)", name, s.Len())
	if s.OnEnter != nil {
		s.OnEnter(name)
	}

	t := NewTurn(s, st)

	if s.backend != nil {
		if err := s.backend.Clear(); err != nil {
			s.endTurn(st, err)
			return nil
		}
	}
	if err := st.InitialDraw(); err != nil {
		s.endTurn(st, err)
		return nil
	}

	events := s.source.Events()
	for {
		select {
		case <-ctx.Done():
			st.Dispose()
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				st.Dispose()
				return ErrInputClosed
			}

			sig, err := s.dispatch(t, ev)
			if errors.Is(err, ErrInterrupted) {
				st.Dispose()
				return err
			}
			if err != nil {
				s.endTurn(st, err)
				return nil
			}
			if sig == Stop {
				st.Dispose()
				s.record(TurnResult{State: name})
				s.logf("scheduler: %s stopped", name)
				return nil
			}
		}
	}
}

// dispatch feeds one event to the turn's state.
// An error matching ErrInterrupted ends the session, any other error ends the turn.
func (s *Scheduler) dispatch(t *Turn, ev input.Event) (Signal, error) {
	switch ev.Kind {
	case input.Resize:
		if syncer, ok := s.backend.(interface{ Sync() }); ok {
			syncer.Sync()
		}
		if s.backend != nil {
			if err := s.backend.Clear(); err != nil {
				return Stop, err
			}
		}
		return Continue, t.state.InitialDraw()

	case input.KeyDown:
		if ev.Key == input.Interrupt {
			return Stop, ErrInterrupted
		}
		t.keys.Add(ev.Key)
		sig, err := t.state.HandleInput(t, ev)
		if err != nil || sig == Stop {
			t.keys.Remove(ev.Key)
			return sig, err
		}
		// terminals report no releases, one follows every press
		sig, err = t.state.HandleInput(t, input.Release(ev.Key))
		t.keys.Remove(ev.Key)
		return sig, err

	case input.KeyUp:
		sig, err := t.state.HandleInput(t, ev)
		t.keys.Remove(ev.Key)
		return sig, err
	}
	return Continue, nil
}

func (s *Scheduler) endTurn(st State, err error) {
	name := st.Name()
	s.logf("scheduler: %s failed: %v", name, err)
	if s.backend != nil {
		_ = s.backend.Clear()
		_ = s.backend.Present()
	}
	st.Dispose()
	s.record(TurnResult{State: name, ExitCode: 1, Err: &TurnError{State: name, Err: err}})
}
