package input

import (
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"q", Rune('q')},
		{"Q", Rune('Q')},
		{"enter", Enter},
		{"Up", Up},
		{"esc", Escape},
		{"space", Rune(' ')},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if _, err := Parse("hyperspace"); err == nil {
		t.Error("expected error for unknown key name")
	}
}

func TestFromEvent(t *testing.T) {
	if k := FromEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); k != Rune('x') {
		t.Errorf("rune event -> %v", k)
	}
	if k := FromEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)); k != Left {
		t.Errorf("left event -> %v", k)
	}
}

func TestKeySetConcurrent(t *testing.T) {
	s := NewKeySet()
	var wg sync.WaitGroup

	// Writer on one goroutine, reader/remover on another, as listener and evaluator do
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Add(Rune(rune('a' + i%26)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = s.Has(Rune('c'))
			s.Remove(Rune(rune('a' + i%26)))
			_ = s.Keys()
		}
	}()
	wg.Wait()

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("len after reset = %d", s.Len())
	}
	s.Add(Enter)
	s.Add(Enter)
	if s.Len() != 1 || !s.Has(Enter) {
		t.Errorf("set semantics broken: %v", s.Keys())
	}
}

func TestScript(t *testing.T) {
	src := Script(Rune('a'), Enter)
	var got []Event
	for ev := range src.Events() {
		got = append(got, ev)
	}
	if len(got) != 2 || got[0] != Press(Rune('a')) || got[1] != Press(Enter) {
		t.Errorf("script delivered %v", got)
	}
}

func TestListener(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(40, 10)

	l := NewListener(screen)
	if err := l.Start(); err != nil {
		t.Fatal(err)
	}

	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)

	var keys []Key
	timeout := time.After(2 * time.Second)
	for len(keys) < 2 {
		select {
		case ev := <-l.Events():
			if ev.Kind == KeyDown {
				keys = append(keys, ev.Key)
			}
		case <-timeout:
			t.Fatalf("timed out, got %v", keys)
		}
	}
	if keys[0] != Rune('p') || keys[1] != Down {
		t.Errorf("keys = %v", keys)
	}

	done := make(chan struct{})
	go func() {
		l.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}

	if _, ok := <-l.Events(); ok {
		// Drain anything queued before close
		for range l.Events() {
		}
	}
	if err := l.Start(); err != ErrListenerStopped {
		t.Errorf("restart after stop: %v", err)
	}
	l.Stop()
}
