package input

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"
)

var ErrListenerStopped = errors.New("listener already stopped")

// Listener polls a tcell screen on its own goroutine and delivers key-down and resize
// events over a channel. Terminals report no key releases; consumers synthesize them.
type Listener struct {
	screen  tcell.Screen
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
	stopped bool

	// OnPanic runs if the poll goroutine panics, defaults to restoring the terminal and exiting
	OnPanic func(r any)
}

// NewListener creates a listener for an initialized screen
func NewListener(screen tcell.Screen) *Listener {
	l := &Listener{
		screen:  screen,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	l.OnPanic = l.crash
	return l
}

// Start launches the poll goroutine
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return ErrListenerStopped
	}
	if l.running {
		return nil
	}
	l.running = true

	go l.pollLoop()
	return nil
}

// Events returns the event channel, closed after Stop
func (l *Listener) Events() <-chan Event {
	return l.eventCh
}

// pollLoop reads screen events until stop signal
func (l *Listener) pollLoop() {
	defer close(l.doneCh)

	defer func() {
		if r := recover(); r != nil {
			l.OnPanic(r)
		}
	}()

	for {
		select {
		case <-l.stopCh:
			return
		default:
		}

		ev := l.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}

		var out Event
		switch e := ev.(type) {
		case *tcell.EventKey:
			out = Event{Kind: KeyDown, Key: FromEvent(e)}
		case *tcell.EventResize:
			w, h := e.Size()
			out = Event{Kind: Resize, Width: w, Height: h}
		default:
			// Interrupts posted by Stop and unhandled event types
			continue
		}

		select {
		case l.eventCh <- out:
		case <-l.stopCh:
			return
		}
	}
}

// Stop ends polling and returns once the goroutine has exited
func (l *Listener) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	wasRunning := l.running
	l.running = false
	l.mu.Unlock()

	close(l.stopCh)

	if wasRunning {
		// Wake PollEvent
		_ = l.screen.PostEvent(tcell.NewEventInterrupt(nil))
		<-l.doneCh
	}
	close(l.eventCh)
}

func (l *Listener) crash(r any) {
	l.screen.Fini()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT LISTENER CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}
