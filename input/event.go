package input

// Kind classifies an input event
type Kind uint8

const (
	KeyDown Kind = iota
	KeyUp
	Resize
)

func (k Kind) String() string {
	switch k {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case Resize:
		return "resize"
	default:
		return "unknown"
	}
}

// Event is a discrete input event. Width and Height are set for Resize only.
type Event struct {
	Kind          Kind
	Key           Key
	Width, Height int
}

// Press returns a key-down event
func Press(k Key) Event {
	return Event{Kind: KeyDown, Key: k}
}

// Release returns a key-up event
func Release(k Key) Event {
	return Event{Kind: KeyUp, Key: k}
}

// Source delivers input events to the active state's loop. The channel closes when input ends.
type Source interface {
	Events() <-chan Event
}

// Chan adapts a plain channel into a Source, used for scripted input
type Chan chan Event

func (c Chan) Events() <-chan Event {
	return c
}

// Script returns a closed, pre-filled source delivering a key-down for each key
func Script(keys ...Key) Chan {
	ch := make(Chan, len(keys))
	for _, k := range keys {
		ch <- Press(k)
	}
	close(ch)
	return ch
}
