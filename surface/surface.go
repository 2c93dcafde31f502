package surface

import (
	"errors"
	"fmt"
)

// Unbounded marks an axis without an extent
const Unbounded = -1

var (
	ErrOutOfBounds     = errors.New("coordinates outside terminal")
	ErrUnboundedBorder = errors.New("cannot border an unbounded surface")
	ErrBorderTooSmall  = errors.New("border needs at least 2x2 cells")
)

// Surface is a node of the rendering tree
type Surface interface {
	// WriteText draws text starting at local (row, col)
	WriteText(row, col int, text string) error
	// Clear erases the underlying terminal
	Clear() error
	// Present flushes pending writes to the terminal
	Present() error
	// Size returns the local extent in character columns and rows, Unbounded per open axis
	Size() (width, height int)
}

// Error is a recoverable backend failure, callers tear the session down instead of crashing
type Error struct {
	Op       string
	Row, Col int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("surface %s at (%d,%d): %v", e.Op, e.Row, e.Col, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Chain returns the nodes from s up to the backend, following Parent links
func Chain(s Surface) []Surface {
	chain := []Surface{s}
	for {
		p, ok := s.(interface{ Parent() Surface })
		if !ok || p.Parent() == nil {
			return chain
		}
		s = p.Parent()
		chain = append(chain, s)
	}
}

// Root returns the last node of the chain, normally the Backend
func Root(s Surface) Surface {
	chain := Chain(s)
	return chain[len(chain)-1]
}
