package audio

// Cue identifies a short sound played on a session event
type Cue int

const (
	CueSelect     Cue = iota // Menu option chosen
	CueBump                  // Move blocked by a wall
	CueTransition            // State change
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueSelect:
		return "select"
	case CueBump:
		return "bump"
	case CueTransition:
		return "transition"
	default:
		return "unknown"
	}
}

// Cues is the hook states call on notable input
type Cues interface {
	Select()
	Bump()
	Transition()
}

// Silent discards every cue
type Silent struct{}

func (Silent) Select()     {}
func (Silent) Bump()       {}
func (Silent) Transition() {}
