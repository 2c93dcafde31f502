package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SoundManager plays cues through the beep speaker. Every method is a no-op until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	cache       *cueCache
	mixer       *beep.Mixer
	initialized bool
	played      [cueCount]int
}

// NewSoundManager creates a sound manager, nil cfg uses DefaultConfig
func NewSoundManager(cfg *Config) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		cache: newCueCache(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the speaker. A failure leaves the manager silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	sr := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Millisecond*100)); err != nil {
		return err
	}

	sm.cache.preload()
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

func (sm *SoundManager) Select()     { sm.Play(CueSelect) }
func (sm *SoundManager) Bump()       { sm.Play(CueBump) }
func (sm *SoundManager) Transition() { sm.Play(CueTransition) }

// Play mixes one cue into the output
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || c < 0 || c >= cueCount {
		return
	}

	buf := sm.cache.get(c)
	if len(buf) == 0 {
		return
	}
	sm.played[c]++

	speaker.Lock()
	sm.mixer.Add(newBufferStreamer(buf, sm.cfg.volume(c)))
	speaker.Unlock()
}

// Played returns how many times c reached the mixer
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if c < 0 || c >= cueCount {
		return 0
	}
	return sm.played[c]
}

// bufferStreamer plays a mono buffer on both channels at a fixed gain
type bufferStreamer struct {
	buf  floatBuffer
	gain float64
	pos  int
}

func newBufferStreamer(buf floatBuffer, gain float64) *bufferStreamer {
	return &bufferStreamer{buf: buf, gain: gain}
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for i := range samples {
		if s.pos >= len(s.buf) {
			break
		}
		v := s.buf[s.pos] * s.gain
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *bufferStreamer) Err() error {
	return nil
}

var (
	_ Cues          = (*SoundManager)(nil)
	_ Cues          = Silent{}
	_ beep.Streamer = (*bufferStreamer)(nil)
)
