package audio

import (
	"encoding/json"
	"os"
	"strconv"
)

// Config controls the sound manager
type Config struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	CueVolumes   map[Cue]float64
}

// DefaultConfig returns audio enabled at half volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		CueVolumes: map[Cue]float64{
			CueSelect:     1.0,
			CueBump:       0.8,
			CueTransition: 0.6,
		},
	}
}

// LoadConfig loads audio configuration from environment variables over the defaults
func LoadConfig() *Config {
	return ApplyEnv(DefaultConfig())
}

// ApplyEnv overrides cfg with MAZEWALK_* environment variables and returns it
func ApplyEnv(cfg *Config) *Config {
	if enabled := os.Getenv("MAZEWALK_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume 0-100 converted to 0.0-1.0
	if volume := os.Getenv("MAZEWALK_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	if cueVols := os.Getenv("MAZEWALK_CUE_VOLUMES"); cueVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(cueVols), &volumes); err == nil {
			if cfg.CueVolumes == nil {
				cfg.CueVolumes = make(map[Cue]float64)
			}
			for c := Cue(0); c < cueCount; c++ {
				if v, ok := volumes[c.String()]; ok {
					cfg.CueVolumes[c] = clampVolume(v)
				}
			}
		}
	}

	if sampleRate := os.Getenv("MAZEWALK_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}

// volume returns the effective gain for a cue
func (c *Config) volume(cue Cue) float64 {
	v, ok := c.CueVolumes[cue]
	if !ok {
		v = 1.0
	}
	return c.MasterVolume * v
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
