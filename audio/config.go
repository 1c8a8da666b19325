package audio

import "time"

// Cue names understood by the player
const (
	CueStage   = "stage"   // Stage activated
	CueBlocked = "blocked" // Chaser found no route
	CueHit     = "hit"     // Entity clicked or caught
)

// Cue timing
const (
	StageNote1Duration = 80 * time.Millisecond
	StageNote2Duration = 280 * time.Millisecond
	StageAttack        = 5 * time.Millisecond
	StageNote1Release  = 40 * time.Millisecond
	StageNote2Release  = 200 * time.Millisecond

	BlockedDuration = 80 * time.Millisecond
	BlockedAttack   = 5 * time.Millisecond
	BlockedRelease  = 20 * time.Millisecond

	HitDuration = 50 * time.Millisecond
)

// Config controls the cue player
type Config struct {
	Enabled      bool
	SampleRate   int
	MasterVolume float64            // 0.0-1.0
	CueVolumes   map[string]float64 // Per-cue gain, missing cues play at 1.0
}

// DefaultConfig returns a disabled player configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:      false,
		SampleRate:   44100,
		MasterVolume: 0.5,
		CueVolumes: map[string]float64{
			CueStage:   0.8,
			CueBlocked: 0.6,
			CueHit:     1.0,
		},
	}
}

// volume returns the effective gain for cue
func (c *Config) volume(cue string) float64 {
	v, ok := c.CueVolumes[cue]
	if !ok {
		v = 1.0
	}
	return v * c.MasterVolume
}
