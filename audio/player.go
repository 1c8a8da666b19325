package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// Player plays named cues through the system speaker
// Every method is safe without a working audio device; cues are then dropped
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	log         *zap.Logger
	initialized bool

	muted   atomic.Bool
	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewPlayer creates an uninitialised player; nil cfg uses DefaultConfig
func NewPlayer(cfg *Config, log *zap.Logger) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{cfg: cfg, log: log}
}

// Init opens the speaker; a disabled player stays silent and returns nil
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}
	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	p.initialized = true
	p.log.Info("audio initialized", zap.Int("sample_rate", p.cfg.SampleRate))
	return nil
}

// Play queues cue for playback, dropping it when silent
func (p *Player) Play(cue string) {
	p.mu.Lock()
	ready := p.initialized
	p.mu.Unlock()

	if !ready || p.muted.Load() {
		p.dropped.Add(1)
		return
	}
	s := CueStreamer(cue, p.cfg)
	if s == nil {
		p.log.Warn("unknown audio cue", zap.String("cue", cue))
		p.dropped.Add(1)
		return
	}
	speaker.Play(s)
	p.played.Add(1)
}

// SetMuted mutes or unmutes future cues
func (p *Player) SetMuted(muted bool) {
	p.muted.Store(muted)
}

// Muted reports the mute state
func (p *Player) Muted() bool {
	return p.muted.Load()
}

// Stats returns played and dropped cue counts
func (p *Player) Stats() (played, dropped uint64) {
	return p.played.Load(), p.dropped.Load()
}

// Close stops playback and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
