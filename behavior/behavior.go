// Package behavior provides the stock grid and entity behaviors selectable by identifier
package behavior

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/gridstage/engine"
	"go.uber.org/zap"
)

// Stock behavior identifiers
const (
	IDTiles    = "tiles"
	IDBox      = "box"
	IDKeyboard = "keyboard"
	IDWalker   = "walker"
	IDChaser   = "chaser"
	IDAdvance  = "advance"
)

// Options configures the stock behaviors
type Options struct {
	Rand *rand.Rand  // Chaser fallback choices, default clock-seeded
	Log  *zap.Logger // Default Nop
}

// Register adds every stock behavior to r
func Register(r *engine.Registry, opts Options) {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	r.RegisterGrid(IDTiles, NewTiles(nil))
	r.RegisterEntity(IDBox, Box{})
	r.RegisterEntity(IDKeyboard, &Keyboard{})
	r.RegisterEntity(IDWalker, Walker{})
	r.RegisterEntity(IDChaser, NewChaser(opts.Rand, opts.Log))
	r.RegisterHook(IDAdvance, Advance{})
}
