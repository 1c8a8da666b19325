package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/engine"
)

// chanTarget runs posted callbacks on the test goroutine
type chanTarget struct {
	posted     chan func()
	dispatched []*engine.InputEvent
}

func newChanTarget() *chanTarget {
	return &chanTarget{posted: make(chan func(), 16)}
}

func (c *chanTarget) Post(fn func()) { c.posted <- fn }

func (c *chanTarget) Dispatch(ev *engine.InputEvent) {
	c.dispatched = append(c.dispatched, ev)
}

func (c *chanTarget) next(t *testing.T) {
	t.Helper()
	select {
	case fn := <-c.posted:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("no event posted")
	}
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	s.SetSize(40, 20)
	return s
}

func TestPumpForwardsEvents(t *testing.T) {
	screen := newScreen(t)
	target := newChanTarget()
	quits := 0
	p := NewPump(screen, target, WithQuit(func() { quits++ }))
	p.Start()

	screen.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	// The simulation screen may report its own resize first
	for quits == 0 {
		target.next(t)
	}

	var keys []*engine.InputEvent
	for _, ev := range target.dispatched {
		if ev.Type == engine.EventKeyDown {
			keys = append(keys, ev)
		}
	}
	if len(keys) != 1 || keys[0].Rune != 'z' {
		t.Errorf("dispatched keys = %v, want the 'z' key only", keys)
	}
	if quits != 1 {
		t.Errorf("quit callback ran %d times, want 1", quits)
	}

	screen.Fini()
	select {
	case <-p.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not stop after Fini")
	}
	if p.Forwarded() < 2 {
		t.Errorf("Forwarded() = %d, want at least 2", p.Forwarded())
	}
}

func TestPumpResizeCallback(t *testing.T) {
	screen := newScreen(t)
	target := newChanTarget()
	resized := false
	p := NewPump(screen, target, WithResize(func() { resized = true }))

	// Drive forward directly to avoid racing the simulation screen's own resize event
	p.forward(&engine.InputEvent{Type: engine.EventResize, ClientX: 10, ClientY: 5})
	target.next(t)
	if !resized || len(target.dispatched) != 1 {
		t.Errorf("resized=%v dispatched=%d", resized, len(target.dispatched))
	}
	screen.Fini()
}

func TestPumpWithoutQuitDispatchesEscape(t *testing.T) {
	target := newChanTarget()
	p := NewPump(nil, target)
	p.forward(&engine.InputEvent{Type: engine.EventKeyDown, Key: tcell.KeyEscape})
	target.next(t)
	if len(target.dispatched) != 1 {
		t.Errorf("escape not dispatched without a quit handler")
	}
}
