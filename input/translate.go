package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
)

// Translator turns tcell events into engine input events
// It tracks button state across mouse events to synthesise down/up/click transitions
type Translator struct {
	buttons tcell.ButtonMask
}

// NewTranslator creates a translator with no buttons held
func NewTranslator() *Translator {
	return &Translator{}
}

// Translate converts ev, returning nil for events the engine does not consume
// Mouse positions are reported at the centre of the terminal cell
func (t *Translator) Translate(ev tcell.Event) []*engine.InputEvent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return []*engine.InputEvent{{
			Type: engine.EventKeyDown,
			Key:  ev.Key(),
			Rune: ev.Rune(),
			Mods: ev.Modifiers(),
		}}

	case *tcell.EventMouse:
		x, y := ev.Position()
		buttons := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
		mk := func(typ string) *engine.InputEvent {
			return &engine.InputEvent{
				Type:    typ,
				ClientX: float64(x) + 0.5,
				ClientY: float64(y) + 0.5,
				Buttons: buttons,
				Mods:    ev.Modifiers(),
			}
		}

		prev := t.buttons
		t.buttons = buttons
		switch {
		case buttons&^prev != 0:
			return []*engine.InputEvent{mk(engine.EventMouseDown)}
		case prev&^buttons != 0:
			return []*engine.InputEvent{mk(engine.EventMouseUp), mk(engine.EventClick)}
		default:
			return []*engine.InputEvent{mk(engine.EventMouseMove)}
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		return []*engine.InputEvent{{
			Type:    engine.EventResize,
			ClientX: float64(w),
			ClientY: float64(h),
		}}
	}
	return nil
}

// IsQuit reports whether ev is a host-level quit key (Escape, Ctrl-C, Ctrl-Q)
func IsQuit(ev *engine.InputEvent) bool {
	if ev.Type != engine.EventKeyDown {
		return false
	}
	switch ev.Key {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return true
	}
	return false
}

// KeyName returns a stable name for a key event: arrow keys as "ArrowUp" etc.,
// printable keys as the rune itself, other keys by their tcell name
func KeyName(ev *engine.InputEvent) string {
	switch ev.Key {
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyEscape:
		return "Escape"
	case tcell.KeyRune:
		if ev.Rune == ' ' {
			return "Space"
		}
		return string(ev.Rune)
	}
	if name, ok := tcell.KeyNames[ev.Key]; ok {
		return name
	}
	return ""
}

// Steering maps arrow keys, WASD and hjkl onto movement directions
func Steering(ev *engine.InputEvent) (core.Direction, bool) {
	switch ev.Key {
	case tcell.KeyUp:
		return core.DirUp, true
	case tcell.KeyDown:
		return core.DirDown, true
	case tcell.KeyLeft:
		return core.DirLeft, true
	case tcell.KeyRight:
		return core.DirRight, true
	case tcell.KeyRune:
		switch ev.Rune {
		case 'w', 'W', 'k':
			return core.DirUp, true
		case 's', 'S', 'j':
			return core.DirDown, true
		case 'a', 'A', 'h':
			return core.DirLeft, true
		case 'd', 'D', 'l':
			return core.DirRight, true
		}
	}
	return 0, false
}
