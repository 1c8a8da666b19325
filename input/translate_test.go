package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
)

func TestTranslateKey(t *testing.T) {
	tr := NewTranslator()
	out := tr.Translate(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	if len(out) != 1 {
		t.Fatalf("got %d events, want 1", len(out))
	}
	if out[0].Type != engine.EventKeyDown || out[0].Key != tcell.KeyRune || out[0].Rune != 'x' {
		t.Errorf("event = %+v", out[0])
	}
}

func TestTranslateMouseTransitions(t *testing.T) {
	tr := NewTranslator()

	steps := []struct {
		name    string
		buttons tcell.ButtonMask
		want    []string
	}{
		{"hover", tcell.ButtonNone, []string{engine.EventMouseMove}},
		{"press", tcell.Button1, []string{engine.EventMouseDown}},
		{"drag", tcell.Button1, []string{engine.EventMouseMove}},
		{"release", tcell.ButtonNone, []string{engine.EventMouseUp, engine.EventClick}},
		{"wheel ignored", tcell.WheelUp, []string{engine.EventMouseMove}},
	}
	for _, st := range steps {
		out := tr.Translate(tcell.NewEventMouse(3, 4, st.buttons, tcell.ModNone))
		if len(out) != len(st.want) {
			t.Fatalf("%s: got %d events, want %v", st.name, len(out), st.want)
		}
		for i, ev := range out {
			if ev.Type != st.want[i] {
				t.Errorf("%s: event %d = %q, want %q", st.name, i, ev.Type, st.want[i])
			}
			if ev.ClientX != 3.5 || ev.ClientY != 4.5 {
				t.Errorf("%s: client = (%v,%v), want cell centre (3.5,4.5)", st.name, ev.ClientX, ev.ClientY)
			}
		}
	}
}

func TestTranslateResize(t *testing.T) {
	out := NewTranslator().Translate(tcell.NewEventResize(80, 24))
	if len(out) != 1 || out[0].Type != engine.EventResize || out[0].ClientX != 80 || out[0].ClientY != 24 {
		t.Errorf("resize translated to %+v", out)
	}
}

func TestTranslateIgnoresOtherEvents(t *testing.T) {
	if out := NewTranslator().Translate(tcell.NewEventInterrupt(nil)); out != nil {
		t.Errorf("interrupt translated to %v", out)
	}
}

func TestIsQuit(t *testing.T) {
	tests := []struct {
		ev   engine.InputEvent
		want bool
	}{
		{engine.InputEvent{Type: engine.EventKeyDown, Key: tcell.KeyEscape}, true},
		{engine.InputEvent{Type: engine.EventKeyDown, Key: tcell.KeyCtrlC}, true},
		{engine.InputEvent{Type: engine.EventKeyDown, Key: tcell.KeyCtrlQ}, true},
		{engine.InputEvent{Type: engine.EventKeyDown, Key: tcell.KeyRune, Rune: 'q'}, false},
		{engine.InputEvent{Type: engine.EventClick}, false},
	}
	for _, tt := range tests {
		if got := IsQuit(&tt.ev); got != tt.want {
			t.Errorf("IsQuit(%+v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want string
	}{
		{tcell.KeyUp, 0, "ArrowUp"},
		{tcell.KeyLeft, 0, "ArrowLeft"},
		{tcell.KeyEnter, 0, "Enter"},
		{tcell.KeyRune, 'a', "a"},
		{tcell.KeyRune, ' ', "Space"},
		{tcell.KeyF1, 0, "F1"},
	}
	for _, tt := range tests {
		ev := &engine.InputEvent{Type: engine.EventKeyDown, Key: tt.key, Rune: tt.r}
		if got := KeyName(ev); got != tt.want {
			t.Errorf("KeyName(%v, %q) = %q, want %q", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestSteering(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want core.Direction
		ok   bool
	}{
		{tcell.KeyUp, 0, core.DirUp, true},
		{tcell.KeyRight, 0, core.DirRight, true},
		{tcell.KeyRune, 'a', core.DirLeft, true},
		{tcell.KeyRune, 'j', core.DirDown, true},
		{tcell.KeyRune, 'x', 0, false},
		{tcell.KeyEnter, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := Steering(&engine.InputEvent{Type: engine.EventKeyDown, Key: tt.key, Rune: tt.r})
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Steering(%v, %q) = %v, %v; want %v, %v", tt.key, tt.r, got, ok, tt.want, tt.ok)
		}
	}
}
