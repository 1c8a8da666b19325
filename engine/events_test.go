package engine

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDispatchEntityHitTest(t *testing.T) {
	te := newTestEngine(t)
	s := mustStage(t, te.Engine, StageConfig{})
	a := mustEntity(t, s, EntityConfig{X: 0, Y: 0, Width: 20, Height: 20})
	b := mustEntity(t, s, EntityConfig{X: 10, Y: 10, Width: 20, Height: 20})
	if err := te.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	var hits []int
	record := func(e *Entity, ev *InputEvent) { hits = append(hits, e.ID()) }
	a.Bind(EventClick, record)
	b.Bind(EventClick, record)

	tests := []struct {
		name string
		x, y float64
		want []int
	}{
		{"only first", 5, 5, []int{0}},
		{"overlap hits both in order", 15, 15, []int{0, 1}},
		{"edge inclusive", 30, 30, []int{1}},
		{"miss", 100, 100, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits = nil
			ev := &InputEvent{Type: EventClick, ClientX: tt.x, ClientY: tt.y}
			te.Dispatch(ev)
			if len(hits) != len(tt.want) {
				t.Fatalf("hits = %v, want %v", hits, tt.want)
			}
			for i := range hits {
				if hits[i] != tt.want[i] {
					t.Errorf("hits = %v, want %v", hits, tt.want)
				}
			}
			if !ev.Handled {
				t.Error("event with a surface listener not marked handled")
			}
		})
	}
}

func TestDispatchUsesPointerPosition(t *testing.T) {
	te := newTestEngine(t)
	te.surface.viewport.X = 100
	te.surface.viewport.Width = 480
	s := mustStage(t, te.Engine, StageConfig{})
	ent := mustEntity(t, s, EntityConfig{X: 200, Y: 0, Width: 10, Height: 10})
	if err := te.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	hit := false
	ent.Bind(EventMouseDown, func(*Entity, *InputEvent) { hit = true })

	// Client x 202 maps to logical (202-100)*2 = 204
	te.Dispatch(&InputEvent{Type: EventMouseDown, ClientX: 202, ClientY: 2})
	if !hit {
		t.Error("entity not hit through viewport mapping")
	}
}

func TestDispatchStageHandler(t *testing.T) {
	te := newTestEngine(t)
	first := mustStage(t, te.Engine, StageConfig{})
	second := mustStage(t, te.Engine, StageConfig{})
	if err := te.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	var got []string
	first.Bind(EventKeyDown, func(s *Stage, ev *InputEvent) { got = append(got, "first-a") })
	first.Bind(EventKeyDown, func(s *Stage, ev *InputEvent) { got = append(got, "first-b") })
	second.Bind(EventKeyDown, func(s *Stage, ev *InputEvent) { got = append(got, "second") })

	ev := &InputEvent{Type: EventKeyDown, Key: tcell.KeyUp}
	te.Dispatch(ev)
	if len(got) != 1 || got[0] != "first-b" {
		t.Errorf("handlers run = %v, want [first-b]", got)
	}
	if !ev.Handled {
		t.Error("key event not marked handled")
	}

	if _, err := te.NextStage(); err != nil {
		t.Fatalf("NextStage: %v", err)
	}
	got = nil
	te.Dispatch(&InputEvent{Type: EventKeyDown, Key: tcell.KeyUp})
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("handlers run after switch = %v, want [second]", got)
	}
}

func TestDispatchInactiveStageEntities(t *testing.T) {
	te := newTestEngine(t)
	first := mustStage(t, te.Engine, StageConfig{})
	second := mustStage(t, te.Engine, StageConfig{})
	a := mustEntity(t, first, EntityConfig{})
	mustEntity(t, second, EntityConfig{X: 500})
	if err := te.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	hits := 0
	a.Bind(EventClick, func(*Entity, *InputEvent) { hits++ })
	if _, err := te.NextStage(); err != nil {
		t.Fatalf("NextStage: %v", err)
	}

	ev := &InputEvent{Type: EventClick, ClientX: 5, ClientY: 5}
	te.Dispatch(ev)
	if hits != 0 {
		t.Errorf("entity of inactive stage received %d events", hits)
	}
	if !ev.Handled {
		t.Error("click not marked handled while a surface listener exists")
	}
}

func TestDispatchUnlistenedEvent(t *testing.T) {
	te := newTestEngine(t)
	mustStage(t, te.Engine, StageConfig{})
	if err := te.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	ev := &InputEvent{Type: EventMouseMove}
	te.Dispatch(ev)
	if ev.Handled {
		t.Error("event without listeners marked handled")
	}
	if te.Listening(EventMouseMove) {
		t.Error("Listening() true without a binding")
	}

	te.Current().Bind(EventResize, func(*Stage, *InputEvent) {})
	if !te.Listening(EventResize) {
		t.Error("Listening() false after stage Bind")
	}
}

func TestDispatchWithoutStages(t *testing.T) {
	te := newTestEngine(t)
	ev := &InputEvent{Type: EventClick}
	te.Dispatch(ev)
	if ev.Handled {
		t.Error("event handled with no stages")
	}
}
