package behavior

import (
	"github.com/lixenwraith/gridstage/engine"
)

// Advance is a stage hook that moves to the next stage once any entity reports a catch
// Past the last stage the engine fails with engine.ErrStagesExhausted so the host can end the session
type Advance struct{}

func (Advance) Proceed(s *engine.Stage) bool {
	for _, e := range s.Entities() {
		if _, caught := e.Control[ControlCaught]; !caught {
			continue
		}
		eng := s.Engine()
		if _, err := eng.NextStage(); err != nil {
			eng.Fail(err)
		}
		return false
	}
	return true
}
