package script

import (
	"math"

	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/render"
	lua "github.com/yuin/gopher-lua"
)

// behavior adapts a Lua table with update/draw methods to engine.EntityBehavior
type behavior struct {
	eng   *Engine
	name  string
	table *lua.LTable
}

func (b *behavior) Update(ent *engine.Entity) {
	b.eng.entity = ent
	defer func() { b.eng.entity = nil }()

	t := b.eng.entityTable(ent)
	if _, ok := b.eng.call(b.name, b.table, "update", t); ok {
		b.eng.writeBack(ent, t)
	}
}

func (b *behavior) Draw(ent *engine.Entity, s render.Surface) {
	if !isFunc(b.table, "draw") {
		s.FillRect(ent.Bounds(), ent.Color)
		return
	}
	b.eng.entity = ent
	b.eng.surface = s
	defer func() {
		b.eng.entity = nil
		b.eng.surface = nil
	}()
	b.eng.call(b.name, b.table, "draw", b.eng.entityTable(ent))
}

// hook adapts a Lua table with a proceed method to engine.StageHook
type hook struct {
	eng   *Engine
	name  string
	table *lua.LTable
}

// Proceed returns the method's truthiness; errors proceed
func (h *hook) Proceed(s *engine.Stage) bool {
	t := h.eng.vm.NewTable()
	t.RawSetString("index", lua.LNumber(s.Index()))
	t.RawSetString("name", lua.LString(s.Name))
	t.RawSetString("status", lua.LString(s.Status.String()))
	t.RawSetString("timeout", lua.LNumber(s.Timeout))
	t.RawSetString("frame", lua.LNumber(s.Engine().Frame()))

	ret, ok := h.eng.call(h.name, h.table, "proceed", t)
	if !ok {
		return true
	}
	return lua.LVAsBool(ret)
}

// entityTable copies entity state into a fresh Lua table
func (e *Engine) entityTable(ent *engine.Entity) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("id", lua.LNumber(ent.ID()))
	t.RawSetString("kind", lua.LString(ent.Kind.String()))
	t.RawSetString("x", lua.LNumber(ent.X))
	t.RawSetString("y", lua.LNumber(ent.Y))
	t.RawSetString("width", lua.LNumber(ent.Width))
	t.RawSetString("height", lua.LNumber(ent.Height))
	t.RawSetString("orientation", lua.LString(ent.Orientation.String()))
	t.RawSetString("speed", lua.LNumber(ent.Speed))
	t.RawSetString("status", lua.LString(ent.Status.String()))
	t.RawSetString("timeout", lua.LNumber(ent.Timeout))
	t.RawSetString("times", lua.LNumber(ent.Times))
	t.RawSetString("coord_x", lua.LNumber(ent.Coord.X))
	t.RawSetString("coord_y", lua.LNumber(ent.Coord.Y))
	t.RawSetString("offset", lua.LNumber(ent.Offset))

	ctl := e.vm.NewTable()
	for k, v := range ent.Control {
		if lv, ok := toLua(v); ok {
			ctl.RawSetString(k, lv)
		}
	}
	t.RawSetString("control", ctl)
	return t
}

// writeBack copies mutable fields from t onto ent; malformed values are ignored
func (e *Engine) writeBack(ent *engine.Entity, t *lua.LTable) {
	if v, ok := t.RawGetString("x").(lua.LNumber); ok {
		ent.X = float64(v)
	}
	if v, ok := t.RawGetString("y").(lua.LNumber); ok {
		ent.Y = float64(v)
	}
	if v, ok := t.RawGetString("speed").(lua.LNumber); ok {
		ent.Speed = float64(v)
	}
	if v, ok := t.RawGetString("timeout").(lua.LNumber); ok {
		ent.Timeout = int(v)
	}
	if v, ok := t.RawGetString("orientation").(lua.LString); ok {
		if d, err := core.ParseDirection(string(v)); err == nil {
			ent.Orientation = d
		}
	}
	if v, ok := t.RawGetString("status").(lua.LString); ok {
		if s, err := core.ParseStatus(string(v)); err == nil {
			ent.Status = s
		}
	}
	if ctl, ok := t.RawGetString("control").(*lua.LTable); ok {
		// Entries the script could see and cleared are removed
		for k, v := range ent.Control {
			if _, shown := toLua(v); shown && ctl.RawGetString(k) == lua.LNil {
				delete(ent.Control, k)
			}
		}
		ctl.ForEach(func(k, v lua.LValue) {
			key, ok := k.(lua.LString)
			if !ok {
				return
			}
			gv, ok := fromLua(v)
			if !ok {
				return
			}
			// Go types survive the trip through Lua numbers and strings
			switch ent.Control[string(key)].(type) {
			case core.Direction:
				name, _ := gv.(string)
				d, err := core.ParseDirection(name)
				if err != nil {
					return
				}
				gv = d
			case int:
				if f, isNum := gv.(float64); isNum && f == math.Trunc(f) {
					gv = int(f)
				}
			}
			ent.Control[string(key)] = gv
		})
	}
}

func toLua(v any) (lua.LValue, bool) {
	switch v := v.(type) {
	case bool:
		return lua.LBool(v), true
	case int:
		return lua.LNumber(v), true
	case float64:
		return lua.LNumber(v), true
	case string:
		return lua.LString(v), true
	case core.Direction:
		return lua.LString(v.String()), true
	}
	return lua.LNil, false
}

func fromLua(v lua.LValue) (any, bool) {
	switch v := v.(type) {
	case lua.LBool:
		return bool(v), true
	case lua.LNumber:
		return float64(v), true
	case lua.LString:
		return string(v), true
	}
	return nil, false
}
