package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridstage/core"
	"github.com/lixenwraith/gridstage/engine"
	"github.com/lixenwraith/gridstage/render"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Prefix is prepended to every Lua behavior identifier
const Prefix = "lua:"

// Engine wraps a single gopher-lua VM for content behaviors
// Single-goroutine access only (engine loop)
type Engine struct {
	vm  *lua.LState
	log *zap.Logger

	// Set for the duration of a callback so API functions know their context
	entity  *engine.Entity
	surface render.Surface
}

// NewEngine creates a VM with the gridstage API installed
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	vm.SetGlobal("fill", vm.NewFunction(e.luaFill))
	vm.SetGlobal("cell", vm.NewFunction(e.luaCell))
	vm.SetGlobal("set_cell", vm.NewFunction(e.luaSetCell))
	vm.SetGlobal("cue", vm.NewFunction(e.luaCue))
	return e
}

// Close releases the VM
func (e *Engine) Close() {
	e.vm.Close()
}

// LoadDir runs every .lua file in dir in name order; a missing dir is not an error
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs src as a chunk named name
func (e *Engine) LoadString(name, src string) error {
	fn, err := e.vm.Load(strings.NewReader(src), name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// Register adds a behavior for every global table defining update, draw or proceed
// Tables with update/draw become entity behaviors, tables with proceed become stage hooks.
// Returns the registered identifiers, sorted.
func (e *Engine) Register(r *engine.Registry) []string {
	var ids []string
	e.vm.G.Global.ForEach(func(k, v lua.LValue) {
		name, ok := k.(lua.LString)
		if !ok {
			return
		}
		tbl, ok := v.(*lua.LTable)
		if !ok || tbl == e.vm.G.Global {
			return
		}
		id := Prefix + string(name)
		registered := false
		if isFunc(tbl, "update") || isFunc(tbl, "draw") {
			r.RegisterEntity(id, &behavior{eng: e, name: string(name), table: tbl})
			registered = true
		}
		if isFunc(tbl, "proceed") {
			r.RegisterHook(id, &hook{eng: e, name: string(name), table: tbl})
			registered = true
		}
		if registered {
			ids = append(ids, id)
		}
	})
	sort.Strings(ids)
	e.log.Info("lua behaviors registered", zap.Strings("ids", ids))
	return ids
}

func isFunc(t *lua.LTable, name string) bool {
	_, ok := t.RawGetString(name).(*lua.LFunction)
	return ok
}

// call invokes table[method](table, args...) in protected mode, returning its first result
func (e *Engine) call(name string, t *lua.LTable, method string, args ...lua.LValue) (lua.LValue, bool) {
	fn, ok := t.RawGetString(method).(*lua.LFunction)
	if !ok {
		return lua.LNil, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, append([]lua.LValue{t}, args...)...); err != nil {
		e.log.Error("lua behavior error", zap.String("behavior", name), zap.String("method", method), zap.Error(err))
		return lua.LNil, false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return ret, true
}

// luaFill implements fill(x, y, w, h, color); only valid inside draw
func (e *Engine) luaFill(L *lua.LState) int {
	if e.surface == nil {
		L.RaiseError("fill called outside draw")
		return 0
	}
	r := core.Rect{
		X:      float64(L.CheckNumber(1)),
		Y:      float64(L.CheckNumber(2)),
		Width:  float64(L.CheckNumber(3)),
		Height: float64(L.CheckNumber(4)),
	}
	color := tcell.ColorWhite
	if L.GetTop() >= 5 {
		color = tcell.GetColor(L.CheckString(5))
	}
	e.surface.FillRect(r, color)
	return 0
}

// luaCell implements cell(x, y) on the current entity's grid, -1 outside or unbound
func (e *Engine) luaCell(L *lua.LState) int {
	x, y := L.CheckInt(1), L.CheckInt(2)
	v := -1
	if e.entity != nil && e.entity.Grid != nil {
		v = e.entity.Grid.Get(x, y)
	}
	L.Push(lua.LNumber(v))
	return 1
}

// luaSetCell implements set_cell(x, y, v) on the current entity's grid
func (e *Engine) luaSetCell(L *lua.LState) int {
	x, y, v := L.CheckInt(1), L.CheckInt(2), L.CheckInt(3)
	if e.entity != nil && e.entity.Grid != nil {
		e.entity.Grid.Set(x, y, v)
	}
	return 0
}

// luaCue implements cue(name)
func (e *Engine) luaCue(L *lua.LState) int {
	name := L.CheckString(1)
	if e.entity != nil {
		e.entity.Stage().Engine().Cue(name)
	}
	return 0
}
