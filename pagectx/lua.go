package pagectx

import (
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// LuaHook runs a user script's enrich(ctx) function over each snapshot. The
// function receives a table with the snapshot's fields and may return a
// table whose string fields replace them.
//
//	function enrich(ctx)
//	  if ctx.input_name == "subject" then
//	    return { description = "Writing an email subject line" }
//	  end
//	end
type LuaHook struct {
	mu sync.Mutex
	L  *lua.LState
}

// NewLuaHook loads script into a restricted Lua state. The script must define
// a global enrich function.
func NewLuaHook(script string) (*LuaHook, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("pagectx: load hook: %w", err)
	}
	if fn := L.GetGlobal("enrich"); fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("pagectx: hook must define function enrich (got %s)", fn.Type())
	}
	return &LuaHook{L: L}, nil
}

// LoadLuaHook reads a hook script from path.
func LoadLuaHook(path string) (*LuaHook, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pagectx: read hook: %w", err)
	}
	return NewLuaHook(string(b))
}

// Apply calls enrich with s and merges the returned table into a copy of s.
func (h *LuaHook) Apply(s Snapshot) (out Snapshot, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pagectx: lua panic: %v", r)
		}
	}()

	tbl := h.L.NewTable()
	for k, v := range fields(&s) {
		tbl.RawSetString(k, lua.LString(*v))
	}
	if err := h.L.CallByParam(lua.P{
		Fn:      h.L.GetGlobal("enrich"),
		NRet:    1,
		Protect: true,
	}, tbl); err != nil {
		return s, fmt.Errorf("pagectx: enrich: %w", err)
	}
	ret := h.L.Get(-1)
	h.L.Pop(1)

	out = s
	rt, ok := ret.(*lua.LTable)
	if !ok {
		return out, nil
	}
	for k, v := range fields(&out) {
		if lv, ok := rt.RawGetString(k).(lua.LString); ok {
			*v = string(lv)
		}
	}
	return out, nil
}

// Close releases the Lua state.
func (h *LuaHook) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.L.Close()
}

func fields(s *Snapshot) map[string]*string {
	return map[string]*string{
		"title":             &s.Title,
		"description":       &s.Description,
		"nearby_text":       &s.NearbyText,
		"input_label":       &s.InputLabel,
		"input_placeholder": &s.InputPlaceholder,
		"input_name":        &s.InputName,
		"input_type":        &s.InputType,
	}
}
