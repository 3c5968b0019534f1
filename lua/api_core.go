package lua

import (
	"strings"

	glua "github.com/yuin/gopher-lua"
)

const eventAnswer = "answer"

// registerCoreFuncs registers the oefen.* functions.
func (e *Engine) registerCoreFuncs() {
	// oefen.print(...): show a message, arguments joined by spaces
	e.L.SetField(e.oefenTable, "print", e.L.NewFunction(func(L *glua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		e.host.Print(strings.Join(parts, " "))
		return 0
	}))

	// oefen.capacity(category, n): set the repetition window of a category
	e.L.SetField(e.oefenTable, "capacity", e.L.NewFunction(func(L *glua.LState) int {
		category := L.CheckString(1)
		n := L.CheckInt(2)
		if n < 1 {
			L.ArgError(2, "capacity must be positive")
			return 0
		}
		e.host.SetCapacity(category, n)
		return 0
	}))

	// oefen.default_filter(kind, dimension, {values}): replace default selections
	e.L.SetField(e.oefenTable, "default_filter", e.L.NewFunction(func(L *glua.LState) int {
		kind := L.CheckString(1)
		dim := L.CheckString(2)
		tbl := L.CheckTable(3)

		values := make([]string, 0, tbl.Len())
		for i := 1; i <= tbl.Len(); i++ {
			values = append(values, tbl.RawGetInt(i).String())
		}
		e.host.SetDefaultFilter(kind, dim, values)
		return 0
	}))

	// oefen.on(event, fn): register an event handler
	e.L.SetField(e.oefenTable, "on", e.L.NewFunction(func(L *glua.LState) int {
		event := L.CheckString(1)
		fn := L.CheckFunction(2)
		if event != eventAnswer {
			L.ArgError(1, "unknown event: "+event)
			return 0
		}
		e.handlers[event] = append(e.handlers[event], fn)
		return 0
	}))

	// oefen.normalize(fn): set the answer normalizer, nil clears it
	e.L.SetField(e.oefenTable, "normalize", e.L.NewFunction(func(L *glua.LState) int {
		if L.Get(1) == glua.LNil {
			e.normalizer = nil
			return 0
		}
		e.normalizer = L.CheckFunction(1)
		return 0
	}))
}
