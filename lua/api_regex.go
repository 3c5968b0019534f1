package lua

import (
	"regexp"

	glua "github.com/yuin/gopher-lua"
)

const luaRegexTypeName = "Regex"

// registerRegexType registers the Regex userdata type.
func registerRegexType(L *glua.LState) {
	mt := L.NewTypeMetatable(luaRegexTypeName)
	L.SetField(mt, "__index", L.NewFunction(regexIndex))
}

// regexIndex handles method calls on Regex userdata.
func regexIndex(L *glua.LState) int {
	re := L.CheckUserData(1).Value.(*regexp.Regexp)

	switch L.CheckString(2) {
	case "match":
		// Works as re.match(text) and re:match(text).
		L.Push(L.NewFunction(func(L *glua.LState) int {
			L.Push(submatches(L, re, L.CheckString(L.GetTop())))
			return 1
		}))
		return 1
	case "pattern":
		L.Push(glua.LString(re.String()))
		return 1
	}
	return 0
}

// submatches returns the match and its groups as a Lua array, or nil.
func submatches(L *glua.LState, re *regexp.Regexp, text string) glua.LValue {
	matches := re.FindStringSubmatch(text)
	if matches == nil {
		return glua.LNil
	}
	tbl := L.NewTable()
	for i, m := range matches {
		tbl.RawSetInt(i+1, glua.LString(m))
	}
	return tbl
}

// compile returns the cached regexp for pattern.
func (e *Engine) compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := e.regexCache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	e.regexCache.Add(pattern, re)
	return re, nil
}

// registerRegexFuncs registers oefen.regex.*
func (e *Engine) registerRegexFuncs() {
	registerRegexType(e.L)

	regexTable := e.L.NewTable()
	e.L.SetField(e.oefenTable, "regex", regexTable)

	// oefen.regex.compile(pattern): Regex userdata, or nil and an error
	e.L.SetField(regexTable, "compile", e.L.NewFunction(func(L *glua.LState) int {
		re, err := e.compile(L.CheckString(1))
		if err != nil {
			L.Push(glua.LNil)
			L.Push(glua.LString(err.Error()))
			return 2
		}
		ud := L.NewUserData()
		ud.Value = re
		L.SetMetatable(ud, L.GetTypeMetatable(luaRegexTypeName))
		L.Push(ud)
		return 1
	}))

	// oefen.regex.match(pattern, text): captures table or nil
	e.L.SetField(regexTable, "match", e.L.NewFunction(func(L *glua.LState) int {
		re, err := e.compile(L.CheckString(1))
		if err != nil {
			L.Push(glua.LNil)
			L.Push(glua.LString(err.Error()))
			return 2
		}
		L.Push(submatches(L, re, L.CheckString(2)))
		return 1
	}))
}
