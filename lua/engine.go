// Package lua runs the user's init.lua. Scripts can tune capacities and
// default filters, print messages, normalize answers before they are
// compared and react to every checked answer.
package lua

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	glua "github.com/yuin/gopher-lua"

	"github.com/drake/oefen/drill"
)

const regexCacheSize = 100

var _ drill.Hooks = (*Engine)(nil)

// Engine wraps gopher-lua and manages the VM lifecycle.
type Engine struct {
	mu         sync.Mutex
	L          *glua.LState
	regexCache *lru.Cache[string, *regexp.Regexp]

	oefenTable *glua.LTable
	host       Host

	handlers   map[string][]*glua.LFunction
	normalizer *glua.LFunction
}

// NewEngine creates an Engine with the given Host. Call Init before use.
func NewEngine(host Host) *Engine {
	cache, _ := lru.New[string, *regexp.Regexp](regexCacheSize)
	return &Engine{
		regexCache: cache,
		host:       host,
		handlers:   make(map[string][]*glua.LFunction),
	}
}

// Init creates a fresh VM and registers the oefen API. Handlers from a
// previous VM are dropped.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.L != nil {
		e.L.Close()
	}
	e.L = glua.NewState()

	cache, _ := lru.New[string, *regexp.Regexp](regexCacheSize)
	e.regexCache = cache
	e.handlers = make(map[string][]*glua.LFunction)
	e.normalizer = nil

	e.registerAPIs()
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = nil
	e.normalizer = nil
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// DoString executes a chunk of Lua code. name appears in stack traces.
func (e *Engine) DoString(name, code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.L == nil {
		return errNotInitialized
	}
	fn, err := e.L.Load(strings.NewReader(code), name)
	if err != nil {
		return err
	}
	e.L.Push(fn)
	return e.L.PCall(0, 0, nil)
}

// DoFile executes a Lua file, letting it require modules next to it.
func (e *Engine) DoFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.L == nil {
		return errNotInitialized
	}

	absPath, err := filepath.Abs(expandTilde(path))
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	e.L.SetField(pkg, "path", glua.LString(dir+"/?.lua;"+oldPath))
	defer e.L.SetField(pkg, "path", glua.LString(oldPath))

	return e.L.DoFile(absPath)
}

// LoadInit runs path if it exists. A missing file is not an error.
func (e *Engine) LoadInit(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return e.DoFile(path)
}

// Normalize passes s through the script's normalizer, if one is set.
// A failing normalizer leaves s unchanged.
func (e *Engine) Normalize(s string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.L == nil || e.normalizer == nil {
		return s
	}

	if err := e.L.CallByParam(glua.P{
		Fn:      e.normalizer,
		NRet:    1,
		Protect: true,
	}, glua.LString(s)); err != nil {
		e.host.Print("normalize: " + err.Error())
		return s
	}
	ret := e.L.Get(-1)
	e.L.Pop(1)

	if str, ok := ret.(glua.LString); ok {
		return string(str)
	}
	return s
}

// OnAnswer calls every "answer" handler with a table describing r.
func (e *Engine) OnAnswer(r drill.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.L == nil {
		return
	}

	for _, fn := range e.handlers[eventAnswer] {
		tbl := e.resultTable(r)
		if err := e.L.CallByParam(glua.P{
			Fn:      fn,
			NRet:    0,
			Protect: true,
		}, tbl); err != nil {
			e.host.Print("on answer: " + err.Error())
		}
	}
}

func (e *Engine) resultTable(r drill.Result) *glua.LTable {
	tbl := e.L.NewTable()
	e.L.SetField(tbl, "id", glua.LString(r.ExerciseID))
	e.L.SetField(tbl, "category", glua.LString(r.Category))
	e.L.SetField(tbl, "answer", glua.LString(r.Answer))
	e.L.SetField(tbl, "expected", glua.LString(r.Expected))
	e.L.SetField(tbl, "correct", glua.LBool(r.Correct))
	e.L.SetField(tbl, "sentence", glua.LString(r.Sentence))
	e.L.SetField(tbl, "explanation", glua.LString(r.Explanation))
	e.L.SetField(tbl, "score", glua.LNumber(r.Score.Correct))
	e.L.SetField(tbl, "total", glua.LNumber(r.Score.Total))
	e.L.SetField(tbl, "accuracy", glua.LNumber(r.Score.Accuracy()))
	return tbl
}

func (e *Engine) registerAPIs() {
	e.oefenTable = e.L.NewTable()
	e.L.SetGlobal("oefen", e.oefenTable)

	e.registerCoreFuncs()
	e.registerRegexFuncs()
}

var errNotInitialized = errors.New("lua: engine not initialized")

// expandTilde expands ~ to the home directory.
func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
