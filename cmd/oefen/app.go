package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/drake/oefen/catalog"
	"github.com/drake/oefen/config"
	"github.com/drake/oefen/drill"
	"github.com/drake/oefen/filters"
	"github.com/drake/oefen/history"
	"github.com/drake/oefen/kv"
	"github.com/drake/oefen/lua"
	"github.com/drake/oefen/ui"
)

var _ lua.Host = (*app)(nil)

// app wires the store, catalog, filters and scripting for one command.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	store   kv.StoreCloser
	filters *filters.Manager
	catalog *catalog.Catalog
	engine  *lua.Engine
	notes   *ui.Notes
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	if log == nil {
		log = zap.NewNop()
	}
	store, err := kv.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		filters: filters.NewManager(store, log),
		catalog: catalog.New(cfg.DataDir),
		notes:   &ui.Notes{},
	}

	a.engine = lua.NewEngine(a)
	if err := a.engine.Init(); err != nil {
		store.Close()
		return nil, err
	}
	if err := a.engine.LoadInit(config.InitFile()); err != nil {
		log.Warn("error loading init.lua", zap.Error(err))
		a.notes.Print("init.lua: " + err.Error())
	}
	return a, nil
}

func (a *app) Close() {
	a.engine.Close()
	if err := a.store.Close(); err != nil {
		a.log.Warn("error closing store", zap.Error(err))
	}
}

// Print implements lua.Host.
func (a *app) Print(text string) { a.notes.Print(text) }

// SetCapacity implements lua.Host.
func (a *app) SetCapacity(category string, n int) { a.cfg.SetCapacity(category, n) }

// SetDefaultFilter implements lua.Host.
func (a *app) SetDefaultFilter(kind, dimension string, values []string) {
	a.filters.SetDefault(kind, dimension, values)
}

func (a *app) history(category string) (*history.History, error) {
	cat, ok := catalog.Lookup(category)
	if !ok {
		return nil, unknownCategory(category)
	}
	return history.New(a.store, category, a.capacity(cat), history.WithLogger(a.log))
}

// capacity is the repetition window of cat after config and init.lua.
func (a *app) capacity(cat catalog.Category) int {
	return a.cfg.CapacityFor(cat.Name, cat.Capacity)
}

func (a *app) session(category string) (*drill.Session, error) {
	h, err := a.history(category)
	if err != nil {
		return nil, err
	}
	exercises, err := a.catalog.Exercises(category)
	if err != nil {
		return nil, err
	}
	return drill.New(drill.Config{
		Category:  category,
		Exercises: exercises,
		History:   h,
		Filters:   a.filters,
		Hooks:     a.engine,
		Logger:    a.log,
	})
}

func unknownCategory(name string) error {
	return fmt.Errorf("unknown category %q (see: oefen categories)", name)
}
