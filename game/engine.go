package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/systems"
)

// PathFactory builds a path generator for a new container.
type PathFactory func(seed int64) systems.PathGenerator

type pathFactoryEntry struct {
	key string
	new PathFactory
}

// Engine is the registry of plugin factories, shape drawers, path
// generators and active containers. It is not safe for concurrent use.
type Engine struct {
	scheduler     Scheduler
	factories     []PluginFactory
	drawers       map[string]renderer.ShapeDrawer
	pathFactories []pathFactoryEntry
	containers    []*Container
	events        eventBus
	loaded        int
}

// NewEngine creates an engine whose containers request frames from s.
// The built-in shapes and the noise path generator are registered.
func NewEngine(s Scheduler) *Engine {
	e := &Engine{
		scheduler: s,
		drawers:   renderer.DefaultDrawers(),
	}
	e.AddPathGenerator(systems.NoisePathKey, func(seed int64) systems.PathGenerator {
		return systems.NewNoisePath(seed)
	})
	return e
}

// AddPlugin registers a plugin factory. Factories are consulted in
// registration order; a duplicate id is rejected.
func (e *Engine) AddPlugin(f PluginFactory) bool {
	for _, existing := range e.factories {
		if existing.ID() == f.ID() {
			return false
		}
	}
	e.factories = append(e.factories, f)
	return true
}

// AddShape registers a drawer for a shape name.
func (e *Engine) AddShape(name string, d renderer.ShapeDrawer, override bool) bool {
	if _, ok := e.drawers[name]; ok && !override {
		return false
	}
	e.drawers[name] = d
	return true
}

// Drawer returns the drawer registered for a shape name.
func (e *Engine) Drawer(name string) (renderer.ShapeDrawer, bool) {
	d, ok := e.drawers[name]
	return d, ok
}

// AddPathGenerator registers a path generator built for every container
// loaded afterwards.
func (e *Engine) AddPathGenerator(key string, f PathFactory) bool {
	if key == systems.DefaultPathKey {
		return false
	}
	for _, p := range e.pathFactories {
		if p.key == key {
			return false
		}
	}
	e.pathFactories = append(e.pathFactories, pathFactoryEntry{key: key, new: f})
	return true
}

// LoadParams describes a container to load.
type LoadParams struct {
	// ID names the container; an existing container with the same ID is
	// destroyed and replaced. Empty IDs are generated.
	ID      string
	Surface Surface
	Options config.Options
}

// Load creates and starts a container. If Start fails the container is
// destroyed and the error returned.
func (e *Engine) Load(ctx context.Context, p LoadParams) (*Container, error) {
	e.loaded++
	id := p.ID
	if id == "" {
		id = fmt.Sprintf("container-%d", e.loaded)
	}
	if old := e.Get(id); old != nil {
		old.Destroy()
	}

	c := newContainer(e, id, p.Surface, p.Options)
	e.containers = append(e.containers, c)
	c.emit(EventBuilt)

	if err := c.Start(ctx); err != nil {
		c.Destroy()
		return nil, err
	}
	return c, nil
}

// Containers returns the active containers in load order.
func (e *Engine) Containers() []*Container {
	return slices.Clone(e.containers)
}

// Item returns the i-th active container, or nil.
func (e *Engine) Item(i int) *Container {
	if i < 0 || i >= len(e.containers) {
		return nil
	}
	return e.containers[i]
}

// Get returns the active container with the given ID, or nil.
func (e *Engine) Get(id string) *Container {
	for _, c := range e.containers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Refresh restarts every active container and returns the first error.
func (e *Engine) Refresh(ctx context.Context) error {
	var firstErr error
	for _, c := range e.Containers() {
		if err := c.Refresh(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Destroy destroys every active container.
func (e *Engine) Destroy() {
	for _, c := range e.Containers() {
		c.Destroy()
	}
}

// Subscribe registers fn for events of type t from every container and
// returns a function that removes it.
func (e *Engine) Subscribe(t EventType, fn func(Event)) func() {
	return e.events.subscribe(t, fn)
}

func (e *Engine) remove(c *Container) {
	if i := slices.Index(e.containers, c); i >= 0 {
		e.containers = slices.Delete(e.containers, i, i+1)
	}
}

// pluginsFor instantiates the plugins a container needs, in factory order.
func (e *Engine) pluginsFor(c *Container) []Plugin {
	var plugins []Plugin
	for _, f := range e.factories {
		if f.NeedsPlugin(c.actualOptions) {
			plugins = append(plugins, f.New(c))
		}
	}
	return plugins
}
