// Package game runs particle containers: the lifecycle state machine, the
// frame loop, the particle collection and the plugin and event contracts.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
)

// Container owns one particle simulation bound to a surface.
//
// Lifecycle: created, Start, running, Pause/Play, Stop, ready, and finally
// Destroy. Every operation on a destroyed container is a no-op.
// A Container is not safe for concurrent use.
type Container struct {
	ID string

	engine    *Engine
	surface   Surface
	scheduler Scheduler
	camera    *camera.Camera
	output    *telemetry.OutputManager

	particles *Particles
	frame     *FrameManager
	plugins   []Plugin
	drawers   map[string]renderer.ShapeDrawer
	paths     *pathRegistry
	events    eventBus

	seed int64
	rng  *rand.Rand

	initialOptions config.Options
	sourceOptions  config.Options
	actualOptions  *config.Resolved

	destroyed      bool
	started        bool
	paused         bool
	userPaused     bool
	pageHidden     bool
	outOfViewport  bool
	firstStart     bool
	inputAttached  bool
	frameScheduled bool
	frameHandle    FrameHandle

	lifeTime time.Duration
	duration time.Duration
}

func newContainer(e *Engine, id string, surface Surface, opts config.Options) *Container {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := &Container{
		ID:             id,
		engine:         e,
		surface:        surface,
		scheduler:      e.scheduler,
		drawers:        make(map[string]renderer.ShapeDrawer),
		paths:          newPathRegistry(),
		seed:           seed,
		rng:            rand.New(rand.NewSource(seed)),
		initialOptions: opts.Clone(),
		sourceOptions:  opts.Clone(),
		paused:         true,
		firstStart:     true,
	}
	for _, p := range e.pathFactories {
		c.paths.add(p.key, p.new(seed), true)
	}
	c.particles = newParticles(containerHost{c}, c.paths)
	c.frame = newFrameManager(c)
	return c
}

// containerHost exposes what updaters need from a container.
type containerHost struct {
	c *Container
}

func (h containerHost) Size() r2.Vec {
	if h.c.actualOptions == nil {
		return r2.Vec{}
	}
	return r2.Vec{X: h.c.actualOptions.Width, Y: h.c.actualOptions.Height}
}

func (h containerHost) Rand() *rand.Rand {
	return h.c.rng
}

func (h containerHost) PathGenerator(key string) systems.PathGenerator {
	return h.c.paths.get(key)
}

func (c *Container) emit(t EventType) {
	slog.Debug("container event", "container", c.ID, "event", string(t))
	e := Event{Type: t, Container: c}
	c.events.emit(e)
	c.engine.events.emit(e)
}

// Subscribe registers fn for events of type t from this container and
// returns a function that removes it.
func (c *Container) Subscribe(t EventType, fn func(Event)) func() {
	return c.events.subscribe(t, fn)
}

// surfaceMetrics returns the simulation size and pixel ratio.
func (c *Container) surfaceMetrics() (w, h, ratio float64) {
	if c.surface == nil {
		return 0, 0, 1
	}
	w, h = c.surface.Size()
	return w, h, c.surface.PixelRatio()
}

// Start initializes the surface, plugins and particles and starts playing.
// A plugin error aborts Start and leaves the container not started.
func (c *Container) Start(ctx context.Context) error {
	if c.destroyed || c.started {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if c.surface != nil {
		if err := c.surface.Init(); err != nil {
			return fmt.Errorf("container %s: initializing surface: %w", c.ID, err)
		}
	}
	w, h, ratio := c.surfaceMetrics()
	c.actualOptions = config.Resolve(c.sourceOptions, w, h, ratio)
	c.resolveDrawers()
	c.rng.Seed(c.seed)

	if cs, ok := c.surface.(cameraSurface); ok {
		c.camera = cs.Camera()
	} else {
		c.camera = camera.New(w/ratio, h/ratio, ratio)
	}

	c.particles.configure(c.actualOptions)
	c.lifeTime = 0
	c.duration = c.actualOptions.Duration
	c.frame.reset()

	c.plugins = c.engine.pluginsFor(c)
	c.paths.initAll()
	for _, p := range c.plugins {
		if init, ok := p.(PluginInitializer); ok {
			if err := init.Init(ctx); err != nil {
				c.plugins = nil
				return fmt.Errorf("container %s: initializing plugin %s: %w", c.ID, p.ID(), err)
			}
		}
	}
	c.emit(EventInit)

	c.particles.Init()
	c.emit(EventParticlesSetup)
	for _, p := range c.plugins {
		if h, ok := p.(ParticlesSetupHandler); ok {
			h.ParticlesSetup()
		}
	}

	c.started = true
	c.inputAttached = true
	for _, p := range c.plugins {
		if s, ok := p.(PluginStarter); ok {
			if err := s.Start(ctx); err != nil {
				c.started = false
				c.inputAttached = false
				c.particles.Clear()
				c.plugins = nil
				return fmt.Errorf("container %s: starting plugin %s: %w", c.ID, p.ID(), err)
			}
		}
	}

	slog.Debug("container started", "container", c.ID,
		"particles", c.particles.Count(), "width", w, "height", h)
	c.emit(EventStarted)
	c.Play(false)
	return nil
}

// resolveDrawers picks the drawer for every shape in use. Unknown shapes
// are drawn as circles.
func (c *Container) resolveDrawers() {
	clear(c.drawers)
	for _, shape := range c.actualOptions.Shapes() {
		d, ok := c.engine.Drawer(shape)
		if !ok {
			slog.Debug("unknown shape, drawing circles", "container", c.ID, "shape", shape)
			d = renderer.CircleDrawer{}
		}
		c.drawers[shape] = d
	}
}

// Stop detaches input, clears particles and the surface and stops plugins.
// The resolved options are kept as the source for the next Start.
func (c *Container) Stop() {
	if c.destroyed || !c.started {
		return
	}

	c.inputAttached = false
	c.cancelFrame()
	c.paused = true

	c.particles.Clear()
	if c.surface != nil {
		c.surface.Clear()
	}
	for _, p := range c.plugins {
		if s, ok := p.(PluginStopper); ok {
			s.Stop()
		}
	}
	c.plugins = nil

	c.sourceOptions = c.actualOptions.Options.Clone()
	c.firstStart = true
	c.userPaused = false
	c.started = false
	c.emit(EventStopped)
}

// Pause stops the frame loop until Play is called.
func (c *Container) Pause() {
	c.pause(true)
}

func (c *Container) pause(user bool) {
	if c.destroyed {
		return
	}
	c.cancelFrame()
	if user {
		c.userPaused = true
	}
	if c.paused {
		return
	}

	for _, p := range c.plugins {
		if pp, ok := p.(PluginPauser); ok {
			pp.Pause()
		}
	}
	c.paused = true
	c.emit(EventPaused)
}

// Play resumes the frame loop. A resume from pause, or force, starts with a
// zero delta frame and emits played. Without autoPlay the first Play after
// Start only consumes the start.
func (c *Container) Play(force bool) {
	if c.destroyed || !c.started {
		return
	}

	needsUpdate := c.paused || force
	if c.firstStart {
		c.firstStart = false
		if !c.actualOptions.Options.AutoPlay {
			c.userPaused = true
			return
		}
	}

	c.paused = false
	c.userPaused = false
	if needsUpdate {
		for _, p := range c.plugins {
			if pp, ok := p.(PluginPlayer); ok {
				pp.Play()
			}
		}
		c.frame.ForceZeroDelta()
		c.emit(EventPlayed)
	}
	c.draw()
}

// Refresh restarts the container with its current options.
func (c *Container) Refresh(ctx context.Context) error {
	if c.destroyed {
		return nil
	}
	c.Stop()
	return c.Start(ctx)
}

// Reset restarts the container with the options it was loaded with.
func (c *Container) Reset(ctx context.Context) error {
	if c.destroyed {
		return nil
	}
	c.Stop()
	c.sourceOptions = c.initialOptions.Clone()
	c.actualOptions = nil
	return c.Start(ctx)
}

// SetOptions restarts the container with new options.
func (c *Container) SetOptions(ctx context.Context, opts config.Options) error {
	if c.destroyed {
		return nil
	}
	c.Stop()
	c.sourceOptions = opts.Clone()
	return c.Start(ctx)
}

// Destroy stops the container, releases its resources and removes it from
// the engine.
func (c *Container) Destroy() {
	if c.destroyed {
		return
	}

	plugins := c.plugins
	c.Stop()

	c.particles.release()
	if c.surface != nil {
		if err := c.surface.Close(); err != nil {
			slog.Error("closing surface", "container", c.ID, "error", err)
		}
	}
	for _, d := range c.drawers {
		if ds, ok := d.(renderer.ShapeDestroyer); ok {
			ds.Destroy()
		}
	}
	for _, p := range plugins {
		if pd, ok := p.(PluginDestroyer); ok {
			pd.Destroy()
		}
	}

	c.destroyed = true
	c.engine.remove(c)
	c.emit(EventDestroyed)
}

// SetPageHidden pauses or resumes the container as the host page is hidden
// or shown. It is ignored unless pauseOnBlur is set.
func (c *Container) SetPageHidden(hidden bool) {
	if c.destroyed || !c.options().PauseOnBlur || c.pageHidden == hidden {
		return
	}
	c.pageHidden = hidden
	c.updateVisibility()
}

// SetInViewport pauses or resumes the container as it leaves or enters the
// viewport. It is ignored unless pauseOnOutsideViewport is set.
func (c *Container) SetInViewport(visible bool) {
	if c.destroyed || !c.options().PauseOnOutsideViewport || c.outOfViewport == !visible {
		return
	}
	c.outOfViewport = !visible
	c.updateVisibility()
}

func (c *Container) hidden() bool {
	return c.pageHidden || c.outOfViewport
}

// updateVisibility pauses a hidden container and resumes a visible one the
// user has not paused.
func (c *Container) updateVisibility() {
	if !c.started {
		return
	}
	if c.hidden() {
		c.pause(false)
	} else if c.paused && !c.userPaused {
		c.Play(true)
	}
}

// options returns the options in effect.
func (c *Container) options() config.Options {
	if c.actualOptions != nil {
		return c.actualOptions.Options
	}
	return c.sourceOptions
}

// draw schedules the next frame if the container is running and visible.
func (c *Container) draw() {
	if c.destroyed || !c.started || c.paused || c.hidden() || c.frameScheduled || c.scheduler == nil {
		return
	}
	c.frameHandle = c.scheduler.Request(c.frame.NextFrame)
	c.frameScheduled = true
}

func (c *Container) cancelFrame() {
	if c.frameScheduled {
		c.scheduler.Cancel(c.frameHandle)
		c.frameScheduled = false
	}
}

// render paints every visible particle onto the surface.
func (c *Container) render() {
	if c.surface == nil {
		return
	}
	c.surface.Draw(func(cv renderer.Canvas) {
		for p := range c.particles.All() {
			if p.Spawning {
				continue
			}
			renderer.DrawParticle(cv, c.drawers[p.Shape], p)
		}
	})
}

// Resize follows a surface resize given in screen pixels. Options are
// re-resolved and the population reconciled with the new area.
func (c *Container) Resize(width, height float64) {
	if c.destroyed {
		return
	}
	if c.surface != nil {
		c.surface.Resize(width, height)
	}
	if _, ok := c.surface.(cameraSurface); !ok && c.camera != nil {
		c.camera.Resize(width, height)
	}
	if !c.started {
		return
	}

	w, h, ratio := c.surfaceMetrics()
	c.actualOptions = config.Resolve(c.actualOptions.Options, w, h, ratio)
	c.duration = c.actualOptions.Duration
	c.particles.configure(c.actualOptions)
	c.particles.SetDensity()
}

// QueryPoint finds the particles within radius of a screen point and passes
// them to fn. Point and radius are scaled to simulation pixels. It does
// nothing while input is detached.
func (c *Container) QueryPoint(x, y, radius float64, fn func([]*components.Particle)) {
	if c.destroyed || !c.inputAttached || c.camera == nil {
		return
	}
	center := c.camera.ScreenToSim(r2.Vec{X: x, Y: y})
	fn(c.particles.QueryCircle(center, c.camera.ScreenToSimRadius(radius)))
}

// Click dispatches the configured click modes at a screen point. Modes the
// collection does not know are offered to plugins.
func (c *Container) Click(x, y float64) {
	if c.destroyed || !c.inputAttached || c.camera == nil {
		return
	}
	onClick := c.actualOptions.Interactivity.OnClick
	if !onClick.Enable {
		return
	}

	at := c.camera.ScreenToSim(r2.Vec{X: x, Y: y})
	for _, mode := range onClick.Modes {
		if c.particles.HandleClickMode(mode, at) {
			continue
		}
		for _, p := range c.plugins {
			if h, ok := p.(ClickModeHandler); ok && h.HandleClickMode(mode) {
				break
			}
		}
	}
}

// AddPath registers a path generator under key. An existing key is only
// replaced when override is set; AddPath reports whether gen was stored.
func (c *Container) AddPath(key string, gen systems.PathGenerator, override bool) bool {
	if c.destroyed || !c.paths.add(key, gen, override) {
		return false
	}
	if c.started {
		gen.Init()
	}
	return true
}

// Plugin returns the running plugin with the given id.
func (c *Container) Plugin(id string) (Plugin, bool) {
	for _, p := range c.plugins {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// SetOutput attaches CSV output for frame statistics.
func (c *Container) SetOutput(om *telemetry.OutputManager) {
	c.output = om
}

// Options returns the resolved options, or nil before the first Start.
func (c *Container) Options() *config.Resolved { return c.actualOptions }

// SourceOptions returns the options the next Start resolves.
func (c *Container) SourceOptions() config.Options { return c.sourceOptions.Clone() }

func (c *Container) Particles() *Particles   { return c.particles }
func (c *Container) Surface() Surface        { return c.surface }
func (c *Container) Camera() *camera.Camera  { return c.camera }
func (c *Container) Started() bool           { return c.started }
func (c *Container) Paused() bool            { return c.paused }
func (c *Container) Destroyed() bool         { return c.destroyed }
func (c *Container) LifeTime() time.Duration { return c.lifeTime }
func (c *Container) Frame() *FrameManager    { return c.frame }
