package game

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/systems"
)

var errBoom = errors.New("boom")

// fakeSurface records calls and reports a fixed simulation size.
type fakeSurface struct {
	w, h, ratio float64
	initErr     error

	inits, clears, draws, closes int
}

func newFakeSurface(w, h, ratio float64) *fakeSurface {
	return &fakeSurface{w: w, h: h, ratio: ratio}
}

func (s *fakeSurface) Init() error {
	s.inits++
	return s.initErr
}

func (s *fakeSurface) Resize(width, height float64) {
	s.w = width * s.ratio
	s.h = height * s.ratio
}

func (s *fakeSurface) Size() (float64, float64) { return s.w, s.h }
func (s *fakeSurface) PixelRatio() float64      { return s.ratio }
func (s *fakeSurface) Clear()                   { s.clears++ }
func (s *fakeSurface) Close() error             { s.closes++; return nil }

func (s *fakeSurface) Draw(fn func(renderer.Canvas)) {
	s.draws++
	fn(nopCanvas{})
}

type nopCanvas struct{}

func (nopCanvas) FillCircle(r2.Vec, float64, color.NRGBA) {}
func (nopCanvas) FillPolygon([]r2.Vec, color.NRGBA)       {}

// fakePath counts lifecycle calls and never changes velocity.
type fakePath struct {
	inits, updates int
}

func (p *fakePath) Generate(*components.Particle, systems.Delta) r2.Vec { return r2.Vec{} }
func (p *fakePath) Init()                                               { p.inits++ }
func (p *fakePath) Update()                                             { p.updates++ }

// testPlugin records the hooks it receives.
type testPlugin struct {
	id       string
	initErr  error
	startErr error
	calls    []string
	modes    []string
}

func (p *testPlugin) ID() string { return p.id }

func (p *testPlugin) Init(context.Context) error {
	p.calls = append(p.calls, "init")
	return p.initErr
}

func (p *testPlugin) Start(context.Context) error {
	p.calls = append(p.calls, "start")
	return p.startErr
}

func (p *testPlugin) ParticlesSetup() { p.calls = append(p.calls, "particles-setup") }
func (p *testPlugin) Pause()          { p.calls = append(p.calls, "pause") }
func (p *testPlugin) Play()           { p.calls = append(p.calls, "play") }
func (p *testPlugin) Stop()           { p.calls = append(p.calls, "stop") }
func (p *testPlugin) Destroy()        { p.calls = append(p.calls, "destroy") }

func (p *testPlugin) HandleClickMode(mode string) bool {
	if mode != "trail" {
		return false
	}
	p.modes = append(p.modes, mode)
	return true
}

// testFactory hands out a single plugin instance.
type testFactory struct {
	plugin *testPlugin
	needed bool
}

func (f *testFactory) ID() string                        { return f.plugin.id }
func (f *testFactory) NeedsPlugin(*config.Resolved) bool { return f.needed }
func (f *testFactory) New(*Container) Plugin             { return f.plugin }

// testOptions returns deterministic default options.
func testOptions(mutate func(o *config.Options)) config.Options {
	o := config.Default()
	o.Seed = 1
	o.FPSLimit = 0
	o.DetectRetina = true
	if mutate != nil {
		mutate(&o)
	}
	return o
}

// loadContainer loads a container on an 800x600 surface.
func loadContainer(t *testing.T, e *Engine, mutate func(o *config.Options)) (*Container, *fakeSurface) {
	t.Helper()
	s := newFakeSurface(800, 600, 1)
	c, err := e.Load(context.Background(), LoadParams{Surface: s, Options: testOptions(mutate)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c, s
}

func positions(c *Container) []r2.Vec {
	var out []r2.Vec
	for p := range c.Particles().All() {
		out = append(out, p.Position)
	}
	return out
}

// recordEvents subscribes to every event type on the engine.
func recordEvents(e *Engine) *[]EventType {
	var got []EventType
	for _, t := range []EventType{
		EventBuilt, EventInit, EventParticlesSetup, EventStarted,
		EventPaused, EventPlayed, EventStopped, EventDestroyed,
	} {
		e.Subscribe(t, func(ev Event) { got = append(got, ev.Type) })
	}
	return &got
}
