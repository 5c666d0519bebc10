package game

import (
	"context"
	"math"
	"reflect"
	"slices"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/systems"
)

func TestContainerStartStop(t *testing.T) {
	s := NewLoopScheduler()
	e := NewEngine(s)
	c, surf := loadContainer(t, e, nil)

	if !c.Started() || c.Paused() {
		t.Fatalf("Started/Paused = %v/%v after Load", c.Started(), c.Paused())
	}
	if got := c.Particles().Count(); got != 80 {
		t.Errorf("Count = %d, want 80", got)
	}
	if s.Pending() != 1 {
		t.Errorf("Pending = %d, want 1 frame request", s.Pending())
	}

	c.Stop()
	if c.Started() || !c.Paused() {
		t.Error("container still running after Stop")
	}
	if c.Particles().Count() != 0 {
		t.Errorf("Count = %d after Stop", c.Particles().Count())
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d after Stop", s.Pending())
	}
	if surf.clears != 1 {
		t.Errorf("surface cleared %d times, want 1", surf.clears)
	}
	c.Stop()
	if surf.clears != 1 {
		t.Error("second Stop was not a no-op")
	}
}

func TestContainerRefreshReproducesParticles(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, _ := loadContainer(t, e, func(o *config.Options) {
		o.Particles.Number.Density = config.DensityConfig{Enable: true, Width: 800, Height: 600}
	})
	c.Resize(400, 300)

	resolved := *c.Options()
	count := c.Particles().Count()
	before := positions(c)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(*c.Options(), resolved) {
		t.Errorf("resolved options changed across Refresh:\n got %+v\nwant %+v", *c.Options(), resolved)
	}
	if got := c.Particles().Count(); got != count {
		t.Errorf("Count = %d after Refresh, want %d", got, count)
	}
	if after := positions(c); !slices.Equal(before, after) {
		t.Error("Refresh with a fixed seed produced different particles")
	}
}

func TestContainerResetRestoresInitialOptions(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, _ := loadContainer(t, e, nil)
	ctx := context.Background()

	changed := c.SourceOptions()
	changed.Particles.Number.Value = 3
	if err := c.SetOptions(ctx, changed); err != nil {
		t.Fatal(err)
	}
	if c.Particles().Count() != 3 {
		t.Fatalf("Count = %d after SetOptions, want 3", c.Particles().Count())
	}
	if err := c.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if c.Particles().Count() != 3 {
		t.Errorf("Refresh lost the new options: Count = %d", c.Particles().Count())
	}

	if err := c.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if c.Particles().Count() != 80 {
		t.Errorf("Count = %d after Reset, want 80", c.Particles().Count())
	}
}

func TestContainerStartHonorsCancelledContext(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, _ := loadContainer(t, e, nil)
	c.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Start(ctx); err == nil {
		t.Error("Start with a cancelled context succeeded")
	}
	if c.Started() {
		t.Error("container started with a cancelled context")
	}
}

func TestContainerDestroyedIsInert(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, surf := loadContainer(t, e, nil)
	c.Destroy()
	if surf.closes != 1 {
		t.Errorf("surface closed %d times, want 1", surf.closes)
	}

	var events []EventType
	c.Subscribe(EventStarted, func(ev Event) { events = append(events, ev.Type) })
	c.Subscribe(EventPlayed, func(ev Event) { events = append(events, ev.Type) })

	if err := c.Start(context.Background()); err != nil {
		t.Errorf("Start on destroyed container: %v", err)
	}
	c.Play(true)
	c.Pause()
	c.Click(10, 10)
	c.Destroy()

	if c.Started() || len(events) != 0 {
		t.Errorf("destroyed container reacted: started=%v events=%v", c.Started(), events)
	}
	if c.AddPath("custom", &fakePath{}, true) {
		t.Error("AddPath succeeded on destroyed container")
	}
	if surf.closes != 1 {
		t.Error("second Destroy closed the surface again")
	}
}

func TestContainerAddPath(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, _ := loadContainer(t, e, nil)

	if c.AddPath(systems.DefaultPathKey, &fakePath{}, false) {
		t.Error("AddPath replaced the default path without override")
	}

	p := &fakePath{}
	if !c.AddPath("custom", p, false) {
		t.Fatal("AddPath rejected a new key")
	}
	if p.inits != 1 {
		t.Errorf("path initialized %d times on a started container, want 1", p.inits)
	}
	if c.AddPath("custom", &fakePath{}, false) {
		t.Error("AddPath replaced a key without override")
	}
	if !c.AddPath("custom", &fakePath{}, true) {
		t.Error("AddPath with override was rejected")
	}
}

func TestContainerPluginLifecycle(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	p := &testPlugin{id: "p"}
	e.AddPlugin(&testFactory{plugin: p, needed: true})
	c, _ := loadContainer(t, e, func(o *config.Options) {
		o.Interactivity.OnClick.Modes = []string{config.ClickModePush, "trail"}
	})

	c.Click(400, 300)
	c.Pause()
	c.Destroy()

	want := []string{"init", "particles-setup", "start", "play", "pause", "stop", "destroy"}
	if !slices.Equal(p.calls, want) {
		t.Errorf("calls = %v, want %v", p.calls, want)
	}
	if !slices.Equal(p.modes, []string{"trail"}) {
		t.Errorf("plugin click modes = %v", p.modes)
	}
}

func TestContainerPauseAndPlay(t *testing.T) {
	s := NewLoopScheduler()
	e := NewEngine(s)
	c, _ := loadContainer(t, e, nil)
	events := recordEvents(e)

	c.Pause()
	c.Pause()
	if !c.Paused() || s.Pending() != 0 {
		t.Errorf("Paused/Pending = %v/%d after Pause", c.Paused(), s.Pending())
	}

	c.Play(false)
	if c.Paused() || s.Pending() != 1 {
		t.Errorf("Paused/Pending = %v/%d after Play", c.Paused(), s.Pending())
	}
	c.Play(false)
	if s.Pending() != 1 {
		t.Error("Play scheduled a second frame")
	}

	// Play on a running container announces nothing
	want := []EventType{EventPaused, EventPlayed}
	if !slices.Equal(*events, want) {
		t.Errorf("events = %v, want %v", *events, want)
	}
}

func TestContainerVisibility(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(o *config.Options)
		userPause  bool
		toggle     func(c *Container, hidden bool)
		wantHidden bool // paused while hidden
		wantAfter  bool // paused after becoming visible again
	}{
		{
			name:       "page hidden",
			toggle:     func(c *Container, hidden bool) { c.SetPageHidden(hidden) },
			wantHidden: true,
			wantAfter:  false,
		},
		{
			name:       "outside viewport",
			toggle:     func(c *Container, hidden bool) { c.SetInViewport(!hidden) },
			wantHidden: true,
			wantAfter:  false,
		},
		{
			name:       "user paused stays paused",
			userPause:  true,
			toggle:     func(c *Container, hidden bool) { c.SetPageHidden(hidden) },
			wantHidden: true,
			wantAfter:  true,
		},
		{
			name:       "pause on blur disabled",
			mutate:     func(o *config.Options) { o.PauseOnBlur = false },
			toggle:     func(c *Container, hidden bool) { c.SetPageHidden(hidden) },
			wantHidden: false,
			wantAfter:  false,
		},
		{
			name:       "auto play disabled",
			mutate:     func(o *config.Options) { o.AutoPlay = false },
			toggle:     func(c *Container, hidden bool) { c.SetPageHidden(hidden) },
			wantHidden: true,
			wantAfter:  true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewLoopScheduler()
			e := NewEngine(s)
			c, _ := loadContainer(t, e, tc.mutate)
			if tc.userPause {
				c.Pause()
			}

			tc.toggle(c, true)
			if c.Paused() != tc.wantHidden {
				t.Errorf("Paused while hidden = %v, want %v", c.Paused(), tc.wantHidden)
			}
			tc.toggle(c, false)
			if c.Paused() != tc.wantAfter {
				t.Errorf("Paused after showing = %v, want %v", c.Paused(), tc.wantAfter)
			}
			if wantPending := !tc.wantAfter; (s.Pending() == 1) != wantPending {
				t.Errorf("Pending = %d, want frame scheduled %v", s.Pending(), wantPending)
			}
		})
	}
}

func TestContainerRepeatedVisibilitySignals(t *testing.T) {
	s := NewLoopScheduler()
	e := NewEngine(s)
	c, _ := loadContainer(t, e, nil)
	start := positions(c)
	events := recordEvents(e)

	var now time.Duration
	for range 61 {
		c.SetInViewport(true)
		c.SetPageHidden(false)
		s.RunFrame(now)
		now += 16 * time.Millisecond
	}
	if slices.Equal(positions(c), start) {
		t.Error("particles did not move while the visible signal repeated")
	}
	if want := 60 * 16 * time.Millisecond; c.LifeTime() != want {
		t.Errorf("LifeTime = %v, want %v", c.LifeTime(), want)
	}
	if len(*events) != 0 {
		t.Errorf("events = %v, want none", *events)
	}

	c.SetInViewport(false)
	c.SetInViewport(false)
	c.SetInViewport(true)
	c.SetInViewport(true)
	want := []EventType{EventPaused, EventPlayed}
	if !slices.Equal(*events, want) {
		t.Errorf("events = %v, want %v", *events, want)
	}
	if c.Paused() || s.Pending() != 1 {
		t.Errorf("Paused/Pending = %v/%d after showing again", c.Paused(), s.Pending())
	}
}

func TestContainerAutoPlayDisabled(t *testing.T) {
	s := NewLoopScheduler()
	e := NewEngine(s)
	c, _ := loadContainer(t, e, func(o *config.Options) { o.AutoPlay = false })

	if !c.Started() || !c.Paused() || s.Pending() != 0 {
		t.Fatalf("Started/Paused/Pending = %v/%v/%d", c.Started(), c.Paused(), s.Pending())
	}
	c.Play(false)
	if c.Paused() || s.Pending() != 1 {
		t.Error("explicit Play did not start the loop")
	}
}

func TestContainerResizeReconcilesDensity(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, surf := loadContainer(t, e, func(o *config.Options) {
		o.Particles.Number.Density = config.DensityConfig{Enable: true, Width: 800, Height: 600}
	})
	if c.Particles().Count() != 80 {
		t.Fatalf("Count = %d, want 80", c.Particles().Count())
	}

	c.Resize(400, 300)
	if w, h := surf.Size(); w != 400 || h != 300 {
		t.Errorf("surface size = %vx%v", w, h)
	}
	if got := c.Particles().Count(); got != 20 {
		t.Errorf("Count = %d after shrink, want 20", got)
	}
	if c.Options().Width != 400 {
		t.Errorf("resolved width = %v, want 400", c.Options().Width)
	}

	c.Resize(800, 600)
	if got := c.Particles().Count(); got != 80 {
		t.Errorf("Count = %d after grow, want 80", got)
	}
}

func TestContainerClickModes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *config.Options)
		want   int
	}{
		{"push", func(o *config.Options) {}, 84},
		{"remove", func(o *config.Options) {
			o.Interactivity.OnClick.Modes = []string{config.ClickModeRemove}
		}, 78},
		{"push within limit", func(o *config.Options) { o.Particles.Number.Limit = 10 }, 10},
		{"disabled", func(o *config.Options) { o.Interactivity.OnClick.Enable = false }, 80},
		{"unknown mode", func(o *config.Options) {
			o.Interactivity.OnClick.Modes = []string{"nothing"}
		}, 80},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(NewLoopScheduler())
			c, _ := loadContainer(t, e, tc.mutate)
			c.Click(400, 300)
			if got := c.Particles().Count(); got != tc.want {
				t.Errorf("Count = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestContainerClickIgnoredAfterStop(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, _ := loadContainer(t, e, nil)
	c.Stop()
	c.Click(400, 300)
	if c.Particles().Count() != 0 {
		t.Error("click handled while input detached")
	}
}

// placeParticle spawns one particle at pos and refreshes the index.
func placeParticle(c *Container, pos r2.Vec) *components.Particle {
	ps := c.Particles()
	ps.Push(1, &pos)
	ps.rebuildIndex()
	var last *components.Particle
	for p := range ps.All() {
		last = p
	}
	return last
}

func TestContainerQueryPointScalesByPixelRatio(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	surf := newFakeSurface(800, 600, 2)
	opts := testOptions(func(o *config.Options) { o.Particles.Number.Value = 0 })
	c, err := e.Load(context.Background(), LoadParams{Surface: surf, Options: opts})
	if err != nil {
		t.Fatal(err)
	}
	p := placeParticle(c, r2.Vec{X: 200, Y: 100})

	tests := []struct {
		name   string
		x, y   float64
		radius float64
		want   int
	}{
		{"on the particle", 100, 50, 1, 1},
		{"radius scaled", 102, 50, 2, 1},
		{"outside", 110, 50, 1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []*components.Particle
			c.QueryPoint(tc.x, tc.y, tc.radius, func(ps []*components.Particle) { got = ps })
			if len(got) != tc.want {
				t.Fatalf("found %d particles, want %d", len(got), tc.want)
			}
			if tc.want == 1 && got[0] != p {
				t.Error("found the wrong particle")
			}
		})
	}
}

func TestContainerRepulseAndBubble(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		at    r2.Vec
		check func(t *testing.T, p *components.Particle)
	}{
		{
			name: "repulse",
			mode: config.ClickModeRepulse,
			at:   r2.Vec{X: 410, Y: 300},
			check: func(t *testing.T, p *components.Particle) {
				// (1 - (10/200)^4) * 100 clamps to the 50px step
				if p.Position.X != 460 || p.Position.Y != 300 {
					t.Errorf("position = %v, want (460, 300)", p.Position)
				}
			},
		},
		{
			name: "bubble",
			mode: config.ClickModeBubble,
			at:   r2.Vec{X: 400, Y: 300},
			check: func(t *testing.T, p *components.Particle) {
				if !p.Bubble.Active || math.Abs(p.Radius()-20) > 1e-9 || math.Abs(p.Alpha()-0.8) > 1e-9 {
					t.Errorf("bubble = %+v, radius %v alpha %v", p.Bubble, p.Radius(), p.Alpha())
				}
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(NewLoopScheduler())
			c, _ := loadContainer(t, e, func(o *config.Options) {
				o.Particles.Number.Value = 0
				o.Interactivity.OnClick.Modes = []string{tc.mode}
			})
			p := placeParticle(c, tc.at)
			c.Click(400, 300)
			tc.check(t, p)
		})
	}
}
