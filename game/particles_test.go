package game

import (
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/vmath"
)

func TestParticlesZeroDeltaLeavesState(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, _ := loadContainer(t, e, nil)
	p := &fakePath{}
	c.AddPath("custom", p, false)
	before := positions(c)

	c.Particles().Update(systems.NewDelta(0))
	c.Particles().Update(systems.NewDelta(-time.Second))
	if p.updates != 0 {
		t.Errorf("paths updated %d times on invalid deltas", p.updates)
	}
	after := positions(c)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("particle moved on an invalid delta")
		}
	}

	c.Particles().Update(systems.NewDelta(16 * time.Millisecond))
	if p.updates != 1 {
		t.Errorf("paths updated %d times, want 1", p.updates)
	}
}

func TestParticlesRemoveQuantityOldestFirst(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, _ := loadContainer(t, e, func(o *config.Options) { o.Particles.Number.Value = 5 })
	ps := c.Particles()

	if n := ps.RemoveQuantity(2); n != 2 {
		t.Errorf("removed %d, want 2", n)
	}
	var ids []uint64
	ps.Each(func(p *components.Particle) { ids = append(ids, p.ID) })
	if len(ids) != 3 || ids[0] != 3 {
		t.Errorf("remaining ids = %v, want [3 4 5]", ids)
	}
	if n := ps.RemoveQuantity(10); n != 3 || ps.Count() != 0 {
		t.Errorf("removed %d, Count %d", n, ps.Count())
	}
	if n := ps.RemoveQuantity(-1); n != 0 {
		t.Errorf("negative quantity removed %d", n)
	}
}

func TestParticlesDestroyedRemovedAfterTick(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, _ := loadContainer(t, e, func(o *config.Options) {
		o.Particles.Number.Value = 0
		o.Particles.Move.Enable = false
	})
	ps := c.Particles()
	doomed := placeParticle(c, r2.Vec{X: 100, Y: 100})
	placeParticle(c, r2.Vec{X: 102, Y: 100})

	doomed.Destroy()
	if ps.Count() != 1 {
		t.Errorf("Count = %d, want destroyed particle excluded", ps.Count())
	}
	if got := ps.QueryCircle(r2.Vec{X: 100, Y: 100}, 5); len(got) != 1 || got[0] == doomed {
		t.Errorf("QueryCircle returned %d particles including destroyed", len(got))
	}

	ps.Update(systems.NewDelta(16 * time.Millisecond))
	if len(ps.order) != 1 {
		t.Errorf("%d entities left after tick, want 1", len(ps.order))
	}
	if got := ps.QueryCircle(r2.Vec{X: 100, Y: 100}, 5); len(got) != 1 {
		t.Errorf("index lost the surviving particle: %d found", len(got))
	}
}

func TestParticlesPushAtPosition(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, _ := loadContainer(t, e, func(o *config.Options) { o.Particles.Number.Value = 0 })
	ps := c.Particles()

	at := r2.Vec{X: 10, Y: 20}
	if n := ps.Push(3, &at); n != 3 {
		t.Fatalf("Push = %d, want 3", n)
	}
	ps.Each(func(p *components.Particle) {
		if p.Position != at || p.InitialPosition != at {
			t.Errorf("particle at %v, want %v", p.Position, at)
		}
		if p.Options != &c.Options().Particles {
			t.Error("particle does not point at the resolved options")
		}
	})
	if n := ps.Push(0, nil); n != 0 {
		t.Errorf("Push(0) = %d", n)
	}
}

func TestParticlesShapesFromOptions(t *testing.T) {
	e := NewEngine(NewLoopScheduler())
	c, _ := loadContainer(t, e, func(o *config.Options) {
		o.Particles.Shape.Type = []string{"square", "blob"}
	})

	seen := map[string]bool{}
	c.Particles().Each(func(p *components.Particle) { seen[p.Shape] = true })
	if !seen["square"] || !seen["blob"] || len(seen) != 2 {
		t.Errorf("shapes = %v", seen)
	}
	// Unknown shapes are drawn as circles
	if c.drawers["blob"] == nil {
		t.Error("no fallback drawer for an unknown shape")
	}
}

func TestParticlesDestroyedByLifeSkipsPipeline(t *testing.T) {
	tests := []struct {
		name          string
		count         int
		wantDestroyed bool
	}{
		{"last life ends", 1, true},
		{"unlimited lives", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(NewLoopScheduler())
			c, _ := loadContainer(t, e, func(o *config.Options) {
				o.Particles.Number.Value = 3
				o.Particles.Life = config.LifeConfig{Count: tc.count, Duration: vmath.Fixed(0.01)}
			})
			ps := c.Particles()
			d := systems.NewDelta(100 * time.Millisecond)

			var p components.Particle
			for live := range ps.All() {
				p = *live
				break
			}
			if !p.Color.H.Enable || vmath.Length(p.Velocity) == 0 {
				t.Fatalf("particle would not animate: hue=%+v velocity=%v", p.Color.H, p.Velocity)
			}
			hue, pos := p.Color.H.Value, p.Position

			ps.updateParticle(&p, d)
			if p.Destroyed != tc.wantDestroyed {
				t.Fatalf("Destroyed = %v, want %v", p.Destroyed, tc.wantDestroyed)
			}
			unchanged := p.Color.H.Value == hue && p.Position == pos
			if unchanged != tc.wantDestroyed {
				t.Errorf("hue %v -> %v, position %v -> %v", hue, p.Color.H.Value, pos, p.Position)
			}

			ps.Update(d)
			wantCount := 3
			if tc.wantDestroyed {
				wantCount = 0
			}
			if got := ps.Count(); got != wantCount {
				t.Errorf("Count = %d after tick, want %d", got, wantCount)
			}
		})
	}
}
