package game

import (
	"iter"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
)

// Particles is the particle collection of a container. Particles are stored
// as components of an ark world; the spatial index refers to them by entity
// and is rebuilt at the end of every tick.
type Particles struct {
	host         systems.Host
	paths        *pathRegistry
	updaters     []systems.Updater
	initializers []systems.ParticleInitializer
	perf         *telemetry.PerfCollector

	world  *ecs.World
	mapper *ecs.Map1[components.Particle]
	filter *ecs.Filter1[components.Particle]

	// order holds live entities oldest first
	order   []ecs.Entity
	index   *systems.QuadTree[ecs.Entity]
	bounds  r2.Box
	scratch []ecs.Entity
	nextID  uint64

	opts   *config.Resolved
	shapes []string
}

func newParticles(h systems.Host, paths *pathRegistry) *Particles {
	world := ecs.NewWorld()
	ps := &Particles{
		host:     h,
		paths:    paths,
		updaters: systems.NewPipeline(h),
		world:    world,
		mapper:   ecs.NewMap1[components.Particle](world),
		filter:   ecs.NewFilter1[components.Particle](world),
		index:    systems.NewQuadTree[ecs.Entity](r2.Box{}, systems.DefaultQuadCapacity),
	}
	for _, u := range ps.updaters {
		if init, ok := u.(systems.ParticleInitializer); ok {
			ps.initializers = append(ps.initializers, init)
		}
	}
	return ps
}

// configure points the collection at a resolved snapshot. Live particles
// are re-pointed at the new particle options.
func (ps *Particles) configure(opts *config.Resolved) {
	ps.opts = opts
	ps.shapes = opts.Shapes()
	ps.bounds = r2.Box{Max: r2.Vec{X: opts.Width, Y: opts.Height}}
	for _, e := range ps.order {
		ps.mapper.Get(e).Options = &opts.Particles
	}
}

// Init clears the collection and spawns the target population.
func (ps *Particles) Init() {
	ps.Clear()
	if ps.opts == nil {
		return
	}
	ps.Push(ps.opts.TargetCount, nil)
	ps.rebuildIndex()
}

// SetDensity spawns the shortfall to the target population or marks the
// oldest excess particles destroyed; they are removed on the next tick.
func (ps *Particles) SetDensity() {
	if ps.opts == nil {
		return
	}
	target := ps.opts.TargetCount
	count := ps.Count()
	if count < target {
		ps.Push(target-count, nil)
		return
	}

	excess := count - target
	for _, e := range ps.order {
		if excess == 0 {
			break
		}
		if p := ps.mapper.Get(e); !p.Destroyed {
			p.Destroy()
			excess--
		}
	}
}

// Update advances every particle by d. Ticks with an invalid delta leave
// all state untouched.
func (ps *Particles) Update(d systems.Delta) {
	if !d.Valid() {
		return
	}

	ps.perf.StartPhase(telemetry.PhasePaths)
	ps.paths.updateAll()

	ps.perf.StartPhase(telemetry.PhaseUpdate)
	query := ps.filter.Query()
	for query.Next() {
		ps.updateParticle(query.Get(), d)
	}

	// Removal must happen after the query completes
	ps.perf.StartPhase(telemetry.PhaseCleanup)
	ps.removeDestroyed()

	ps.perf.StartPhase(telemetry.PhaseIndex)
	ps.rebuildIndex()
}

// updateParticle runs the updater pipeline on p. A particle destroyed by
// an updater skips the rest of the pipeline.
func (ps *Particles) updateParticle(p *components.Particle, d systems.Delta) {
	ageBubble(p, d)
	for _, u := range ps.updaters {
		if p.Destroyed {
			return
		}
		if u.IsEnabled(p) {
			u.Update(p, d)
		}
	}
}

// Push spawns n particles, at the given position or at random positions
// when at is nil. With a population limit the oldest particles make room.
// It returns the number spawned.
func (ps *Particles) Push(n int, at *r2.Vec) int {
	if ps.opts == nil || n <= 0 {
		return 0
	}
	if limit := ps.opts.Limit; limit > 0 {
		n = min(n, limit)
		if over := len(ps.order) + n - limit; over > 0 {
			ps.RemoveQuantity(over)
		}
	}
	for range n {
		ps.spawn(at)
	}
	return n
}

func (ps *Particles) spawn(at *r2.Vec) {
	rng := ps.host.Rand()
	pos := r2.Vec{X: rng.Float64() * ps.opts.Width, Y: rng.Float64() * ps.opts.Height}
	if at != nil {
		pos = *at
	}

	ps.nextID++
	p := components.Particle{
		ID:              ps.nextID,
		Position:        pos,
		InitialPosition: pos,
		Sides:           ps.opts.Particles.Shape.Sides,
		Options:         &ps.opts.Particles,
	}
	if len(ps.shapes) > 0 {
		p.Shape = ps.shapes[rng.Intn(len(ps.shapes))]
	}
	for _, init := range ps.initializers {
		init.Init(&p)
	}

	ps.order = append(ps.order, ps.mapper.NewEntity(&p))
}

// RemoveQuantity removes up to n of the oldest particles immediately and
// returns how many were removed.
func (ps *Particles) RemoveQuantity(n int) int {
	n = min(max(n, 0), len(ps.order))
	for _, e := range ps.order[:n] {
		ps.world.RemoveEntity(e)
	}
	ps.order = append(ps.order[:0], ps.order[n:]...)
	return n
}

func (ps *Particles) removeDestroyed() {
	kept := ps.order[:0]
	for _, e := range ps.order {
		if ps.mapper.Get(e).Destroyed {
			ps.world.RemoveEntity(e)
			continue
		}
		kept = append(kept, e)
	}
	ps.order = kept
}

// rebuildIndex re-inserts every particle. The root covers the surface and
// every particle position so no particle is left out of queries.
func (ps *Particles) rebuildIndex() {
	ps.index.Reset(systems.BoundsOf(ps.bounds, ps.positions()))
	for _, e := range ps.order {
		ps.index.Insert(ps.mapper.Get(e).Position, e)
	}
}

func (ps *Particles) positions() iter.Seq[r2.Vec] {
	return func(yield func(r2.Vec) bool) {
		for _, e := range ps.order {
			if !yield(ps.mapper.Get(e).Position) {
				return
			}
		}
	}
}

// Count returns the number of particles not marked destroyed.
func (ps *Particles) Count() int {
	n := 0
	for _, e := range ps.order {
		if !ps.mapper.Get(e).Destroyed {
			n++
		}
	}
	return n
}

// All yields the particles not marked destroyed, oldest first.
func (ps *Particles) All() iter.Seq[*components.Particle] {
	return func(yield func(*components.Particle) bool) {
		for _, e := range ps.order {
			p := ps.mapper.Get(e)
			if p.Destroyed {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Each calls fn for every particle not marked destroyed, oldest first.
func (ps *Particles) Each(fn func(p *components.Particle)) {
	for p := range ps.All() {
		fn(p)
	}
}

// QueryCircle returns the live particles within radius of center, as of
// the last index rebuild.
func (ps *Particles) QueryCircle(center r2.Vec, radius float64) []*components.Particle {
	ps.scratch = ps.index.QueryCircleInto(ps.scratch[:0], center, radius)
	var out []*components.Particle
	for _, e := range ps.scratch {
		if !ps.world.Alive(e) {
			continue
		}
		if p := ps.mapper.Get(e); !p.Destroyed {
			out = append(out, p)
		}
	}
	return out
}

// Clear removes every particle and resets the index to the surface bounds.
func (ps *Particles) Clear() {
	for _, e := range ps.order {
		ps.world.RemoveEntity(e)
	}
	ps.order = ps.order[:0]
	ps.index.Reset(ps.bounds)
}

// release drops every particle and the index storage.
func (ps *Particles) release() {
	ps.Clear()
	ps.order = nil
	ps.scratch = nil
	ps.index = systems.NewQuadTree[ecs.Entity](r2.Box{}, systems.DefaultQuadCapacity)
}
