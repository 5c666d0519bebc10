package game

import "github.com/pthm-cable/drift/systems"

// pathRegistry holds a container's path generators in registration order.
// The default generator is always present.
type pathRegistry struct {
	keys []string
	gens map[string]systems.PathGenerator
}

func newPathRegistry() *pathRegistry {
	r := &pathRegistry{gens: make(map[string]systems.PathGenerator)}
	r.add(systems.DefaultPathKey, systems.DefaultPath{}, true)
	return r
}

// add registers g under key. An existing key is only replaced when override
// is set; add reports whether g was stored.
func (r *pathRegistry) add(key string, g systems.PathGenerator, override bool) bool {
	if g == nil {
		return false
	}
	if _, ok := r.gens[key]; ok {
		if !override {
			return false
		}
	} else {
		r.keys = append(r.keys, key)
	}
	r.gens[key] = g
	return true
}

// get returns the generator for key, falling back to the default one.
func (r *pathRegistry) get(key string) systems.PathGenerator {
	if g, ok := r.gens[key]; ok {
		return g
	}
	return r.gens[systems.DefaultPathKey]
}

func (r *pathRegistry) initAll() {
	for _, k := range r.keys {
		r.gens[k].Init()
	}
}

func (r *pathRegistry) updateAll() {
	for _, k := range r.keys {
		r.gens[k].Update()
	}
}
