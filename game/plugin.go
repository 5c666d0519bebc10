package game

import (
	"context"

	"github.com/pthm-cable/drift/config"
)

// Plugin extends a container. Hooks are optional and discovered through the
// interfaces below.
type Plugin interface {
	ID() string
}

// PluginInitializer runs before particles are created on Start. An error
// aborts Start.
type PluginInitializer interface {
	Init(ctx context.Context) error
}

// PluginStarter runs once the container is started. An error aborts Start.
type PluginStarter interface {
	Start(ctx context.Context) error
}

type PluginPauser interface {
	Pause()
}

type PluginPlayer interface {
	Play()
}

type PluginStopper interface {
	Stop()
}

type PluginDestroyer interface {
	Destroy()
}

// ParticlesSetupHandler runs after the initial particles are created.
type ParticlesSetupHandler interface {
	ParticlesSetup()
}

// ClickModeHandler handles click modes the collection does not know.
// It reports whether the mode was handled.
type ClickModeHandler interface {
	HandleClickMode(mode string) bool
}

// PluginFactory creates plugin instances for containers that need them.
type PluginFactory interface {
	ID() string
	NeedsPlugin(opts *config.Resolved) bool
	New(c *Container) Plugin
}
