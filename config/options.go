// Package config provides option loading and resolution for a particle container.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/drift/vmath"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Options holds the raw, user-facing container options.
type Options struct {
	FPSLimit               float64             `yaml:"fps_limit"`
	Duration               float64             `yaml:"duration"` // seconds, 0 = unlimited
	AutoPlay               bool                `yaml:"auto_play"`
	PauseOnBlur            bool                `yaml:"pause_on_blur"`
	PauseOnOutsideViewport bool                `yaml:"pause_on_outside_viewport"`
	DetectRetina           bool                `yaml:"detect_retina"`
	Seed                   int64               `yaml:"seed"` // 0 = time-based
	Particles              ParticleOptions     `yaml:"particles"`
	Interactivity          InteractivityConfig `yaml:"interactivity"`
}

// ParticleOptions describes how particles are spawned and animated.
type ParticleOptions struct {
	Number  NumberConfig `yaml:"number"`
	Color   ColorConfig  `yaml:"color"`
	Opacity ValueConfig  `yaml:"opacity"`
	Size    ValueConfig  `yaml:"size"`
	Shape   ShapeConfig  `yaml:"shape"`
	Life    LifeConfig   `yaml:"life"`
	Move    MoveConfig   `yaml:"move"`
}

// NumberConfig holds population parameters.
type NumberConfig struct {
	Value   int           `yaml:"value"`
	Limit   int           `yaml:"limit"` // 0 = no cap
	Density DensityConfig `yaml:"density"`
}

// DensityConfig scales the population with the surface area.
// The reference area Width x Height holds exactly Number.Value particles.
type DensityConfig struct {
	Enable bool    `yaml:"enable"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ColorConfig holds the HSL color of a particle and its animation.
type ColorConfig struct {
	Hue        vmath.RangeValue `yaml:"hue"`        // degrees
	Saturation vmath.RangeValue `yaml:"saturation"` // percent
	Lightness  vmath.RangeValue `yaml:"lightness"`  // percent
	Animation  HSLAnimation     `yaml:"animation"`
}

// HSLAnimation holds one animation per color channel.
type HSLAnimation struct {
	H AnimationConfig `yaml:"h"`
	S AnimationConfig `yaml:"s"`
	L AnimationConfig `yaml:"l"`
}

// AnimationConfig drives a numeric value over time.
type AnimationConfig struct {
	Enable bool             `yaml:"enable"`
	Speed  vmath.RangeValue `yaml:"speed"`  // percent of the channel per reference frame x100
	Offset vmath.RangeValue `yaml:"offset"` // random jitter added every tick
	Sync   bool             `yaml:"sync"`   // all particles share one speed
	Decay  float64          `yaml:"decay"`  // velocity multiplier per tick is 1-decay
	Delay  vmath.RangeValue `yaml:"delay"`  // seconds before the animation starts
	Count  int              `yaml:"count"`  // loops before stopping, 0 = forever
	// Destroy selects whether reaching an end destroys the particle: none, min or max.
	Destroy    string `yaml:"destroy"`
	StartValue string `yaml:"start_value"` // min, max or random
}

// ValueConfig is an animated scalar such as opacity or size.
type ValueConfig struct {
	Value     vmath.RangeValue `yaml:"value"`
	Animation AnimationConfig  `yaml:"animation"`
}

// ShapeConfig selects the drawer used for particles.
type ShapeConfig struct {
	Type  []string `yaml:"type"`
	Sides int      `yaml:"sides"`
}

// LifeConfig controls spawn delay, lifetime and respawn count.
type LifeConfig struct {
	Count    int              `yaml:"count"`    // lives, 0 = unlimited
	Delay    vmath.RangeValue `yaml:"delay"`    // seconds of spawn grace period
	Duration vmath.RangeValue `yaml:"duration"` // seconds per life, 0 = unlimited
}

// MoveConfig controls particle movement.
type MoveConfig struct {
	Enable    bool             `yaml:"enable"`
	Speed     vmath.RangeValue `yaml:"speed"`
	Direction float64          `yaml:"direction"` // degrees, used when Random is false
	Random    bool             `yaml:"random"`    // random initial direction
	Drift     vmath.RangeValue `yaml:"drift"`
	Decay     float64          `yaml:"decay"`
	Size      bool             `yaml:"size"` // scale speed by relative size
	Gravity   GravityConfig    `yaml:"gravity"`
	OutMode   string           `yaml:"out_mode"` // none, bounce, out, destroy
	Path      PathConfig       `yaml:"path"`
	MaxSpeed  float64          `yaml:"max_speed"`
}

// GravityConfig adds a constant vertical acceleration.
type GravityConfig struct {
	Enable       bool    `yaml:"enable"`
	Acceleration float64 `yaml:"acceleration"`
	Inverse      bool    `yaml:"inverse"`
	MaxSpeed     float64 `yaml:"max_speed"`
}

// PathConfig selects a path generator for particle movement.
type PathConfig struct {
	Enable    bool             `yaml:"enable"`
	Generator string           `yaml:"generator"`
	Delay     vmath.RangeValue `yaml:"delay"` // seconds between generator samples
	Clamp     bool             `yaml:"clamp"`
}

// InteractivityConfig holds pointer interaction settings.
type InteractivityConfig struct {
	OnClick ClickConfig `yaml:"on_click"`
	Modes   ModesConfig `yaml:"modes"`
}

// ClickConfig lists the click modes dispatched on every click.
type ClickConfig struct {
	Enable bool     `yaml:"enable"`
	Modes  []string `yaml:"modes"`
}

// ModesConfig holds per-mode parameters.
type ModesConfig struct {
	Push    QuantityConfig `yaml:"push"`
	Remove  QuantityConfig `yaml:"remove"`
	Repulse RepulseConfig  `yaml:"repulse"`
	Bubble  BubbleConfig   `yaml:"bubble"`
}

// QuantityConfig is a particle count for push/remove.
type QuantityConfig struct {
	Quantity int `yaml:"quantity"`
}

// RepulseConfig pushes particles away from the interaction point.
type RepulseConfig struct {
	Distance float64 `yaml:"distance"`
	Speed    float64 `yaml:"speed"`
}

// BubbleConfig temporarily grows particles near the interaction point.
type BubbleConfig struct {
	Distance float64 `yaml:"distance"`
	Size     float64 `yaml:"size"`
	Opacity  float64 `yaml:"opacity"`
	Duration float64 `yaml:"duration"` // seconds
}

// Default returns the embedded default options.
func Default() Options {
	var o Options
	if err := yaml.Unmarshal(defaultsYAML, &o); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return o
}

// Load loads options from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (Options, error) {
	o := Default()
	if path == "" {
		return o, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := Merge(&o, data); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Merge unmarshals YAML data over o. Only fields present in data are overwritten.
func Merge(o *Options, data []byte) error {
	if err := yaml.Unmarshal(data, o); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

// Clone returns a deep copy of o.
func (o Options) Clone() Options {
	c := o
	c.Particles.Shape.Type = append([]string(nil), o.Particles.Shape.Type...)
	c.Interactivity.OnClick.Modes = append([]string(nil), o.Interactivity.OnClick.Modes...)
	return c
}

// WriteYAML writes the options to a YAML file.
func (o Options) WriteYAML(path string) error {
	data, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
