// Package sandbox is an interactive terminal view for tuning kill contexts.
// A State describes one synthetic kill; keys edit it and the view redraws
// the composed modifiers.
package sandbox

import (
	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/parameter"
	"github.com/lixenwraith/killctx/vmath"
)

// Sandbox step sizes
const (
	DistanceStep = 5.0
	HealthStep   = 10.0
	ChanceStep   = 0.25
)

// State is one editable synthetic kill
type State struct {
	Distance float64
	Health   float64
	Streak   int

	// DismemberChance is the engine chance fed through the damage accessor
	DismemberChance float64

	Crit      bool
	Headshot  bool
	Unaware   bool
	Crouching bool

	// Palette indexes parameter.Palettes; len(Palettes) selects the default palette
	Palette int
}

// DefaultState is a healthy close-range kill
func DefaultState() State {
	return State{
		Distance: 10,
		Health:   parameter.DemoMaxHealth,
		Streak:   1,
		Palette:  len(parameter.Palettes),
	}
}

// PaletteName returns the selected palette name
func (s State) PaletteName() string {
	if s.Palette >= 0 && s.Palette < len(parameter.Palettes) {
		return parameter.Palettes[s.Palette].Name
	}
	return parameter.DefaultPalette.Name
}

// Apply writes the selected palette into cfg
func (s State) Apply(cfg classifier.Config) classifier.Config {
	cfg.ColorGradingMode = s.PaletteName()
	return cfg
}

// Event builds a classifier event with the attacker at the origin
func (s State) Event() classifier.Event {
	return classifier.Event{
		Attacker: &actor{
			health:    s.Health,
			crouching: s.Crouching,
		},
		Target:          &actor{pos: vmath.Vec3F{X: s.Distance}},
		Damage:          damage{chance: s.DismemberChance, headshot: s.Headshot},
		IsCrit:          s.Crit,
		IsHeadshot:      s.Headshot,
		KillstreakCount: s.Streak,
		WasUnaware:      s.Unaware,
	}
}

// actor is a synthetic combatant
type actor struct {
	pos       vmath.Vec3F
	health    float64
	crouching bool
}

func (a *actor) Position() vmath.Vec3F { return a.pos }
func (a *actor) Health() float64       { return a.health }
func (a *actor) MaxHealth() float64    { return parameter.DemoMaxHealth }
func (a *actor) Crouching() bool       { return a.crouching }

// damage reports a head hit for headshots and a torso hit otherwise
type damage struct {
	chance   float64
	headshot bool
}

func (d damage) DismemberChance() float64 { return d.chance }

func (d damage) HitRegion() (classifier.BodyRegion, error) {
	if d.headshot {
		return classifier.RegionHead, nil
	}
	return classifier.RegionTorso, nil
}

// clamp bounds v to [lo, hi]
func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
