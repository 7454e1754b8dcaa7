package classifier

import (
	"errors"

	"github.com/lixenwraith/killctx/vmath"
)

type fakeAttacker struct {
	pos       vmath.Vec3F
	health    float64
	maxHealth float64
	crouching bool
}

func (a *fakeAttacker) Position() vmath.Vec3F { return a.pos }
func (a *fakeAttacker) Health() float64       { return a.health }
func (a *fakeAttacker) MaxHealth() float64    { return a.maxHealth }
func (a *fakeAttacker) Crouching() bool       { return a.crouching }

type fakeTarget struct {
	pos vmath.Vec3F
}

func (t *fakeTarget) Position() vmath.Vec3F { return t.pos }

type fakeDamage struct {
	chance   float64
	region   BodyRegion
	err      error
	panicMsg string
	queried  int
}

func (d *fakeDamage) DismemberChance() float64 { return d.chance }

func (d *fakeDamage) HitRegion() (BodyRegion, error) {
	d.queried++
	if d.panicMsg != "" {
		panic(d.panicMsg)
	}
	return d.region, d.err
}

// panickyCroucher is an attacker whose crouch accessor fails
type panickyCroucher struct {
	*fakeAttacker
}

func (panickyCroucher) Crouching() bool { panic("animation state unavailable") }

type panickyTarget struct{}

func (panickyTarget) Position() vmath.Vec3F { panic("entity despawned") }

var errRegionUnavailable = errors.New("region unavailable")

// healthy returns an attacker at full health at the origin
func healthy() *fakeAttacker {
	return &fakeAttacker{health: 100, maxHealth: 100}
}

// at returns a target dist meters along X
func at(dist float64) *fakeTarget {
	return &fakeTarget{pos: vmath.Vec3F{X: dist}}
}

func vmath3(x, y, z float64) vmath.Vec3F {
	return vmath.Vec3F{X: x, Y: y, Z: z}
}
