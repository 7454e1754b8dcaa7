package demo

import (
	"errors"

	"github.com/golang/geo/r3"
	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs/common"
	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs/events"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/parameter"
	"github.com/lixenwraith/killctx/vmath"
)

var errNoHitGroup = errors.New("no damage recorded for victim")

// combatant is a frozen view of a player at kill time
type combatant struct {
	id       int
	name     string
	pos      vmath.Vec3F
	health   float64
	crouched bool
}

func (c *combatant) Position() vmath.Vec3F { return c.pos }
func (c *combatant) Health() float64       { return c.health }
func (c *combatant) MaxHealth() float64    { return parameter.DemoMaxHealth }
func (c *combatant) Crouching() bool       { return c.crouched }

// snapshot copies what classification needs from a live player
func snapshot(p *common.Player) *combatant {
	if p == nil {
		return nil
	}
	return &combatant{
		id:       p.UserID,
		name:     p.Name,
		pos:      toMeters(p.Position()),
		health:   float64(p.Health()),
		crouched: p.IsDucking(),
	}
}

// toMeters converts a world position in engine units
func toMeters(v r3.Vector) vmath.Vec3F {
	return vmath.V3FScale(vmath.V3FFromR3(v), parameter.DemoUnitMeters)
}

// hitDamage carries the last recorded hit group; demos have no dismember chance
type hitDamage struct {
	group events.HitGroup
	known bool
}

func (h hitDamage) DismemberChance() float64 { return 0 }

func (h hitDamage) HitRegion() (classifier.BodyRegion, error) {
	if !h.known {
		return classifier.RegionNone, errNoHitGroup
	}
	return regionOf(h.group), nil
}

// regionOf maps engine hit groups onto body regions
func regionOf(g events.HitGroup) classifier.BodyRegion {
	switch g {
	case events.HitGroupHead:
		return classifier.RegionHead
	case events.HitGroupChest, events.HitGroupStomach:
		return classifier.RegionTorso
	case events.HitGroupLeftArm:
		return classifier.RegionLeftArm
	case events.HitGroupRightArm:
		return classifier.RegionRightArm
	case events.HitGroupLeftLeg:
		return classifier.RegionLeftLeg
	case events.HitGroupRightLeg:
		return classifier.RegionRightLeg
	default:
		return classifier.RegionNone
	}
}
