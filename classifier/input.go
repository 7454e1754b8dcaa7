package classifier

import (
	"reflect"

	"github.com/lixenwraith/killctx/vmath"
)

// Attacker is the read-only view of the killer
type Attacker interface {
	Position() vmath.Vec3F
	Health() float64
	MaxHealth() float64
}

// Croucher is optionally implemented by an Attacker
// Crouch state is logged for diagnostics and never gates the sneak context
type Croucher interface {
	Crouching() bool
}

// Target is the read-only view of the victim
type Target interface {
	Position() vmath.Vec3F
}

// BodyRegion is a set of hit regions
type BodyRegion uint16

const (
	RegionHead BodyRegion = 1 << iota
	RegionTorso
	RegionLeftArm
	RegionRightArm
	RegionLeftLeg
	RegionRightLeg

	RegionNone BodyRegion = 0
)

// DamageInfo describes the fatal hit
type DamageInfo interface {
	// DismemberChance is the engine-assigned probability the hit severs a limb
	DismemberChance() float64

	// HitRegion reports which regions the hit landed on
	// Errors mean the region is unknown
	HitRegion() (BodyRegion, error)
}

// Event is one kill as gathered by the caller
type Event struct {
	Attacker Attacker
	Target   Target

	// Damage is optional; nil disables dismember detection
	Damage DamageInfo

	IsCrit     bool
	IsHeadshot bool

	// KillstreakCount is the caller's streak counter including this kill
	KillstreakCount int

	// WasUnaware must be captured before the fatal damage is applied
	WasUnaware bool
}

// absent treats nil interfaces and typed nil pointers alike
func absent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}
