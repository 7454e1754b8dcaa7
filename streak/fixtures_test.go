package streak

import "github.com/lixenwraith/killctx/vmath"

type attacker struct{}

func (attacker) Position() vmath.Vec3F { return vmath.Vec3F{} }
func (attacker) Health() float64       { return 100 }
func (attacker) MaxHealth() float64    { return 100 }
