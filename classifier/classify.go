package classifier

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/killctx/parameter"
	"github.com/lixenwraith/killctx/vmath"
)

var nopLogger = zap.NewNop()

// Classify evaluates every context for ev against cfg and composes the result
// It never panics and never fails; missing actors yield the identity result
func Classify(cfg Config, ev Event) ContextModifiers {
	return evaluate(cfg, ev, nopLogger, nil)
}

// evaluate runs the fixed-order context pipeline
// Order only affects DebugInfo and which tint wins; multipliers commute
func evaluate(cfg Config, ev Event, log *zap.Logger, st *stats) (mods ContextModifiers) {
	mods = newModifiers(cfg, ev)

	if absent(ev.Attacker) || absent(ev.Target) {
		st.recordFallback()
		return mods
	}

	// A misbehaving accessor must not escape; keep whatever was composed so far
	defer func() {
		if r := recover(); r != nil {
			log.Debug("classification aborted by accessor panic", zap.Any("panic", r))
			st.recordPanic()
		}
	}()

	var notes noteList
	defer func() {
		mods.DebugInfo = notes.join()
		st.record(&mods)
	}()

	checkDistance(cfg, ev, &mods, &notes)
	checkHealth(cfg, ev, &mods, &notes)
	checkCrit(cfg, ev, &mods, &notes)
	checkHeadshot(ev, &mods, &notes)
	checkKillstreak(ev, &mods, &notes)
	checkSneak(ev, &mods, &notes, log, st)
	checkDismember(ev, &mods, &notes, log, st)

	return mods
}

func checkDistance(cfg Config, ev Event, mods *ContextModifiers, notes *noteList) {
	distance := vmath.V3FDist(ev.Attacker.Position(), ev.Target.Position())
	mods.TargetDistance = distance

	if distance >= cfg.DistanceThreshold {
		mods.ZoomMultiplier *= cfg.LongRangeZoomMultiplier
		mods.ZoomSpeedMultiplier *= cfg.LongRangeZoomSpeed
		mods.TriggeredContexts |= ContextLongRange
		notes.add("LongRange", fmt.Sprintf("%.1fm", distance))
	}
}

// healthRatio treats a non-positive max as full health
func healthRatio(a Attacker) float64 {
	maxHealth := a.MaxHealth()
	if maxHealth <= 0 {
		return 1
	}
	return a.Health() / maxHealth
}

func checkHealth(cfg Config, ev Event, mods *ContextModifiers, notes *noteList) {
	ratio := healthRatio(ev.Attacker)
	if ratio <= cfg.LowHealthThreshold {
		mods.SlowScaleMultiplier *= cfg.LowHealthSlowScale
		mods.ScreenTint = LowHealthTint
		mods.TriggeredContexts |= ContextLowHealth
		notes.add("LowHealth", percent(ratio))
	}
}

func checkCrit(cfg Config, ev Event, mods *ContextModifiers, notes *noteList) {
	if !ev.IsCrit {
		return
	}
	mods.ZoomMultiplier *= cfg.CritZoomMultiplier
	mods.ZoomSpeedMultiplier *= cfg.CritZoomSpeed
	mods.TriggerFlash = true
	mods.TriggeredContexts |= ContextCrit
	notes.add("Crit", "")
}

func checkHeadshot(ev Event, mods *ContextModifiers, notes *noteList) {
	if !ev.IsHeadshot {
		return
	}
	mods.ZoomMultiplier *= parameter.HeadshotZoomMultiplier
	mods.TriggerFlash = true
	mods.TriggeredContexts |= ContextHeadshot
	notes.add("Headshot", "")
}

func checkKillstreak(ev Event, mods *ContextModifiers, notes *noteList) {
	if ev.KillstreakCount < parameter.KillstreakMinimum {
		return
	}
	mods.TriggeredContexts |= ContextKillstreak
	notes.add("Killstreak", fmt.Sprintf("x%d", ev.KillstreakCount))
}

// checkSneak uses only the pre-damage awareness flag
// The crouch trace runs after the flag is settled and cannot change the result
func checkSneak(ev Event, mods *ContextModifiers, notes *noteList, log *zap.Logger, st *stats) {
	if ev.WasUnaware {
		mods.TriggeredContexts |= ContextSneak
		notes.add("Sneak", "")
	}

	if ce := log.Check(zapcore.DebugLevel, "sneak check"); ce != nil {
		crouching, err := crouchState(ev.Attacker)
		if err != nil {
			st.recordAccessorError()
		}
		ce.Write(
			zap.Bool("crouching", crouching),
			zap.NamedError("crouch_error", err),
			zap.Bool("was_unaware", ev.WasUnaware),
			zap.Bool("sneak_kill", ev.WasUnaware),
		)
	}
}

// crouchState reads the optional crouch flag; a panicking accessor reads as not crouching
func crouchState(a Attacker) (crouching bool, err error) {
	c, ok := a.(Croucher)
	if !ok {
		return false, nil
	}
	defer func() {
		if r := recover(); r != nil {
			crouching, err = false, fmt.Errorf("crouch lookup panicked: %v", r)
		}
	}()
	return c.Crouching(), nil
}

// checkDismember is best-effort: region lookup failures only disable the fallback signal
func checkDismember(ev Event, mods *ContextModifiers, notes *noteList, log *zap.Logger, st *stats) {
	if absent(ev.Damage) {
		return
	}

	var reason string
	if chance := ev.Damage.DismemberChance(); chance > 0 {
		reason = "DismemberChance(" + percent(chance) + ")"
	} else if ev.IsHeadshot {
		region, err := lookupRegion(ev.Damage)
		if err != nil {
			log.Debug("dismember detection failed", zap.Error(err))
			st.recordRegionError()
		} else if region&RegionHead != 0 {
			reason = "HeadshotKill"
		}
	}

	if reason == "" {
		return
	}
	mods.TriggeredContexts |= ContextDismember
	notes.add("Dismember", reason)
	log.Debug("dismember context detected", zap.String("reason", reason))
}

// lookupRegion converts a panicking lookup into an error
func lookupRegion(d DamageInfo) (region BodyRegion, err error) {
	defer func() {
		if r := recover(); r != nil {
			region, err = RegionNone, fmt.Errorf("hit region lookup panicked: %v", r)
		}
	}()
	return d.HitRegion()
}

// percent formats a ratio as a rounded whole percentage, half away from zero
func percent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(ratio*100))
}
