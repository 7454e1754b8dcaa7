package demo

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/streak"
	"github.com/lixenwraith/killctx/trigger"
	"github.com/lixenwraith/killctx/vmath"
)

func allTriggers() trigger.Settings {
	s := trigger.DefaultSettings()
	s.EnableAll()
	return s
}

func player(id int, name string, x float64) *combatant {
	return &combatant{id: id, name: name, pos: vmath.Vec3F{X: x}, health: 100}
}

func TestClassifyKill_UnawareHeadshotAtRange(t *testing.T) {
	a := NewAnalyzer(WithTriggers(allTriggers()))
	killer, victim := player(1, "alice", 0), player(2, "bob", 30)

	a.recordHit(victim.id, killer.id, events.HitGroupHead)
	a.aware.set(victim.id, killer.id, false)

	rec := a.classifyKill(kill{tick: 640, at: 10 * time.Second, killer: killer, victim: victim, weapon: "AWP", headshot: true})

	assert.Equal(t, "alice", rec.Killer)
	assert.Equal(t, "bob", rec.Victim)
	assert.Equal(t, "AWP", rec.Weapon)
	assert.Equal(t, 640, rec.Tick)
	assert.Equal(t, "LongRange(30.0m), Headshot, Sneak, Dismember(HeadshotKill)", rec.Modifier.DebugInfo)
	assert.Equal(t, trigger.Dismember, rec.Trigger)
	assert.NotContains(t, a.hits, victim.id, "hit is consumed by the kill")
	assert.Len(t, a.records, 1)
}

func TestClassifyKill_SpottedVictimIsNotSneak(t *testing.T) {
	a := NewAnalyzer()
	killer, victim := player(1, "alice", 0), player(2, "bob", 5)
	a.aware.set(victim.id, killer.id, true)

	rec := a.classifyKill(kill{killer: killer, victim: victim})
	assert.False(t, rec.Modifier.TriggeredContexts.Has(classifier.ContextSneak))

	// No snapshot for the pair counts as aware
	rec = a.classifyKill(kill{killer: player(3, "carol", 0), victim: player(4, "dave", 5)})
	assert.False(t, rec.Modifier.TriggeredContexts.Has(classifier.ContextSneak))
}

func TestClassifyKill_WallbangIsCrit(t *testing.T) {
	a := NewAnalyzer(WithTriggers(allTriggers()))
	rec := a.classifyKill(kill{killer: player(1, "alice", 0), victim: player(2, "bob", 5), wallbang: true})
	assert.True(t, rec.Modifier.TriggeredContexts.Has(classifier.ContextCrit))
	assert.True(t, rec.Modifier.TriggerFlash)
	assert.Equal(t, trigger.Critical, rec.Trigger)
}

func TestClassifyKill_HitFromOtherAttackerIgnored(t *testing.T) {
	a := NewAnalyzer()
	killer, victim := player(1, "alice", 0), player(2, "bob", 5)
	a.recordHit(victim.id, 9, events.HitGroupHead)

	rec := a.classifyKill(kill{killer: killer, victim: victim, headshot: true})
	assert.Equal(t, "Headshot", rec.Modifier.DebugInfo)
	assert.Equal(t, trigger.Headshot, rec.Trigger)
}

func TestClassifyKill_StreakAndRoundReset(t *testing.T) {
	a := NewAnalyzer(WithTriggers(allTriggers()), WithStreak(8*time.Second, streak.DefaultTiers()))
	killer := player(1, "alice", 0)

	var rec KillRecord
	for i := 1; i <= 3; i++ {
		rec = a.classifyKill(kill{at: time.Duration(i) * time.Second, killer: killer, victim: player(10+i, "bot", 5)})
	}
	assert.Equal(t, 3, rec.Modifier.KillstreakCount)
	assert.True(t, rec.Modifier.TriggeredContexts.Has(classifier.ContextKillstreak))
	assert.Equal(t, trigger.Killstreak, rec.Trigger)
	assert.Equal(t, 0.5, rec.Modifier.BonusDuration)

	a.resetStreaks()
	rec = a.classifyKill(kill{at: 4 * time.Second, killer: killer, victim: player(20, "bot", 5)})
	assert.Equal(t, 1, rec.Modifier.KillstreakCount)
}

func TestClassifyKill_StreakWindowExpires(t *testing.T) {
	a := NewAnalyzer(WithStreak(2*time.Second, nil))
	killer := player(1, "alice", 0)
	a.classifyKill(kill{at: time.Second, killer: killer, victim: player(2, "bot", 5)})
	rec := a.classifyKill(kill{at: 10 * time.Second, killer: killer, victim: player(3, "bot", 5)})
	assert.Equal(t, 1, rec.Modifier.KillstreakCount)
}

func TestClassifyKill_WorldKill(t *testing.T) {
	a := NewAnalyzer(WithTriggers(allTriggers()))
	rec := a.classifyKill(kill{victim: player(2, "bob", 5), headshot: true})

	assert.Empty(t, rec.Killer)
	assert.Equal(t, classifier.ContextNone, rec.Modifier.TriggeredContexts)
	assert.True(t, math.IsInf(rec.Modifier.TargetDistance, 1))
	assert.Equal(t, trigger.Basic, rec.Trigger)
}

func TestRegionOf(t *testing.T) {
	tests := []struct {
		group events.HitGroup
		want  classifier.BodyRegion
	}{
		{events.HitGroupHead, classifier.RegionHead},
		{events.HitGroupChest, classifier.RegionTorso},
		{events.HitGroupStomach, classifier.RegionTorso},
		{events.HitGroupLeftArm, classifier.RegionLeftArm},
		{events.HitGroupRightArm, classifier.RegionRightArm},
		{events.HitGroupLeftLeg, classifier.RegionLeftLeg},
		{events.HitGroupRightLeg, classifier.RegionRightLeg},
		{events.HitGroupGeneric, classifier.RegionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, regionOf(tt.group), "hit group %d", tt.group)
	}
}

func TestHitDamage(t *testing.T) {
	_, err := hitDamage{}.HitRegion()
	assert.ErrorIs(t, err, errNoHitGroup)

	region, err := hitDamage{group: events.HitGroupHead, known: true}.HitRegion()
	require.NoError(t, err)
	assert.Equal(t, classifier.RegionHead, region)
	assert.Zero(t, hitDamage{}.DismemberChance())
}

func TestToMeters(t *testing.T) {
	got := toMeters(r3.Vector{X: 1000, Y: -100, Z: 0})
	assert.InDelta(t, 19.05, got.X, 1e-9)
	assert.InDelta(t, -1.905, got.Y, 1e-9)
	assert.Zero(t, got.Z)
}

func TestAwareness(t *testing.T) {
	w := make(awareness)
	_, known := w.get(1, 2)
	assert.False(t, known)

	w.set(1, 2, true)
	w.set(1, 3, false)
	spotted, known := w.get(1, 2)
	assert.True(t, spotted)
	assert.True(t, known)
	spotted, known = w.get(1, 3)
	assert.False(t, spotted)
	assert.True(t, known)
	_, known = w.get(2, 1)
	assert.False(t, known)
}

func TestSnapshotNil(t *testing.T) {
	assert.Nil(t, snapshot(nil))
}

func TestAnalyze_GarbageInput(t *testing.T) {
	a := NewAnalyzer()
	records, err := a.Analyze(context.Background(), bytes.NewReader([]byte("not a demo")))
	assert.Error(t, err)
	assert.Empty(t, records)
}
