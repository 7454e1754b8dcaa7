package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/parameter"
)

func TestTracker_WindowKeepsStreak(t *testing.T) {
	tr := NewTracker(8 * time.Second)
	start := time.Unix(1000, 0)

	assert.Equal(t, 1, tr.Record(start))
	assert.Equal(t, 2, tr.Record(start.Add(3*time.Second)))
	assert.Equal(t, 3, tr.Record(start.Add(11*time.Second)))
	assert.Equal(t, 3, tr.Count(start.Add(12*time.Second)))
}

func TestTracker_GapResets(t *testing.T) {
	tr := NewTracker(8 * time.Second)
	start := time.Unix(1000, 0)

	tr.Record(start)
	tr.Record(start.Add(time.Second))
	assert.Equal(t, 0, tr.Count(start.Add(10*time.Second)))
	assert.Equal(t, 1, tr.Record(start.Add(10*time.Second)))
}

func TestTracker_ExactWindowStillCounts(t *testing.T) {
	tr := NewTracker(time.Second)
	start := time.Unix(0, 0)
	tr.Record(start)
	assert.Equal(t, 2, tr.Record(start.Add(time.Second)))
}

func TestTracker_ClockGoingBackwardsResets(t *testing.T) {
	tr := NewTracker(time.Second)
	start := time.Unix(100, 0)
	tr.Record(start)
	assert.Equal(t, 1, tr.Record(start.Add(-time.Millisecond)))
}

func TestTracker_DefaultsAndReset(t *testing.T) {
	tr := NewTracker(0)
	assert.Equal(t, parameter.KillstreakWindowDefault, tr.Window)

	now := time.Unix(5, 0)
	tr.Record(now)
	tr.Reset()
	assert.Equal(t, 0, tr.Count(now))
}

func TestTierFor(t *testing.T) {
	tiers := DefaultTiers()
	tests := []struct {
		count int
		kills int
		ok    bool
	}{
		{2, 0, false},
		{3, 3, true},
		{4, 3, true},
		{8, 8, true},
		{14, 12, true},
		{40, 15, true},
	}
	for _, tt := range tests {
		got, ok := TierFor(tt.count, tiers)
		assert.Equal(t, tt.ok, ok, "count %d", tt.count)
		assert.Equal(t, tt.kills, got.Kills, "count %d", tt.count)
	}
}

func TestTierFor_UnsortedInput(t *testing.T) {
	tiers := []Tier{{Kills: 10, BonusDuration: 2}, {Kills: 3, BonusDuration: 1}}
	got, ok := TierFor(12, tiers)
	assert.True(t, ok)
	assert.Equal(t, 2.0, got.BonusDuration)

	SortTiers(tiers)
	assert.Equal(t, 3, tiers[0].Kills)
}

func TestApplyBonus(t *testing.T) {
	cfg := classifier.DefaultConfig()
	ev := classifier.Event{
		Attacker:        attacker{},
		Target:          attacker{},
		KillstreakCount: 5,
	}
	mods := classifier.Classify(cfg, ev)
	assert.Zero(t, mods.BonusDuration)

	boosted := ApplyBonus(mods, DefaultTiers())
	assert.Equal(t, 0.8, boosted.BonusDuration)
	assert.Zero(t, boosted.BonusSlowScale)
	assert.Zero(t, mods.BonusDuration, "input is a value and must stay untouched")

	ev.KillstreakCount = 2
	plain := ApplyBonus(classifier.Classify(cfg, ev), DefaultTiers())
	assert.Zero(t, plain.BonusDuration)
}
