package streak

import (
	"sort"

	"github.com/lixenwraith/killctx/classifier"
)

// Tier is a bonus unlocked at a kill count
type Tier struct {
	Kills          int     `toml:"kills" yaml:"kills"`
	BonusDuration  float64 `toml:"bonus_duration" yaml:"bonus_duration"`
	BonusIntensity float64 `toml:"bonus_intensity" yaml:"bonus_intensity"`
}

// DefaultTiers returns the stock tier ladder
func DefaultTiers() []Tier {
	return []Tier{
		{Kills: 3, BonusDuration: 0.5, BonusIntensity: 1.2},
		{Kills: 5, BonusDuration: 0.8, BonusIntensity: 1.5},
		{Kills: 8, BonusDuration: 1.0, BonusIntensity: 1.8},
		{Kills: 12, BonusDuration: 1.3, BonusIntensity: 2.0},
		{Kills: 15, BonusDuration: 1.5, BonusIntensity: 2.5},
	}
}

// TierFor returns the highest tier reached by count
func TierFor(count int, tiers []Tier) (Tier, bool) {
	best, found := Tier{}, false
	for _, t := range tiers {
		if count >= t.Kills && (!found || t.Kills > best.Kills) {
			best, found = t, true
		}
	}
	return best, found
}

// ApplyBonus fills BonusDuration from the reached tier
// Only kills the classifier marked as a killstreak are eligible; BonusSlowScale is left alone
func ApplyBonus(mods classifier.ContextModifiers, tiers []Tier) classifier.ContextModifiers {
	if !mods.TriggeredContexts.Has(classifier.ContextKillstreak) {
		return mods
	}
	if t, ok := TierFor(mods.KillstreakCount, tiers); ok {
		mods.BonusDuration = t.BonusDuration
	}
	return mods
}

// SortTiers orders tiers by ascending kill count
func SortTiers(tiers []Tier) {
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].Kills < tiers[j].Kills
	})
}
