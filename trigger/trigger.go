// Package trigger picks the single cinematic trigger for a classified kill
// by priority among enabled triggers. Chance rolls are left to the caller.
package trigger

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/parameter"
)

// Trigger identifies the cinematic preset family chosen for a kill
type Trigger uint8

const (
	Basic Trigger = iota
	Sneak
	LowHealth
	LongRange
	Critical
	Headshot
	Dismember
	Killstreak
)

var triggerNames = [...]string{
	Basic:      "BasicKill",
	Sneak:      "Sneak",
	LowHealth:  "LowHealth",
	LongRange:  "LongRange",
	Critical:   "Critical",
	Headshot:   "Headshot",
	Dismember:  "Dismember",
	Killstreak: "Killstreak",
}

func (t Trigger) String() string {
	if int(t) < len(triggerNames) {
		return triggerNames[t]
	}
	return fmt.Sprintf("Trigger(%d)", t)
}

// ParseTrigger resolves a trigger name, case-insensitive
func ParseTrigger(name string) (Trigger, error) {
	for i, n := range triggerNames {
		if strings.EqualFold(n, name) {
			return Trigger(i), nil
		}
	}
	return Basic, fmt.Errorf("unknown trigger %q", name)
}

// contextOf maps each special trigger to the classifier context it reacts to
// Listed in classifier evaluation order so ties resolve deterministically
var contextOf = []struct {
	trigger Trigger
	context classifier.KillContext
}{
	{LongRange, classifier.ContextLongRange},
	{LowHealth, classifier.ContextLowHealth},
	{Critical, classifier.ContextCrit},
	{Headshot, classifier.ContextHeadshot},
	{Killstreak, classifier.ContextKillstreak},
	{Sneak, classifier.ContextSneak},
	{Dismember, classifier.ContextDismember},
}

// Settings enables triggers and orders them
type Settings struct {
	Enabled  map[Trigger]bool
	Priority map[Trigger]int
}

// DefaultSettings enables headshots only, with stock priorities
func DefaultSettings() Settings {
	return Settings{
		Enabled: map[Trigger]bool{
			Headshot: true,
		},
		Priority: map[Trigger]int{
			Basic:      parameter.PriorityTriggerBasic,
			Sneak:      parameter.PriorityTriggerSneak,
			LowHealth:  parameter.PriorityTriggerLowHealth,
			LongRange:  parameter.PriorityTriggerLongRange,
			Critical:   parameter.PriorityTriggerCritical,
			Headshot:   parameter.PriorityTriggerHeadshot,
			Dismember:  parameter.PriorityTriggerDismember,
			Killstreak: parameter.PriorityTriggerKillstreak,
		},
	}
}

// EnableAll turns every special trigger on
func (s *Settings) EnableAll() {
	if s.Enabled == nil {
		s.Enabled = make(map[Trigger]bool, len(contextOf))
	}
	for _, m := range contextOf {
		s.Enabled[m.trigger] = true
	}
}

// Select returns the highest priority enabled trigger whose context matched
// Basic when nothing qualifies
func Select(contexts classifier.KillContext, s Settings) Trigger {
	best, bestPriority, found := Basic, 0, false
	for _, m := range contextOf {
		if !contexts.Has(m.context) || !s.Enabled[m.trigger] {
			continue
		}
		p := s.Priority[m.trigger]
		if !found || p > bestPriority {
			best, bestPriority, found = m.trigger, p, true
		}
	}
	return best
}

// Candidates lists every enabled trigger that matched, highest priority first
func Candidates(contexts classifier.KillContext, s Settings) []Trigger {
	var out []Trigger
	for _, m := range contextOf {
		if contexts.Has(m.context) && s.Enabled[m.trigger] {
			out = append(out, m.trigger)
		}
	}
	// Stable insertion sort keeps evaluation order on equal priority
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && s.Priority[out[j]] > s.Priority[out[j-1]]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
