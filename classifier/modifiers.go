package classifier

import (
	"math"
	"strings"

	"github.com/lixenwraith/killctx/core"
)

// ContextModifiers is the composed cinematic adjustment for one kill
// Built fresh per call and owned by the caller afterwards
type ContextModifiers struct {
	// Multipliers start at 1.0 and only ever multiply by configured factors
	DurationMultiplier  float64
	SlowScaleMultiplier float64
	ZoomMultiplier      float64
	ZoomSpeedMultiplier float64

	ScreenTint   core.Tint
	TriggerFlash bool

	// DebugInfo lists matched contexts in evaluation order, comma separated
	DebugInfo string

	TriggeredContexts KillContext

	IsHeadshot      bool
	KillstreakCount int

	// TargetDistance is +Inf when either actor is missing
	TargetDistance float64

	// Bonus fields are reserved for a caller-side step and are zero here
	BonusDuration  float64
	BonusSlowScale float64
}

// newModifiers returns the identity result for an event
func newModifiers(cfg Config, ev Event) ContextModifiers {
	return ContextModifiers{
		DurationMultiplier:  1,
		SlowScaleMultiplier: 1,
		ZoomMultiplier:      1,
		ZoomSpeedMultiplier: 1,
		ScreenTint:          BaseTint(cfg.ColorGradingMode, cfg.ColorGradingIntensity),
		IsHeadshot:          ev.IsHeadshot,
		KillstreakCount:     ev.KillstreakCount,
		TargetDistance:      math.Inf(1),
	}
}

// EffectiveDuration applies the duration multiplier and bonus to a base duration in seconds
func (m ContextModifiers) EffectiveDuration(base float64) float64 {
	return base*m.DurationMultiplier + m.BonusDuration
}

// EffectiveTimeScale applies the slow scale multiplier and bonus to a base time scale
func (m ContextModifiers) EffectiveTimeScale(base float64) float64 {
	return base*m.SlowScaleMultiplier + m.BonusSlowScale
}

// Note is one debug entry: a label with an optional formatted parameter
type Note struct {
	Label string
	Param string
}

func (n Note) String() string {
	if n.Param == "" {
		return n.Label
	}
	return n.Label + "(" + n.Param + ")"
}

// noteList is a fixed-capacity ordered list, one slot per context
type noteList struct {
	items [len(AllContexts)]Note
	n     int
}

func (l *noteList) add(label, param string) {
	if l.n < len(l.items) {
		l.items[l.n] = Note{Label: label, Param: param}
		l.n++
	}
}

func (l *noteList) join() string {
	if l.n == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < l.n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(l.items[i].String())
	}
	return b.String()
}

// ParseDebugInfo splits a DebugInfo string back into notes
// Nested parentheses in parameters are kept intact
func ParseDebugInfo(s string) []Note {
	if s == "" {
		return nil
	}
	var notes []Note
	depth, start := 0, 0
	flush := func(end int) {
		part := strings.TrimSpace(s[start:end])
		if part == "" {
			return
		}
		if open := strings.IndexByte(part, '('); open > 0 && strings.HasSuffix(part, ")") {
			notes = append(notes, Note{Label: part[:open], Param: part[open+1 : len(part)-1]})
			return
		}
		notes = append(notes, Note{Label: part})
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(s))
	return notes
}
