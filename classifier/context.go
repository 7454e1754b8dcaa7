package classifier

import (
	"strings"
)

// KillContext is a set of independent kill categories
// Any subset is valid; a single kill may match several
type KillContext uint8

const (
	ContextCrit KillContext = 1 << iota
	ContextDismember
	ContextLongRange
	ContextLowHealth
	ContextHeadshot
	ContextKillstreak
	ContextSneak

	ContextNone KillContext = 0
)

// contextNames is indexed by bit position
var contextNames = [...]string{
	"Crit",
	"Dismember",
	"LongRange",
	"LowHealth",
	"Headshot",
	"Killstreak",
	"Sneak",
}

// AllContexts lists every flag in bit order
var AllContexts = [...]KillContext{
	ContextCrit,
	ContextDismember,
	ContextLongRange,
	ContextLowHealth,
	ContextHeadshot,
	ContextKillstreak,
	ContextSneak,
}

// Has reports whether every bit of flag is set
func (c KillContext) Has(flag KillContext) bool {
	return c&flag == flag
}

// Names returns the set flag names in bit order
func (c KillContext) Names() []string {
	var names []string
	for i, flag := range AllContexts {
		if c&flag != 0 {
			names = append(names, contextNames[i])
		}
	}
	return names
}

func (c KillContext) String() string {
	if c == ContextNone {
		return "None"
	}
	return strings.Join(c.Names(), "|")
}

// ParseContext resolves a single flag name, case-insensitive
func ParseContext(name string) (KillContext, bool) {
	for i, n := range contextNames {
		if strings.EqualFold(n, name) {
			return AllContexts[i], true
		}
	}
	if strings.EqualFold(name, "none") {
		return ContextNone, true
	}
	return ContextNone, false
}
