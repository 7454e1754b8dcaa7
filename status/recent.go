package status

import (
	"sync"
	"unicode/utf8"
)

const (
	// RecentLen is how many labels a Recent keeps
	RecentLen = 8

	// MaxLabelLen caps a stored label in bytes
	MaxLabelLen = 64
)

// Recent is a ring of the latest labels, such as context sets of recent kills
// Zero value is empty and ready to use
type Recent struct {
	mu    sync.Mutex
	items [RecentLen]string
	next  int
	n     int
}

// Push records label, evicting the oldest once full
func (r *Recent) Push(label string) {
	label = truncateLabel(label)
	r.mu.Lock()
	r.items[r.next] = label
	r.next = (r.next + 1) % RecentLen
	if r.n < RecentLen {
		r.n++
	}
	r.mu.Unlock()
}

// Latest returns the newest label, or "" when empty
func (r *Recent) Latest() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.n == 0 {
		return ""
	}
	return r.items[(r.next+RecentLen-1)%RecentLen]
}

// All returns stored labels newest first
func (r *Recent) All() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, r.n)
	for i := range out {
		out[i] = r.items[(r.next+RecentLen-1-i)%RecentLen]
	}
	return out
}

// truncateLabel cuts to MaxLabelLen without splitting a rune
func truncateLabel(s string) string {
	if len(s) <= MaxLabelLen {
		return s
	}
	cut := MaxLabelLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
