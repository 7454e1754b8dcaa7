// Package streak counts consecutive kills and resolves killstreak tier bonuses
// It is a caller-side companion of the classifier, which never fills bonuses itself
package streak

import (
	"time"

	"github.com/lixenwraith/killctx/parameter"
)

// Tracker counts kills that land within Window of the previous one
// Not safe for concurrent use; owned by the kill handler
type Tracker struct {
	Window time.Duration

	count    int
	lastKill time.Time
}

// NewTracker creates a tracker; a non-positive window uses the default
func NewTracker(window time.Duration) *Tracker {
	if window <= 0 {
		window = parameter.KillstreakWindowDefault
	}
	return &Tracker{Window: window}
}

// Record registers a kill at now and returns the streak including it
func (t *Tracker) Record(now time.Time) int {
	if t.count == 0 || now.Sub(t.lastKill) > t.Window || now.Before(t.lastKill) {
		t.count = 0
	}
	t.count++
	t.lastKill = now
	return t.count
}

// Count returns the streak as of now without recording a kill
func (t *Tracker) Count(now time.Time) int {
	if t.count == 0 || now.Sub(t.lastKill) > t.Window {
		return 0
	}
	return t.count
}

// Reset ends the current streak
func (t *Tracker) Reset() {
	t.count = 0
	t.lastKill = time.Time{}
}
