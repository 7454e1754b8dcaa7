// Package demo classifies every kill in a CS2 demo recording.
//
// Mapping onto the classifier inputs:
//   - crit is a wallbang (the bullet penetrated at least one object)
//   - positions are converted from engine units to meters
//   - awareness is the victim's spotted state on the last frame before the kill
//   - dismember chance is zero, so only headshot kills with a recorded head
//     hit group can mark dismember
package demo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs"
	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs/common"
	"github.com/markus-wa/demoinfocs-golang/v5/pkg/demoinfocs/events"
	"go.uber.org/zap"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/logging"
	"github.com/lixenwraith/killctx/streak"
	"github.com/lixenwraith/killctx/trigger"
)

// KillRecord is one classified kill
type KillRecord struct {
	Tick     int
	Time     time.Duration
	Killer   string
	Victim   string
	Weapon   string
	Trigger  trigger.Trigger
	Modifier classifier.ContextModifiers
}

// Analyzer turns demo kill events into classified records
// One Analyze call at a time; state is reset per call
type Analyzer struct {
	cls      *classifier.Classifier
	cfg      classifier.Config
	window   time.Duration
	tiers    []streak.Tier
	triggers trigger.Settings
	log      *zap.Logger

	records []KillRecord
	streaks map[int]*streak.Tracker
	hits    map[int]lastHit
	aware   awareness
}

// lastHit is the most recent damage a victim took
type lastHit struct {
	attacker int
	group    events.HitGroup
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithConfig sets classifier tuning
func WithConfig(cfg classifier.Config) Option {
	return func(a *Analyzer) { a.cfg = cfg }
}

// WithStreak sets the streak window and bonus tiers
func WithStreak(window time.Duration, tiers []streak.Tier) Option {
	return func(a *Analyzer) {
		a.window = window
		a.tiers = tiers
	}
}

// WithTriggers sets trigger selection
func WithTriggers(s trigger.Settings) Option {
	return func(a *Analyzer) { a.triggers = s }
}

// WithClassifier shares a classifier, typically one reporting telemetry
func WithClassifier(c *classifier.Classifier) Option {
	return func(a *Analyzer) { a.cls = c }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// NewAnalyzer creates an Analyzer with default tuning unless overridden
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:      classifier.DefaultConfig(),
		tiers:    streak.DefaultTiers(),
		triggers: trigger.DefaultSettings(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = logging.OrNop(a.log).Named("demo")
	if a.cls == nil {
		a.cls = classifier.New(classifier.WithLogger(a.log))
	}
	a.reset()
	return a
}

func (a *Analyzer) reset() {
	a.records = nil
	a.streaks = make(map[int]*streak.Tracker)
	a.hits = make(map[int]lastHit)
	a.aware = make(awareness)
}

// Analyze parses r to the end and returns every classified kill
// Records gathered before a cancellation or parse error are returned with it
func (a *Analyzer) Analyze(ctx context.Context, r io.Reader) ([]KillRecord, error) {
	a.reset()

	p := demoinfocs.NewParser(r)
	defer p.Close()

	p.RegisterEventHandler(func(events.FrameDone) {
		a.snapshotAwareness(p.GameState().Participants().Playing())
	})
	p.RegisterEventHandler(func(e events.PlayerHurt) {
		if e.Player == nil || e.Attacker == nil {
			return
		}
		a.recordHit(e.Player.UserID, e.Attacker.UserID, e.HitGroup)
	})
	p.RegisterEventHandler(func(events.RoundStart) {
		a.resetStreaks()
	})
	p.RegisterEventHandler(func(e events.Kill) {
		if ctx.Err() != nil {
			p.Cancel()
			return
		}
		a.handleKill(e, p.GameState().IngameTick(), p.CurrentTime())
	})

	err := p.ParseToEnd()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return a.records, ctxErr
	}
	if err != nil {
		return a.records, fmt.Errorf("failed to parse demo: %w", err)
	}

	a.log.Debug("demo analyzed", zap.Int("kills", len(a.records)))
	return a.records, nil
}

// snapshotAwareness stores who had eyes on whom at the end of a frame
func (a *Analyzer) snapshotAwareness(players []*common.Player) {
	clear(a.aware)
	for _, observer := range players {
		if observer == nil || !observer.IsAlive() {
			continue
		}
		for _, other := range players {
			if other == nil || other == observer {
				continue
			}
			a.aware.set(observer.UserID, other.UserID, observer.HasSpotted(other))
		}
	}
}

func (a *Analyzer) recordHit(victim, attacker int, group events.HitGroup) {
	a.hits[victim] = lastHit{attacker: attacker, group: group}
}

func (a *Analyzer) resetStreaks() {
	for _, t := range a.streaks {
		t.Reset()
	}
}

func (a *Analyzer) handleKill(e events.Kill, tick int, at time.Duration) {
	weapon := ""
	if e.Weapon != nil {
		weapon = e.Weapon.String()
	}
	a.classifyKill(kill{
		tick:     tick,
		at:       at,
		killer:   snapshot(e.Killer),
		victim:   snapshot(e.Victim),
		weapon:   weapon,
		headshot: e.IsHeadshot,
		wallbang: e.PenetratedObjects > 0,
	})
}

// kill is a demo kill with players already frozen
type kill struct {
	tick     int
	at       time.Duration
	killer   *combatant
	victim   *combatant
	weapon   string
	headshot bool
	wallbang bool
}

// demoEpoch anchors demo-relative times for the streak tracker
var demoEpoch = time.Unix(0, 0)

func (a *Analyzer) classifyKill(k kill) KillRecord {
	ev := classifier.Event{
		IsCrit:     k.wallbang,
		IsHeadshot: k.headshot,
	}
	rec := KillRecord{
		Tick:   k.tick,
		Time:   k.at,
		Weapon: k.weapon,
	}

	if k.killer != nil {
		ev.Attacker = k.killer
		rec.Killer = k.killer.name
		ev.KillstreakCount = a.tracker(k.killer.id).Record(demoEpoch.Add(k.at))
	}
	if k.victim != nil {
		ev.Target = k.victim
		rec.Victim = k.victim.name

		hit, ok := a.hits[k.victim.id]
		if ok && k.killer != nil && hit.attacker != k.killer.id {
			ok = false
		}
		ev.Damage = hitDamage{group: hit.group, known: ok}
		delete(a.hits, k.victim.id)

		if k.killer != nil {
			if spotted, known := a.aware.get(k.victim.id, k.killer.id); known {
				ev.WasUnaware = !spotted
			}
		}
	}

	mods := a.cls.Classify(a.cfg, ev)
	mods = streak.ApplyBonus(mods, a.tiers)
	rec.Modifier = mods
	rec.Trigger = trigger.Select(mods.TriggeredContexts, a.triggers)

	a.log.Debug("kill classified",
		zap.Int("tick", k.tick),
		zap.String("killer", rec.Killer),
		zap.String("victim", rec.Victim),
		zap.Stringer("trigger", rec.Trigger),
		zap.String("contexts", mods.DebugInfo),
	)
	a.records = append(a.records, rec)
	return rec
}

func (a *Analyzer) tracker(id int) *streak.Tracker {
	t, ok := a.streaks[id]
	if !ok {
		t = streak.NewTracker(a.window)
		a.streaks[id] = t
	}
	return t
}

// awareness maps observer to the set of players it had spotted
type awareness map[int]map[int]bool

func (w awareness) set(observer, other int, spotted bool) {
	m, ok := w[observer]
	if !ok {
		m = make(map[int]bool)
		w[observer] = m
	}
	m[other] = spotted
}

// get reports whether observer had spotted other; known is false without a snapshot
func (w awareness) get(observer, other int) (spotted, known bool) {
	m, ok := w[observer]
	if !ok {
		return false, false
	}
	spotted, known = m[other]
	return spotted, known
}
