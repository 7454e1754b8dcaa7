package sandbox

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/logging"
	"github.com/lixenwraith/killctx/parameter"
	"github.com/lixenwraith/killctx/streak"
	"github.com/lixenwraith/killctx/trigger"
)

// Options wires the sandbox to the rest of killctx
type Options struct {
	Config     classifier.Config
	Triggers   trigger.Settings
	Tiers      []streak.Tier
	Classifier *classifier.Classifier
	Logger     *zap.Logger

	// Play receives the modifiers when space is pressed; nil disables the cue
	Play func(classifier.ContextModifiers)

	// Initial is the starting state; zero uses DefaultState
	Initial *State
}

// Tuning is the reloadable part of Options
type Tuning struct {
	Config   classifier.Config
	Triggers trigger.Settings
	Tiers    []streak.Tier
}

// Sandbox owns the editable state and redraws on every change
type Sandbox struct {
	opts  Options
	view  *View
	state State
	log   *zap.Logger
	crash func(tcell.Screen, any)
}

// New creates a Sandbox drawing onto screen
// The caller owns screen Init and Fini
func New(screen tcell.Screen, opts Options) *Sandbox {
	if opts.Classifier == nil {
		opts.Classifier = classifier.New(classifier.WithLogger(opts.Logger))
	}
	st := DefaultState()
	if opts.Initial != nil {
		st = *opts.Initial
	}
	return &Sandbox{
		opts:  opts,
		view:  NewView(screen),
		state: st,
		log:   logging.OrNop(opts.Logger).Named("sandbox"),
		crash: exitOnCrash,
	}
}

// State returns the current state
func (s *Sandbox) State() State { return s.state }

// Evaluate classifies the current state and resolves bonus and trigger
func (s *Sandbox) Evaluate() (classifier.ContextModifiers, trigger.Trigger) {
	mods := s.opts.Classifier.Classify(s.state.Apply(s.opts.Config), s.state.Event())
	mods = streak.ApplyBonus(mods, s.opts.Tiers)
	return mods, trigger.Select(mods.TriggeredContexts, s.opts.Triggers)
}

// Redraw evaluates and draws the current state
func (s *Sandbox) Redraw() {
	mods, trig := s.Evaluate()
	s.view.Draw(s.state, mods, trig)
}

// Run draws and handles input until quit or ctx is done
func (s *Sandbox) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	s.goSafe(func() { s.view.screen.ChannelEvents(events, quit) })

	s.Redraw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !s.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				s.view.screen.Sync()
			case *tcell.EventInterrupt:
				if t, ok := ev.Data().(Tuning); ok {
					s.applyTuning(t)
				}
			}
			s.Redraw()
		}
	}
}

// Retune hands new settings to a running sandbox; safe from any goroutine
func (s *Sandbox) Retune(t Tuning) error {
	return s.view.screen.PostEvent(tcell.NewEventInterrupt(t))
}

func (s *Sandbox) applyTuning(t Tuning) {
	s.opts.Config = t.Config
	s.opts.Triggers = t.Triggers
	s.opts.Tiers = t.Tiers
	s.log.Info("settings reloaded")
}

// HandleKey applies one key to the state; false means quit
func (s *Sandbox) HandleKey(ev *tcell.EventKey) bool {
	st := &s.state
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		st.Distance += DistanceStep
	case tcell.KeyDown:
		st.Distance = max(0, st.Distance-DistanceStep)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'c':
			st.Crit = !st.Crit
		case 'h':
			st.Headshot = !st.Headshot
		case 'u':
			st.Unaware = !st.Unaware
		case 'k':
			st.Crouching = !st.Crouching
		case '[':
			st.Health = clamp(st.Health-HealthStep, 0, parameter.DemoMaxHealth)
		case ']':
			st.Health = clamp(st.Health+HealthStep, 0, parameter.DemoMaxHealth)
		case '+', '=':
			st.Streak++
		case '-':
			st.Streak = max(0, st.Streak-1)
		case 'd':
			st.DismemberChance += ChanceStep
			if st.DismemberChance > 1 {
				st.DismemberChance = 0
			}
		case 'p':
			st.Palette = (st.Palette + 1) % (len(parameter.Palettes) + 1)
		case ' ':
			if s.opts.Play != nil {
				mods, _ := s.Evaluate()
				s.opts.Play(mods)
			}
		}
	}
	s.log.Debug("sandbox state", zap.Any("state", *st))
	return true
}
