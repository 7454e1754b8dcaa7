package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/config"
	"github.com/lixenwraith/killctx/cue"
	"github.com/lixenwraith/killctx/sandbox"
)

func newSandboxCmd(a *app) *cobra.Command {
	var sound bool

	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Tune contexts interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize screen: %w", err)
			}
			defer screen.Fini()

			opts := sandbox.Options{
				Config:     a.settings.Classifier,
				Triggers:   a.triggers,
				Tiers:      a.settings.Streak.Tiers,
				Classifier: a.cls,
				Logger:     a.logger,
			}
			if sound {
				if play, err := initSpeaker(); err != nil {
					// Non-fatal, the sandbox runs without sound
					a.logger.Warn("audio initialization failed", zap.Error(err))
				} else {
					defer speaker.Close()
					opts.Play = play
				}
			}

			sb := sandbox.New(screen, opts)
			if a.configPath != "" {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				go a.watchConfig(ctx, sb)
			}
			return sb.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&sound, "sound", false, "play the audio cue on space")
	return cmd
}

// watchConfig retunes sb whenever the settings file changes
func (a *app) watchConfig(ctx context.Context, sb *sandbox.Sandbox) {
	err := config.Watch(ctx, a.configPath, a.logger, func(f config.File) {
		settings, err := f.Trigger.Settings()
		if err != nil {
			a.logger.Warn("ignoring reloaded trigger settings", zap.Error(err))
			settings = a.triggers
		}
		if err := sb.Retune(sandbox.Tuning{Config: f.Classifier, Triggers: settings, Tiers: f.Streak.Tiers}); err != nil {
			a.logger.Warn("failed to deliver reloaded settings", zap.Error(err))
		}
	})
	if err != nil {
		a.logger.Warn("config watch stopped", zap.Error(err))
	}
}

// initSpeaker opens the audio device and returns a cue player
func initSpeaker() (func(classifier.ContextModifiers), error) {
	rate := beep.SampleRate(cue.SampleRateDefault)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return func(mods classifier.ContextModifiers) {
		speaker.Play(cue.Stinger(mods, cue.SampleRateDefault))
	}, nil
}
