package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/cue"
	"github.com/lixenwraith/killctx/sandbox"
	"github.com/lixenwraith/killctx/streak"
	"github.com/lixenwraith/killctx/trigger"
)

type classifyFlags struct {
	state     sandbox.State
	palette   string
	output    string
	wavPath   string
	showStats bool
}

func newClassifyCmd(a *app) *cobra.Command {
	f := &classifyFlags{state: sandbox.DefaultState()}

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one synthetic kill described by flags",
		Long: `Builds a kill with the attacker at the origin and the target at --distance
meters, classifies it and prints the composed modifiers.

Example:
  killctx classify --distance 32 --headshot --streak 5 --unaware`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.OutOrStdout(), a, f)
		},
	}

	fl := cmd.Flags()
	fl.Float64Var(&f.state.Distance, "distance", f.state.Distance, "attacker to target distance in meters")
	fl.Float64Var(&f.state.Health, "health", f.state.Health, "attacker health out of 100")
	fl.IntVar(&f.state.Streak, "streak", f.state.Streak, "killstreak count including this kill")
	fl.Float64Var(&f.state.DismemberChance, "dismember-chance", 0, "engine dismember chance, 0..1")
	fl.BoolVar(&f.state.Crit, "crit", false, "critical hit")
	fl.BoolVar(&f.state.Headshot, "headshot", false, "headshot")
	fl.BoolVar(&f.state.Unaware, "unaware", false, "target had not noticed the attacker")
	fl.BoolVar(&f.state.Crouching, "crouch", false, "attacker was crouching")
	fl.StringVar(&f.palette, "palette", "", "color grading palette, overrides settings")
	fl.StringVarP(&f.output, "output", "o", "text", "output format: text or yaml")
	fl.StringVar(&f.wavPath, "wav", "", "write the audio cue to this WAV file")
	fl.BoolVar(&f.showStats, "stats", false, "print classifier telemetry")
	return cmd
}

// classifyResult is the yaml view of one classification
type classifyResult struct {
	Trigger             string    `yaml:"trigger"`
	Contexts            []string  `yaml:"contexts"`
	DebugInfo           string    `yaml:"debug_info"`
	DurationMultiplier  float64   `yaml:"duration_multiplier"`
	SlowScaleMultiplier float64   `yaml:"slow_scale_multiplier"`
	ZoomMultiplier      float64   `yaml:"zoom_multiplier"`
	ZoomSpeedMultiplier float64   `yaml:"zoom_speed_multiplier"`
	ScreenTint          []float64 `yaml:"screen_tint,flow"`
	TriggerFlash        bool      `yaml:"trigger_flash"`
	TargetDistance      float64   `yaml:"target_distance"`
	BonusDuration       float64   `yaml:"bonus_duration"`
}

func runClassify(w io.Writer, a *app, f *classifyFlags) error {
	cfg := a.settings.Classifier
	if f.palette != "" {
		cfg.ColorGradingMode = f.palette
	}

	mods := a.cls.Classify(cfg, f.state.Event())
	mods = streak.ApplyBonus(mods, a.settings.Streak.Tiers)
	trig := trigger.Select(mods.TriggeredContexts, a.triggers)

	switch f.output {
	case "text":
		printModifiers(w, mods, trig)
	case "yaml":
		res := classifyResult{
			Trigger:             trig.String(),
			Contexts:            mods.TriggeredContexts.Names(),
			DebugInfo:           mods.DebugInfo,
			DurationMultiplier:  mods.DurationMultiplier,
			SlowScaleMultiplier: mods.SlowScaleMultiplier,
			ZoomMultiplier:      mods.ZoomMultiplier,
			ZoomSpeedMultiplier: mods.ZoomSpeedMultiplier,
			ScreenTint:          []float64{mods.ScreenTint.R, mods.ScreenTint.G, mods.ScreenTint.B, mods.ScreenTint.A},
			TriggerFlash:        mods.TriggerFlash,
			TargetDistance:      mods.TargetDistance,
			BonusDuration:       mods.BonusDuration,
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q", f.output)
	}

	if f.wavPath != "" {
		if err := writeCue(f.wavPath, mods); err != nil {
			return err
		}
	}

	if f.showStats {
		snap := a.registry.Snapshot()
		keys := make([]string, 0, len(snap))
		for k := range snap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%-32s %s\n", k, snap[k])
		}
	}
	return nil
}

func printModifiers(w io.Writer, mods classifier.ContextModifiers, trig trigger.Trigger) {
	fmt.Fprintf(w, "trigger      %s\n", trig)
	fmt.Fprintf(w, "contexts     %s\n", mods.TriggeredContexts)
	fmt.Fprintf(w, "debug        %s\n", mods.DebugInfo)
	fmt.Fprintf(w, "duration     x%.2f (+%.2fs)\n", mods.DurationMultiplier, mods.BonusDuration)
	fmt.Fprintf(w, "slow scale   x%.2f\n", mods.SlowScaleMultiplier)
	fmt.Fprintf(w, "zoom         x%.2f\n", mods.ZoomMultiplier)
	fmt.Fprintf(w, "zoom speed   x%.2f\n", mods.ZoomSpeedMultiplier)
	fmt.Fprintf(w, "tint         %.2f %.2f %.2f a%.2f\n", mods.ScreenTint.R, mods.ScreenTint.G, mods.ScreenTint.B, mods.ScreenTint.A)
	fmt.Fprintf(w, "flash        %t\n", mods.TriggerFlash)
	fmt.Fprintf(w, "distance     %.1fm\n", mods.TargetDistance)
}

func writeCue(path string, mods classifier.ContextModifiers) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := cue.WriteWAV(file, cue.Stinger(mods, cue.SampleRateDefault), cue.SampleRateDefault); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
