// Command killctx classifies kills into cinematic contexts and composes the
// camera, time and tint modifiers for each.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/config"
	"github.com/lixenwraith/killctx/logging"
	"github.com/lixenwraith/killctx/status"
	"github.com/lixenwraith/killctx/trigger"
)

// app is the state shared by every subcommand after PersistentPreRunE
type app struct {
	configPath string
	verbose    bool

	settings config.File
	triggers trigger.Settings
	logger   *zap.Logger
	registry *status.Registry
	cls      *classifier.Classifier
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "killctx",
		Short: "Classify kills into cinematic contexts",
		Long: `killctx evaluates a kill against long range, low health, crit, headshot,
killstreak, sneak and dismember contexts and composes the resulting camera,
time scale and screen tint modifiers.

Settings come from built-in defaults, then --config (TOML or YAML), then
KILLCTX_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "settings file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log classifier trace at debug level")

	root.AddCommand(
		newClassifyCmd(a),
		newDemoCmd(a),
		newSandboxCmd(a),
		newConfigCmd(a),
		newHistoryCmd(),
	)
	return root
}

// setup loads settings and builds the logger and classifier
func (a *app) setup() error {
	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.verbose {
		settings.Logging.Verbose = true
	}
	a.settings = settings

	a.triggers, err = settings.Trigger.Settings()
	if err != nil {
		return fmt.Errorf("invalid trigger settings: %w", err)
	}

	a.logger, err = logging.New(settings.Logging)
	if err != nil {
		return err
	}

	a.registry = status.NewRegistry()
	a.cls = classifier.New(
		classifier.WithLogger(a.logger),
		classifier.WithStatus(a.registry),
	)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
