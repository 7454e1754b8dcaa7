// Package config loads killctx settings from TOML or YAML files and the
// environment. File values override defaults; environment overrides both.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/logging"
	"github.com/lixenwraith/killctx/parameter"
	"github.com/lixenwraith/killctx/streak"
	"github.com/lixenwraith/killctx/trigger"
)

// File is the full settings document
type File struct {
	Classifier classifier.Config `toml:"classifier" yaml:"classifier"`
	Streak     StreakConfig      `toml:"streak" yaml:"streak"`
	Trigger    TriggerConfig     `toml:"trigger" yaml:"trigger"`
	Logging    logging.Options   `toml:"logging" yaml:"logging"`
}

// StreakConfig tunes the streak tracker and bonus tiers
type StreakConfig struct {
	Window time.Duration `toml:"window" yaml:"window" env:"KILLCTX_STREAK_WINDOW"`
	Tiers  []streak.Tier `toml:"tiers" yaml:"tiers" env:"-"`
}

// TriggerConfig selects enabled triggers by name and overrides priorities
// A nil Enabled keeps the default set
type TriggerConfig struct {
	Enabled  []string       `toml:"enabled,omitempty" yaml:"enabled,omitempty" env:"KILLCTX_TRIGGERS" envSeparator:","`
	Priority map[string]int `toml:"priority,omitempty" yaml:"priority,omitempty" env:"-"`
}

// Default returns built-in settings
func Default() File {
	return File{
		Classifier: classifier.DefaultConfig(),
		Streak: StreakConfig{
			Window: parameter.KillstreakWindowDefault,
			Tiers:  streak.DefaultTiers(),
		},
	}
}

// Load reads path over the defaults, then applies the environment
// An empty path skips the file
func Load(path string) (File, error) {
	f := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return f, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := decode(path, data, &f); err != nil {
			return f, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := ApplyEnv(&f); err != nil {
		return f, err
	}
	streak.SortTiers(f.Streak.Tiers)
	return f, nil
}

func decode(path string, data []byte, f *File) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), f)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
		return nil
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(f); err != nil && err != io.EOF {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// ApplyEnv overrides f from KILLCTX_* variables
func ApplyEnv(f *File) error {
	if err := env.Parse(f); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Write encodes f in the named format: toml, yaml or yml
func Write(w io.Writer, f File, format string) error {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		if err := toml.NewEncoder(w).Encode(f); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", format)
	}
	return nil
}

// Settings resolves the trigger section against the defaults
func (c TriggerConfig) Settings() (trigger.Settings, error) {
	s := trigger.DefaultSettings()
	if c.Enabled != nil {
		s.Enabled = make(map[trigger.Trigger]bool, len(c.Enabled))
		for _, name := range c.Enabled {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if strings.EqualFold(name, "all") {
				s.EnableAll()
				continue
			}
			t, err := trigger.ParseTrigger(name)
			if err != nil {
				return s, err
			}
			s.Enabled[t] = true
		}
	}
	for name, p := range c.Priority {
		t, err := trigger.ParseTrigger(name)
		if err != nil {
			return s, err
		}
		s.Priority[t] = p
	}
	return s, nil
}

// Tracker builds a streak tracker from the streak section
func (c StreakConfig) Tracker() *streak.Tracker {
	return streak.NewTracker(c.Window)
}
