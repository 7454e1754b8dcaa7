package classifier

import (
	"github.com/lixenwraith/killctx/parameter"
)

// Config holds the tunable thresholds and factors
// Values are not validated; callers keep them sane
type Config struct {
	// DistanceThreshold is the inclusive long range distance (meters)
	DistanceThreshold float64 `toml:"distance_threshold" yaml:"distance_threshold" env:"KILLCTX_DISTANCE_THRESHOLD"`

	// LowHealthThreshold is the inclusive attacker health ratio for low health
	LowHealthThreshold float64 `toml:"low_health_threshold" yaml:"low_health_threshold" env:"KILLCTX_LOW_HEALTH_THRESHOLD"`

	LongRangeZoomMultiplier float64 `toml:"long_range_zoom_multiplier" yaml:"long_range_zoom_multiplier" env:"KILLCTX_LONG_RANGE_ZOOM"`
	LongRangeZoomSpeed      float64 `toml:"long_range_zoom_speed" yaml:"long_range_zoom_speed" env:"KILLCTX_LONG_RANGE_ZOOM_SPEED"`
	LowHealthSlowScale      float64 `toml:"low_health_slow_scale" yaml:"low_health_slow_scale" env:"KILLCTX_LOW_HEALTH_SLOW_SCALE"`
	CritZoomMultiplier      float64 `toml:"crit_zoom_multiplier" yaml:"crit_zoom_multiplier" env:"KILLCTX_CRIT_ZOOM"`
	CritZoomSpeed           float64 `toml:"crit_zoom_speed" yaml:"crit_zoom_speed" env:"KILLCTX_CRIT_ZOOM_SPEED"`

	// ColorGradingMode names a palette; unknown names use the default palette
	ColorGradingMode string `toml:"color_grading_mode" yaml:"color_grading_mode" env:"KILLCTX_COLOR_GRADING_MODE"`

	// ColorGradingIntensity is the base tint alpha
	ColorGradingIntensity float64 `toml:"color_grading_intensity" yaml:"color_grading_intensity" env:"KILLCTX_COLOR_GRADING_INTENSITY"`
}

// DefaultConfig returns the stock tuning
func DefaultConfig() Config {
	return Config{
		DistanceThreshold:       parameter.DistanceThresholdDefault,
		LowHealthThreshold:      parameter.LowHealthThresholdDefault,
		LongRangeZoomMultiplier: parameter.LongRangeZoomMultiplierDefault,
		LongRangeZoomSpeed:      parameter.LongRangeZoomSpeedDefault,
		LowHealthSlowScale:      parameter.LowHealthSlowScaleDefault,
		CritZoomMultiplier:      parameter.CritZoomMultiplierDefault,
		CritZoomSpeed:           parameter.CritZoomSpeedDefault,
		ColorGradingMode:        parameter.ColorGradingModeDefault,
		ColorGradingIntensity:   parameter.ColorGradingIntensityDefault,
	}
}
