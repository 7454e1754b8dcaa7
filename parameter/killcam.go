package parameter

import (
	"time"
)

// Context thresholds
const (
	// DistanceThresholdDefault is the long range kill distance (meters, inclusive)
	DistanceThresholdDefault = 20.0

	// LowHealthThresholdDefault is the attacker health ratio at or below which a kill is low health
	LowHealthThresholdDefault = 0.3

	// KillstreakMinimum is the streak count at which the killstreak context fires
	KillstreakMinimum = 3
)

// Modifier factors
const (
	// LongRangeZoomMultiplierDefault scales camera zoom on long range kills
	LongRangeZoomMultiplierDefault = 1.5

	// LongRangeZoomSpeedDefault scales zoom speed on long range kills
	LongRangeZoomSpeedDefault = 1.0

	// LowHealthSlowScaleDefault scales time on low health kills (0.5 = 50% slower)
	LowHealthSlowScaleDefault = 0.5

	// CritZoomMultiplierDefault scales camera zoom on critical kills
	CritZoomMultiplierDefault = 1.3

	// CritZoomSpeedDefault scales zoom speed on critical kills
	CritZoomSpeedDefault = 1.0

	// HeadshotZoomMultiplier is the fixed extra zoom on headshots
	HeadshotZoomMultiplier = 1.2
)

// Color grading
const (
	// ColorGradingModeDefault is the palette used when none is configured
	ColorGradingModeDefault = "Default"

	// ColorGradingIntensityDefault is the base tint alpha
	ColorGradingIntensityDefault = 0.2
)

// LowHealthTint is the fixed red overlay that replaces the palette tint, RGBA
var LowHealthTint = [4]float64{0.3, 0, 0, 0.3}

// Killstreak window
const (
	// KillstreakWindowDefault is the max gap between kills that keeps a streak alive
	KillstreakWindowDefault = 8 * time.Second
)

// Trigger priorities, higher wins
const (
	PriorityTriggerKillstreak = 90
	PriorityTriggerDismember  = 80
	PriorityTriggerHeadshot   = 70
	PriorityTriggerCritical   = 60
	PriorityTriggerLongRange  = 50
	PriorityTriggerLowHealth  = 40
	PriorityTriggerSneak      = 30
	PriorityTriggerBasic      = 0
)

// Demo conversion
const (
	// DemoUnitMeters converts Source engine units to meters (1 unit = 0.75 inch)
	DemoUnitMeters = 0.01905

	// DemoMaxHealth is the player health cap in CS2
	DemoMaxHealth = 100.0
)
