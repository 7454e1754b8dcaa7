package cue

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/killctx/classifier"
)

const testRate = 44100

// drain pulls s to the end and returns every sample
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer did not terminate")
	return nil
}

func identity() classifier.ContextModifiers {
	return classifier.ContextModifiers{
		DurationMultiplier:  1,
		SlowScaleMultiplier: 1,
		ZoomMultiplier:      1,
		ZoomSpeedMultiplier: 1,
	}
}

// crossings counts sign changes in the left channel
func crossings(samples [][2]float64) int {
	n := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1][0] < 0) != (samples[i][0] < 0) {
			n++
		}
	}
	return n
}

func TestStinger_LengthFollowsDuration(t *testing.T) {
	rate := beep.SampleRate(testRate)

	plain := drain(t, Stinger(identity(), testRate))
	assert.Len(t, plain, rate.N(BaseToneLength))

	slow := identity()
	slow.DurationMultiplier = 2
	assert.Len(t, drain(t, Stinger(slow, testRate)), rate.N(2*BaseToneLength))

	bonus := identity()
	bonus.BonusDuration = 0.25
	assert.Len(t, drain(t, Stinger(bonus, testRate)), rate.N(2*BaseToneLength))
}

func TestStinger_ZeroDurationIsSilent(t *testing.T) {
	mods := identity()
	mods.DurationMultiplier = 0
	assert.Empty(t, drain(t, Stinger(mods, testRate)))
	assert.Equal(t, time.Duration(0), ToneLength(mods))
}

func TestStinger_DefaultRate(t *testing.T) {
	got := drain(t, Stinger(identity(), 0))
	assert.Len(t, got, beep.SampleRate(SampleRateDefault).N(BaseToneLength))
}

func TestTone_PitchFollowsZoom(t *testing.T) {
	rate := beep.SampleRate(testRate)
	mods := identity()
	low := crossings(drain(t, tone(ToneHz(mods), 500*time.Millisecond, WaveSine, rate)))

	mods.ZoomMultiplier = 2
	high := crossings(drain(t, tone(ToneHz(mods), 500*time.Millisecond, WaveSine, rate)))

	// 440 Hz over half a second is about 440 crossings
	assert.InDelta(t, 440, low, 4)
	assert.InDelta(t, 2*low, high, 4)
}

func TestStinger_Layers(t *testing.T) {
	rate := beep.SampleRate(testRate)
	base := rate.N(BaseToneLength)

	mods := identity()
	mods.TriggerFlash = true
	mods.TriggeredContexts = classifier.ContextLowHealth
	got := drain(t, Stinger(mods, testRate))
	assert.InDelta(t, base, len(got), 512)
	assert.NotZero(t, peak(got))
}

func TestStinger_KillstreakAppendsPips(t *testing.T) {
	rate := beep.SampleRate(testRate)
	base := rate.N(BaseToneLength)
	pip := rate.N(StreakPipLength)

	mods := identity()
	mods.TriggeredContexts = classifier.ContextKillstreak
	mods.KillstreakCount = 4
	assert.Len(t, drain(t, Stinger(mods, testRate)), base+4*pip)

	mods.KillstreakCount = 40
	assert.Len(t, drain(t, Stinger(mods, testRate)), base+StreakPipMax*pip)
}

func TestEnvelope_StartsAndEndsQuiet(t *testing.T) {
	rate := beep.SampleRate(testRate)
	got := drain(t, tone(1000, 100*time.Millisecond, WaveSquare, rate))
	require.NotEmpty(t, got)
	assert.Zero(t, got[0][0])
	assert.Less(t, abs(got[len(got)-1][0]), 0.01)
	assert.InDelta(t, 1.0, peak(got), 1e-9)
}

func TestEnvelope_ShortToneSplitsRamps(t *testing.T) {
	rate := beep.SampleRate(testRate)
	e := newEnvelope(newOscillator(100, 10*time.Millisecond, WaveSine, rate), 10*time.Millisecond, toneAttack, toneRelease, rate)
	assert.Equal(t, e.total, e.attack+e.release)
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cue.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, WriteWAV(f, Stinger(identity(), testRate), testRate))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 44)
	assert.True(t, bytes.HasPrefix(data, []byte("RIFF")))
	// 16-bit stereo payload after the 44 byte header
	assert.Equal(t, beep.SampleRate(testRate).N(BaseToneLength)*4, len(data)-44)
}

func peak(samples [][2]float64) float64 {
	p := 0.0
	for _, s := range samples {
		p = max(p, abs(s[0]))
	}
	return p
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
