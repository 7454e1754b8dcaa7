// Package cue renders a short audio stinger for a classified kill as a beep
// stream. Nothing here opens an audio device; playback belongs to the caller.
package cue

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/killctx/classifier"
)

// Stinger shape
const (
	// SampleRateDefault is used when a non-positive rate is passed
	SampleRateDefault = 44100

	// BaseToneHz is the stinger pitch before zoom scaling (A4)
	BaseToneHz = 440.0

	// BaseToneLength is the stinger length before duration scaling
	BaseToneLength = 250 * time.Millisecond

	// FlashClickHz is the pitch of the click layered over flash kills
	FlashClickHz = 3520.0

	// FlashClickLength is the click length
	FlashClickLength = 30 * time.Millisecond

	// LowHealthToneHz is the drone layered under low health kills
	LowHealthToneHz = 110.0

	// StreakPipHz is the first pip pitch appended after killstreak stingers
	StreakPipHz = 660.0

	// StreakPipLength is the length of each pip
	StreakPipLength = 60 * time.Millisecond

	// StreakPipMax caps the number of pips
	StreakPipMax = 5

	toneAttack  = 5 * time.Millisecond
	toneRelease = 40 * time.Millisecond
)

// ToneLength returns the main tone length for mods
func ToneLength(mods classifier.ContextModifiers) time.Duration {
	secs := mods.EffectiveDuration(BaseToneLength.Seconds())
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// ToneHz returns the main tone pitch for mods
func ToneHz(mods classifier.ContextModifiers) float64 {
	return BaseToneHz * mods.ZoomMultiplier
}

// Stinger builds the audio cue for mods at sampleRate
func Stinger(mods classifier.ContextModifiers, sampleRate int) beep.Streamer {
	if sampleRate <= 0 {
		sampleRate = SampleRateDefault
	}
	rate := beep.SampleRate(sampleRate)

	length := ToneLength(mods)
	if length <= 0 || rate.N(length) == 0 {
		return beep.Silence(0)
	}

	wave := WaveSine
	switch {
	case mods.TriggeredContexts.Has(classifier.ContextCrit):
		wave = WaveSaw
	case mods.IsHeadshot:
		wave = WaveSquare
	}

	lead := withVolume(tone(ToneHz(mods), length, wave, rate), 0.6)

	layers := []beep.Streamer{lead}
	if mods.TriggeredContexts.Has(classifier.ContextLowHealth) {
		layers = append(layers, withVolume(tone(LowHealthToneHz, length, WaveSine, rate), 0.4))
	}
	if mods.TriggerFlash {
		layers = append(layers, withVolume(tone(FlashClickHz, FlashClickLength, WaveNoise, rate), 0.3))
	}

	var out beep.Streamer = lead
	if len(layers) > 1 {
		out = beep.Mix(layers...)
	}

	if mods.TriggeredContexts.Has(classifier.ContextKillstreak) {
		out = beep.Seq(out, streakPips(mods.KillstreakCount, rate))
	}
	return out
}

// streakPips plays a rising run, one pip per kill up to StreakPipMax
func streakPips(count int, rate beep.SampleRate) beep.Streamer {
	n := min(count, StreakPipMax)
	pips := make([]beep.Streamer, 0, n)
	freq := StreakPipHz
	for range n {
		pips = append(pips, withVolume(tone(freq, StreakPipLength, WaveSquare, rate), 0.35))
		// Whole-tone step
		freq *= 1.122462
	}
	return beep.Seq(pips...)
}

// WriteWAV encodes s as 16-bit stereo WAV
func WriteWAV(w io.WriteSeeker, s beep.Streamer, sampleRate int) error {
	if sampleRate <= 0 {
		sampleRate = SampleRateDefault
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(w, s, format); err != nil {
		return fmt.Errorf("failed to encode stinger: %w", err)
	}
	return nil
}
