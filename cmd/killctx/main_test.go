package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/demo"
	"github.com/lixenwraith/killctx/store"
	"github.com/lixenwraith/killctx/trigger"
)

// execute runs the CLI with args and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestClassifyText(t *testing.T) {
	out, err := execute(t, "classify", "--distance", "30", "--headshot", "--streak", "5", "--unaware")
	require.NoError(t, err)
	assert.Contains(t, out, "trigger      Headshot")
	assert.Contains(t, out, "debug        LongRange(30.0m), Headshot, Killstreak(x5), Sneak, Dismember(HeadshotKill)")
	assert.Contains(t, out, "duration     x1.00 (+0.80s)")
}

func TestClassifyYAML(t *testing.T) {
	out, err := execute(t, "classify", "--health", "10", "--crit", "-o", "yaml")
	require.NoError(t, err)

	var res classifyResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"Crit", "LowHealth"}, res.Contexts)
	assert.Equal(t, "LowHealth(10%), Crit", res.DebugInfo)
	assert.Equal(t, []float64{0.3, 0, 0, 0.3}, res.ScreenTint)
	assert.True(t, res.TriggerFlash)
}

func TestClassifyStatsAndPalette(t *testing.T) {
	out, err := execute(t, "classify", "--palette", "noir", "--stats", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "screen_tint: [0.1, 0.1, 0.1, 0.2]")
	assert.Contains(t, out, "classify.count")
}

func TestClassifyWritesCue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cue.wav")
	_, err := execute(t, "classify", "--wav", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("RIFF")))
}

func TestClassifyBadOutput(t *testing.T) {
	_, err := execute(t, "classify", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "killctx.toml")
	require.NoError(t, os.WriteFile(path, []byte("[classifier]\ndistance_threshold = 50.0\n\n[trigger]\nenabled = [\"all\"]\n"), 0644))
	t.Setenv("KILLCTX_CRIT_ZOOM", "2.5")

	out, err := execute(t, "--config", path, "config", "show", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "distance_threshold: 50")
	assert.Contains(t, out, "crit_zoom_multiplier: 2.5")

	out, err = execute(t, "--config", path, "classify", "--distance", "30", "--crit")
	require.NoError(t, err)
	assert.Contains(t, out, "trigger      Critical")
	assert.Contains(t, out, "debug        Crit")
}

func TestBadConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.ini"), "classify")
	assert.Error(t, err)
}

func TestDemoMissingFile(t *testing.T) {
	_, err := execute(t, "demo", filepath.Join(t.TempDir(), "missing.dem"))
	assert.ErrorContains(t, err, "failed to open demo")
}

func TestPrintRecords(t *testing.T) {
	records := []demo.KillRecord{
		{Tick: 100, Killer: "alice", Victim: "bob", Weapon: "AK-47", Modifier: classifier.ContextModifiers{DebugInfo: "Headshot", TriggeredContexts: classifier.ContextHeadshot}},
		{Tick: 200, Killer: "bob", Victim: "carol", Weapon: "Glock-18"},
	}

	var buf bytes.Buffer
	printRecords(&buf, records, true)
	assert.Contains(t, buf.String(), "alice")
	assert.NotContains(t, buf.String(), "carol")
	assert.Contains(t, buf.String(), "1 of 2 kills")
}

func TestHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "kills.db")
	db, err := store.Open(dbPath)
	require.NoError(t, err)
	records := []demo.KillRecord{
		{Tick: 1, Killer: "a", Victim: "b", Trigger: trigger.Headshot},
		{Tick: 2, Killer: "a", Victim: "c", Trigger: trigger.Headshot},
		{Tick: 3, Killer: "c", Victim: "a", Trigger: trigger.Basic},
	}
	require.NoError(t, db.SaveDemo(context.Background(), "match1.dem", time.Now(), records))
	require.NoError(t, db.Close())

	out, err := execute(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "match1.dem\n", out)

	out, err = execute(t, "history", "--db", dbPath, "match1.dem")
	require.NoError(t, err)
	assert.Regexp(t, `(?s)Headshot\s+2.*BasicKill\s+1.*3 kills`, out)

	_, err = execute(t, "history", "--db", dbPath, "missing.dem")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPrintTriggerCounts_Order(t *testing.T) {
	var buf bytes.Buffer
	printTriggerCounts(&buf, map[string]int{"Sneak": 1, "Critical": 1, "Headshot": 4})
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 5)
	assert.True(t, bytes.HasPrefix(lines[1], []byte("Headshot")))
	assert.True(t, bytes.HasPrefix(lines[2], []byte("Critical")))
	assert.True(t, bytes.HasPrefix(lines[3], []byte("Sneak")))
	assert.Equal(t, "6 kills", string(lines[4]))
}
