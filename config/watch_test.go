package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

// writeUntil rewrites path until a File arrives on ch or the deadline passes
func writeUntil(t *testing.T, path, body string, ch <-chan File) (File, bool) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(150 * time.Millisecond)
	defer tick.Stop()
	for {
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		select {
		case f := <-ch:
			return f, true
		case <-deadline:
			return File{}, false
		case <-tick.C:
		}
	}
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := writeFile(t, "killctx.toml", "[classifier]\ndistance_threshold = 20.0\n")
	ch := make(chan File, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, zaptest.NewLogger(t), func(f File) { ch <- f })
	}()

	f, ok := writeUntil(t, path, "[classifier]\ndistance_threshold = 42.0\n", ch)
	require.True(t, ok, "no reload observed")
	assert.Equal(t, 42.0, f.Classifier.DistanceThreshold)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_SkipsInvalidFile(t *testing.T) {
	path := writeFile(t, "killctx.toml", "[classifier]\ndistance_threshold = 20.0\n")
	ch := make(chan File, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = Watch(ctx, path, nil, func(f File) { ch <- f }) }()

	// Let the watcher settle, then break the file; nothing may be delivered
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[classifier\n"), 0644))
	select {
	case f := <-ch:
		t.Fatalf("invalid file delivered: %+v", f)
	case <-time.After(500 * time.Millisecond):
	}

	f, ok := writeUntil(t, path, "[classifier]\nlow_health_threshold = 0.5\n", ch)
	require.True(t, ok, "no reload observed")
	assert.Equal(t, 0.5, f.Classifier.LowHealthThreshold)
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	path := writeFile(t, "killctx.toml", "")
	ch := make(chan File, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = Watch(ctx, path, nil, func(f File) { ch <- f }) }()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.toml"), []byte("x"), 0644))
	select {
	case <-ch:
		t.Fatal("sibling change triggered reload")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "killctx.toml"), nil, func(File) {})
	assert.Error(t, err)
}
