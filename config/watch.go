package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/lixenwraith/killctx/logging"
)

// reloadDelay coalesces the burst of events an editor save produces
const reloadDelay = 100 * time.Millisecond

// Watch reloads path after every change and passes the result to onChange
// It blocks until ctx is done. Files that fail to load are logged and skipped,
// so onChange only ever sees valid settings
func Watch(ctx context.Context, path string, log *zap.Logger, onChange func(File)) error {
	log = logging.OrNop(log).Named("config")

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory so atomic rename saves are seen
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != absPath || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			reload = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", zap.Error(err))

		case <-reload:
			reload = nil
			f, err := Load(path)
			if err != nil {
				log.Warn("config reload failed, keeping previous settings", zap.Error(err))
				continue
			}
			log.Info("config reloaded", zap.String("path", path))
			onChange(f)
		}
	}
}
