package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Live holds the current configuration. Readers always see a complete
// Config; Store swaps it atomically.
type Live struct {
	cur atomic.Pointer[Config]
}

func NewLive(cfg Config) *Live {
	l := &Live{}
	l.Store(cfg)
	return l
}

func (l *Live) Load() Config {
	return *l.cur.Load()
}

func (l *Live) Store(cfg Config) {
	l.cur.Store(&cfg)
}

// reloadDelay coalesces the burst of events editors produce per save.
const reloadDelay = 100 * time.Millisecond

// Watch reloads path into live whenever the file changes, until ctx is
// done. Invalid files are logged and leave the current config in place.
// onReload, if set, runs after each successful reload.
func Watch(ctx context.Context, path string, live *Live, logger *slog.Logger, onReload func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	// Editors replace files by rename, so watch the directory.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	go func() {
		defer w.Close()
		var timer *time.Timer
		reload := make(chan struct{}, 1)
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDelay, func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})
			case <-reload:
				cfg, err := Load(path)
				if err != nil {
					logger.Warn("config reload failed", "path", path, "error", err)
					continue
				}
				live.Store(cfg)
				logger.Info("config reloaded", "path", path)
				if onReload != nil {
					onReload(cfg)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "error", err)
			}
		}
	}()
	return nil
}
