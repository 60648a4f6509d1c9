// Package watch regenerates the .vscode documents when the project's
// conanfile or project config changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"conanvscode/internal/conan"
	"conanvscode/internal/config"
)

// defaultDebounce coalesces editor save bursts into one regeneration.
const defaultDebounce = 500 * time.Millisecond

// Watcher monitors a project directory and invokes a regenerate callback
// when conanfile.py, conanfile.txt, or the project config file changes.
type Watcher struct {
	projectDir string
	regenerate func(context.Context) error
	logger     *zap.Logger
	debounce   time.Duration
	watcher    *fsnotify.Watcher
}

// New creates a Watcher for projectDir. The regenerate callback is invoked
// from the watch loop; its errors are logged and the loop keeps running,
// since a half-edited conanfile is expected to fail until saved again.
func New(projectDir string, regenerate func(context.Context) error, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		projectDir: projectDir,
		regenerate: regenerate,
		logger:     logger,
		debounce:   defaultDebounce,
		watcher:    fw,
	}, nil
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(w.projectDir); err != nil {
		return err
	}
	w.logger.Info("watching for changes",
		zap.String("dir", w.projectDir),
		zap.Strings("files", watchedFiles()))

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
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

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("change detected",
				zap.String("file", event.Name),
				zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(w.debounce)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := w.regenerate(ctx); err != nil {
				w.logger.Warn("regeneration failed", zap.Error(err))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func watchedFiles() []string {
	return append([]string{config.FileName}, conan.Conanfiles...)
}

func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	for _, watched := range watchedFiles() {
		if name == watched {
			return true
		}
	}
	return false
}
