// File: watcher.go
// Title: Script File Watcher
// Description: Re-runs a turtle script whenever its file changes. The
//              parent directory is watched so editors that replace the file
//              on save are still followed; bursts of events are collapsed
//              by a trailing debounce.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-14
// Modified: 2026-10-14
//
// Change History:
// - 2026-10-14 v0.1.0: Initial implementation

package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	mdwlog "github.com/msto63/mlogo/foundation/core/log"
)

// DefaultDebounce is used when Options.Debounce is zero
const DefaultDebounce = 100 * time.Millisecond

// ChangeFunc receives the script text after each change
type ChangeFunc func(ctx context.Context, script string)

// Options configures a watcher
type Options struct {
	Path     string
	Debounce time.Duration
	Logger   *mdwlog.Logger
	OnChange ChangeFunc
}

// Watcher follows one script file
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *mdwlog.Logger
	onChange ChangeFunc
}

// New validates the options and creates a watcher
func New(opts Options) (*Watcher, error) {
	if opts.OnChange == nil {
		return nil, fmt.Errorf("watch: OnChange is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("watch: failed to resolve %s: %w", opts.Path, err)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	return &Watcher{
		path:     path,
		debounce: opts.Debounce,
		logger:   opts.Logger.WithField("component", "turtle-watch"),
		onChange: opts.OnChange,
	}, nil
}

// Run performs the script once and then again after every change until ctx
// is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	w.logger.Info("Watching script", mdwlog.Fields{"path": w.path})
	w.fire(ctx)

	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Stopping script watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					w.logger.Debug("Script file moved away", mdwlog.Fields{"op": event.Op.String()})
				}
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			pending = timer.C

		case <-pending:
			pending = nil
			w.fire(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnWithErr("Watcher error", err)
		}
	}
}

func (w *Watcher) fire(ctx context.Context) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.logger.WarnWithErr("Failed to read script", err, mdwlog.Fields{"path": w.path})
		return
	}
	w.onChange(ctx, string(data))
}
