package app

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lenslab/lensconf/internal/merge"
	"github.com/lenslab/lensconf/internal/render"
)

// debounceWindow coalesces the bursts of fsnotify events an editor save
// produces into a single reload.
const debounceWindow = 200 * time.Millisecond

// cmdWatch resolves the target once, then re-resolves on every manifest
// change until the context is canceled. The last good configuration is
// retained across failed reloads and, when an HTTP port is configured,
// served at /config.
func (a *App) cmdWatch(ctx context.Context, appConfig *Config, overrides []*merge.Override) error {
	name := appConfig.Targets[0]

	state := newWatchState()
	if err := a.refresh(ctx, appConfig, name, overrides, state); err != nil {
		// The initial composition must succeed; afterwards we tolerate
		// transient breakage while the user edits.
		return err
	}

	if appConfig.HTTPPort > 0 {
		a.startConfigServer(appConfig.HTTPPort, state)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// fsnotify does not watch recursively; register every subdirectory.
	err = filepath.WalkDir(appConfig.ConfigDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.logger.Info("Watching manifests for changes.", "dir", appConfig.ConfigDir, "document", name)

	var debounce *time.Timer
	var fired <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Watch stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			a.logger.Debug("Manifest change detected.", "event", event.Op.String(), "path", event.Name)
			if event.Op.Has(fsnotify.Create) {
				// New directories need registering to stay recursive.
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceWindow)
				fired = debounce.C
			} else {
				debounce.Reset(debounceWindow)
			}

		case <-fired:
			debounce = nil
			fired = nil
			if err := a.refresh(ctx, appConfig, name, overrides, state); err != nil {
				a.logger.Error("Reload failed; keeping last good configuration.", "error", err)
				continue
			}
			a.logger.Info("Configuration reloaded.", "document", name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("Watcher error.", "error", watchErr)
		}
	}
}

// refresh reloads the store, re-resolves the target, and publishes the new
// effective configuration to the watch state.
func (a *App) refresh(ctx context.Context, appConfig *Config, name string, overrides []*merge.Override, state *watchState) error {
	if err := a.reload(ctx, appConfig.ConfigDir); err != nil {
		return err
	}
	effective, _, err := a.resolveAndValidate(ctx, name, overrides, appConfig.Lenient)
	if err != nil {
		return err
	}
	encoded, err := render.ToJSON(effective)
	if err != nil {
		return err
	}
	state.publish(encoded)
	return nil
}
