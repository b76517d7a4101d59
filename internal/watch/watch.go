// Package watch notifies a callback when a project file changes on disk,
// adapted from the teacher pack's directory-watching fsnotify.Watcher
// (watch the containing directory so atomic save-and-rename editors still
// fire events, then debounce bursts of events into one callback). Polling
// fallback and filesystem-type detection are dropped: the CLI's watch mode
// only ever targets a local project file, never a network mount.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the handful of events one "save" in an editor
// usually produces (WRITE, CHMOD, sometimes a RENAME+CREATE pair).
const DefaultDebounce = 200 * time.Millisecond

// File watches path and invokes onChange, debounced by debounce, every time
// it is written or re-created. It blocks until ctx is canceled, then
// returns nil; it returns an error if the watcher cannot be started or
// reports an error while watching.
func File(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != absPath {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, onChange)
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
