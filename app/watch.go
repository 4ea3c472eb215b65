package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"meshview/hal"
)

// Watch reloads the mesh whenever its file changes, until ctx ends. The
// directory is watched so editors that replace the file are noticed too.
func (v *Viewer) Watch(ctx context.Context) error {
	path, err := filepath.Abs(v.cfg.MeshPath)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	hal.Logf(v.log, "viewer: watching %s", path)

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				v.requestReload()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				hal.Logf(v.log, "viewer: watch error: %v", err)
			}
		}
	}()
	return nil
}

// requestReload schedules a reload for the next Step. Requests coalesce.
func (v *Viewer) requestReload() {
	select {
	case v.reloads <- struct{}{}:
	default:
	}
}
