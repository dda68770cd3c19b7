package batch

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDelay coalesces the write-event bursts editors produce when
// saving a file.
const debounceDelay = 200 * time.Millisecond

// Watch re-processes each named file whenever it changes, until the
// context is cancelled. Only the given paths are watched; there is no
// directory discovery.
func (r *Runner) Watch(ctx context.Context, paths []string) error {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, p := range paths {
		if err := watcher.Add(p); err != nil {
			return err
		}
	}
	log.Info("watching files", zap.Int("count", len(paths)))

	pending := make(map[string]bool)
	timer := time.NewTimer(debounceDelay)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending[ev.Name] = true
			timer.Reset(debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))

		case <-timer.C:
			for path := range pending {
				fr := r.processFile(path, log)
				if fr.Err != nil {
					continue
				}
				log.Debug("reprocessed",
					zap.String("path", path),
					zap.Int("converted", fr.Converted))
				// Our own write triggers one more event; re-arm the watch
				// for editors that replace the file on save.
				_ = watcher.Add(path)
			}
			pending = make(map[string]bool)
		}
	}
}
