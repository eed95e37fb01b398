package shader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch marks sources as changed whenever their file is written, created or
// renamed over. Directories are watched rather than files so editors that
// save through a temporary file are still noticed. The watcher stops when
// ctx is done.
func Watch(ctx context.Context, sources ...*FileSource) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create shader watcher: %w", err)
	}

	byPath := make(map[string][]*FileSource, len(sources))
	dirs := make(map[string]bool)
	for _, s := range sources {
		byPath[s.path] = append(byPath[s.path], s)
		dirs[filepath.Dir(s.path)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}

	log := slog.With("module", "shader")
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				for _, s := range byPath[filepath.Clean(event.Name)] {
					log.Debug("shader source changed", "path", s.path, "op", event.Op.String())
					s.MarkChanged()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("shader watcher error", "err", err)
			}
		}
	}()
	return nil
}
