package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/iw2rmb/autotab/internal/logx"
)

const reloadDebounce = 100 * time.Millisecond

// Watch reloads path into st whenever the file changes, until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are handled. Invalid files are logged and leave st unchanged.
func Watch(ctx context.Context, path string, st *Store, logger *log.Logger) error {
	logger = logx.OrDiscard(logger)
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch settings: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch settings: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("watch settings: %w", err)
	}

	go func() {
		defer w.Close()
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				fire = time.After(reloadDebounce)
			case <-fire:
				fire = nil
				reload(abs, st, logger)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("settings watcher error", "err", err)
			}
		}
	}()
	return nil
}

func reload(path string, st *Store, logger *log.Logger) {
	s, err := Load(path)
	if err != nil {
		logger.Warn("settings reload rejected", "path", path, "err", err)
		return
	}
	if err := st.Set(s); err != nil {
		logger.Warn("settings reload rejected", "path", path, "err", err)
		return
	}
	logger.Info("settings reloaded", "path", path)
}
