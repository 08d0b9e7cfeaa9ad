package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"soundboard/internal/application"
	"soundboard/internal/domain"
)

// Watcher polls a drop directory and registers new audio files on the
// board under their base name. Lets the user add sounds by copying
// files instead of going through the control API.
type Watcher struct {
	dir       string
	board     *application.Soundboard
	logger    *slog.Logger
	interval  time.Duration
	processed map[string]bool
}

func NewWatcher(dir string, board *application.Soundboard, logger *slog.Logger) *Watcher {
	return &Watcher{
		dir:       dir,
		board:     board,
		logger:    logger,
		interval:  2 * time.Second,
		processed: make(map[string]bool),
	}
}

func (w *Watcher) Run(ctx context.Context) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		w.logger.Error("creating watch dir", "dir", w.dir, "error", err)
		return
	}

	// files already present at startup are not re-added
	w.markExisting()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("watching for new sounds", "dir", w.dir)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *Watcher) markExisting() {
	for _, path := range w.audioFiles() {
		w.processed[path] = true
	}
}

func (w *Watcher) scan() {
	for _, path := range w.audioFiles() {
		if w.processed[path] {
			continue
		}
		w.processed[path] = true

		err := w.board.Add(filepath.Base(path), path)
		switch {
		case err == nil:
			w.logger.Info("sound added from watch dir", "path", path)
		case errors.Is(err, domain.ErrDuplicateID):
			w.logger.Debug("skipping duplicate sound name", "path", path)
		default:
			w.logger.Error("adding watched sound", "path", path, "error", err)
		}
	}
}

func (w *Watcher) audioFiles() []string {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("reading watch dir", "dir", w.dir, "error", err)
		return nil
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".wav", ".mp3", ".ogg", ".oga":
			paths = append(paths, filepath.Join(w.dir, entry.Name()))
		}
	}
	return paths
}
