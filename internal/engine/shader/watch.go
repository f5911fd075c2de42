package shader

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/mirror-room/internal/logger"
)

// Watcher reports changes to the shader sources in a directory. Events are
// posted from a background goroutine to a buffered channel that the render
// thread drains between frames.
type Watcher struct {
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	log     *zap.Logger
}

// NewWatcher starts watching dir.
func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating shader watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{
		watcher: fw,
		changes: make(chan string, 16),
		done:    make(chan struct{}),
		log:     logger.Named("shader"),
	}
	go w.run()
	return w, nil
}

// IsSource reports whether path names one of the shader source files.
func IsSource(path string) bool {
	switch filepath.Base(path) {
	case VertexFile, FragmentFile:
		return true
	}
	return false
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !IsSource(event.Name) {
				continue
			}
			select {
			case w.changes <- event.Name:
			default:
				// A reload is already pending.
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("shader watcher error", zap.Error(err))
		}
	}
}

// Pending drains every queued change and reports whether there was any.
func (w *Watcher) Pending() bool {
	changed := false
	for {
		select {
		case name := <-w.changes:
			w.log.Debug("shader source changed", zap.String("file", name))
			changed = true
		default:
			return changed
		}
	}
}

// Close stops watching and waits for the background goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
