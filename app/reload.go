package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDelay = 150 * time.Millisecond

// paramWatcher reports when the parameter file changes. Bursts of events (editors
// often write, chmod and rename) collapse into one notification.
type paramWatcher struct {
	w       *fsnotify.Watcher
	path    string
	pending chan struct{}
	log     *zap.SugaredLogger
}

// watchParams watches the directory holding path so that atomic replace-by-rename
// saves are still seen.
func watchParams(path string, delay time.Duration, log *zap.SugaredLogger) (*paramWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch params: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch params: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch params: %w", err)
	}

	pw := &paramWatcher{
		w:       w,
		path:    abs,
		pending: make(chan struct{}, 1),
		log:     log,
	}
	go pw.loop(debounce.New(delay))
	return pw, nil
}

func (pw *paramWatcher) loop(debounced func(func())) {
	for {
		select {
		case ev, ok := <-pw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != pw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			debounced(pw.signal)
		case err, ok := <-pw.w.Errors:
			if !ok {
				return
			}
			pw.log.Warnw("params watch error", "error", err)
		}
	}
}

func (pw *paramWatcher) signal() {
	select {
	case pw.pending <- struct{}{}:
	default:
	}
}

// Changed reports, without blocking, whether the file changed since the last call.
func (pw *paramWatcher) Changed() bool {
	select {
	case <-pw.pending:
		return true
	default:
		return false
	}
}

func (pw *paramWatcher) Close() error { return pw.w.Close() }
