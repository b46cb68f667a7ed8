package logtail

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrLogGone reports that the tailed file was removed or renamed away
var ErrLogGone = errors.New("log file removed or renamed")

// Watcher turns filesystem notifications for one file into poll-loop
// wake-ups. It watches the parent directory so removal and rename of the file
// itself are visible.
type Watcher struct {
	fs   *fsnotify.Watcher
	path string
	log  *zap.SugaredLogger

	wake chan struct{}
	errs chan error
	wg   sync.WaitGroup
}

// NewWatcher starts watching path
func NewWatcher(path string, log *zap.SugaredLogger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fs:   fsw,
		path: abs,
		log:  log,
		wake: make(chan struct{}, 1),
		errs: make(chan error, 1),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				w.log.Debugw("log file event", "op", ev.Op.String(), "path", ev.Name)
				select {
				case w.errs <- fmt.Errorf("%s: %w", w.path, ErrLogGone):
				default:
				}
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
				select {
				case w.wake <- struct{}{}:
				default:
				}
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Debugw("watcher error", "error", err)
		}
	}
}

// Wake delivers a value whenever the file was written to. Bursts coalesce.
func (w *Watcher) Wake() <-chan struct{} {
	return w.wake
}

// Errors delivers ErrLogGone when the file disappears
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher and waits for its goroutine
func (w *Watcher) Close() error {
	err := w.fs.Close()
	w.wg.Wait()
	return err
}
