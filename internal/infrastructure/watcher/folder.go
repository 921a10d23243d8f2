package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"cert-checker/internal/entity"
	"cert-checker/internal/usecase"
)

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// FolderWatcher signals on C when certificate files in a folder change.
// Bursts of events within the debounce window produce a single signal.
type FolderWatcher struct {
	folder   string
	debounce time.Duration
	logger   usecase.Logger

	watcher  *fsnotify.Watcher
	trigger  chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once

	mu    sync.Mutex
	timer *time.Timer
}

func NewFolderWatcher(folder string, debounce time.Duration, logger usecase.Logger) (*FolderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FolderWatcher{
		folder:   folder,
		debounce: debounce,
		logger:   logger,
		watcher:  w,
		trigger:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}, nil
}

// C is never closed.
func (w *FolderWatcher) C() <-chan struct{} {
	return w.trigger
}

func (w *FolderWatcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.folder); err != nil {
		return err
	}

	w.logger.Infof("Watching %s for certificate changes (debounce %s)", w.folder, w.debounce)
	go w.watchLoop(ctx)
	return nil
}

func (w *FolderWatcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	})
	return nil
}

func (w *FolderWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debugf("Certificate change detected: %s %s", event.Op, event.Name)
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Folder watcher error: %v", err)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Op&relevantOps != 0 && entity.HasCertExtension(filepath.Base(event.Name))
}

func (w *FolderWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *FolderWatcher) fire() {
	select {
	case <-w.stopCh:
		return
	default:
	}

	select {
	case w.trigger <- struct{}{}:
	default:
		// a rescan is already pending
	}
}
