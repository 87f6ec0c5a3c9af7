package backend

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports data files that change on disk. It watches the directory
// of each file so files replaced by a rename are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	lock    sync.Mutex
	files   map[string]bool
	dirs    map[string]int
}

func NewWatcher() (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	return &Watcher{
		watcher: watcher,
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
	}, nil
}

func (w *Watcher) Add(path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.lock.Lock()
	defer w.lock.Unlock()
	if w.files[path] {
		return nil
	}
	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed watching %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[path] = true
	return nil
}

func (w *Watcher) Remove(path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.lock.Lock()
	defer w.lock.Unlock()
	if !w.files[path] {
		return nil
	}
	delete(w.files, path)
	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	return w.watcher.Remove(dir)
}

func (w *Watcher) watching(path string) bool {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.files[path]
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run calls changed with the absolute path of every watched file that is
// written or recreated until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, changed func(path string)) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path, err := filepath.Abs(ev.Name)
			if err == nil && w.watching(path) {
				changed(path)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher: %v", err)
		}
	}
}
