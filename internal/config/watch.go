package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of writes to end
// before reloading.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(Config, error)
	fsw      *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64

	done chan struct{}
	once sync.Once
}

// Watch starts watching path. onChange runs on the watcher's goroutine with
// the freshly loaded configuration or the error that prevented loading it.
// The parent directory is watched so editors that replace the file on save
// are still noticed.
func Watch(path string, debounce time.Duration, onChange func(Config, error)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.trigger()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.onChange(Config{}, fmt.Errorf("watch %s: %w", w.path, err))
		case <-w.done:
			return
		}
	}
}

// trigger schedules a reload, replacing any reload still pending.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	seq := w.seq
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stale := seq != w.seq
		if !stale {
			w.timer = nil
		}
		w.mu.Unlock()
		if stale {
			return
		}
		select {
		case <-w.done:
			return
		default:
		}
		w.onChange(Load(w.path))
	})
}

// Close stops watching. Pending reloads are dropped.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		w.seq++
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		err = w.fsw.Close()
	})
	return err
}
