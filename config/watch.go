package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Reload is one hot-reload outcome. When Err is set the caller keeps its
// current settings.
type Reload struct {
	Config Config
	Err    error
}

// Watcher reloads config.toml whenever it changes on disk. The profile
// directory is watched rather than the file so that editors replacing the
// file by rename are still seen.
type Watcher struct {
	dir     string
	fsw     *fsnotify.Watcher
	reloads chan Reload
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// Watch starts watching profileDir.
func Watch(profileDir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := fsw.Add(profileDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", profileDir, err)
	}
	w := &Watcher{
		dir:     profileDir,
		fsw:     fsw,
		reloads: make(chan Reload, 1),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Reloads delivers the latest reload. Older undelivered reloads are dropped.
func (w *Watcher) Reloads() <-chan Reload { return w.reloads }

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	target := filepath.Clean(Path(w.dir))
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.dir)
			w.publish(Reload{Config: cfg, Err: err})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.publish(Reload{Err: fmt.Errorf("config watcher: %w", err)})
		}
	}
}

func (w *Watcher) publish(r Reload) {
	for {
		select {
		case w.reloads <- r:
			return
		default:
		}
		select {
		case <-w.reloads:
		default:
		}
	}
}
