package pattern

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
)

// DirLoader combines a base catalog (usually one of the embedded defaults)
// with user pattern files from a directory, and can keep the merged catalog
// current as files in that directory change.
type DirLoader struct {
	mu       sync.RWMutex
	base     *Catalog
	dir      string
	merged   *Catalog
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onChange func(event string, path string)
}

// NewDirLoader loads user catalogs from dir on top of base. A nonexistent
// directory is fine: the merged catalog is then just a copy of base.
func NewDirLoader(base *Catalog, dir string) (*DirLoader, error) {
	l := &DirLoader{base: base, dir: dir}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Catalog returns the current merged catalog.
func (l *DirLoader) Catalog() *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.merged
}

// Reload rebuilds the merged catalog from the base and the directory. On
// error the previous merged catalog stays in place.
func (l *DirLoader) Reload() error {
	merged := l.base.Clone()
	user, err := LoadDirectory(l.dir)
	if err != nil {
		return err
	}
	if err := merged.Merge(user); err != nil {
		return err
	}

	l.mu.Lock()
	l.merged = merged
	l.mu.Unlock()
	return nil
}

// SetOnChange sets a callback invoked after a directory change has been
// applied. The event is one of "create", "modify", "remove".
func (l *DirLoader) SetOnChange(fn func(event string, path string)) {
	l.onChange = fn
}

// Watch starts watching the pattern directory for changes.
func (l *DirLoader) Watch() error {
	if l.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	l.watcher = watcher
	l.stopChan = make(chan struct{})

	go l.watchLoop()

	if err := watcher.Add(l.dir); err != nil {
		l.watcher.Close()
		return fmt.Errorf("watching directory %s: %w", l.dir, err)
	}

	return nil
}

// watchLoop handles file system events.
func (l *DirLoader) watchLoop() {
	for {
		select {
		case <-l.stopChan:
			return

		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}

			// Only process YAML files
			if !strings.HasSuffix(event.Name, ".yaml") && !strings.HasSuffix(event.Name, ".yml") {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				l.handleChange(event.Name, "create")

			case event.Op&fsnotify.Write == fsnotify.Write:
				l.handleChange(event.Name, "modify")

			case event.Op&fsnotify.Remove == fsnotify.Remove:
				l.handleChange(event.Name, "remove")

			case event.Op&fsnotify.Rename == fsnotify.Rename:
				l.handleChange(event.Name, "remove")
			}

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("pattern directory watch error", "dir", l.dir, "err", err)
		}
	}
}

// handleChange rebuilds the whole merged catalog. Catalogs are small, and a
// full rebuild keeps priority order correct regardless of which file moved.
func (l *DirLoader) handleChange(path string, eventType string) {
	if err := l.Reload(); err != nil {
		slog.Warn("pattern reload failed; keeping previous catalog",
			"dir", l.dir, "file", path, "err", err)
		return
	}

	if l.onChange != nil {
		l.onChange(eventType, path)
	}
}

// StopWatch stops watching the pattern directory.
func (l *DirLoader) StopWatch() {
	if l.stopChan != nil {
		close(l.stopChan)
		l.stopChan = nil
	}

	if l.watcher != nil {
		l.watcher.Close()
		l.watcher = nil
	}
}
