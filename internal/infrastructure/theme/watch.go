package theme

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports edits to theme files so the UI can re-apply the
// active palette without restarting.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan string
	once   sync.Once
}

// Watch observes the themes directory, creating it if needed. Each
// write or create of a theme file emits the theme's name.
func Watch(dir string) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	w := &Watcher{fs: fw, events: make(chan string, 8)}
	go w.loop()
	return w, nil
}

// Events yields the names of edited themes.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops the watcher and closes the event channel.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() { err = w.fs.Close() })
	return err
}

func (w *Watcher) loop() {
	defer close(w.events)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			base := filepath.Base(ev.Name)
			ext := filepath.Ext(base)
			if !strings.EqualFold(ext, ".yaml") && !strings.EqualFold(ext, ".yml") {
				continue
			}
			// Drop events rather than block the notify pump.
			select {
			case w.events <- strings.TrimSuffix(base, ext):
			default:
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}
