package cli

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce batches the burst of events an editor save produces.
const watchDebounce = 100 * time.Millisecond

// fileWatcher reports changes to a fixed set of files. It watches their
// directories, since editors often replace a file rather than write it.
type fileWatcher struct {
	w     *fsnotify.Watcher
	files map[string]string // absolute path -> path as given
}

func newFileWatcher(files []string) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &fileWatcher{w: w, files: make(map[string]string, len(files))}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			w.Close()
			return nil, err
		}
		fw.files[abs] = f
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}
	return fw, nil
}

func (fw *fileWatcher) Close() error { return fw.w.Close() }

// relevant maps an event to the watched file it touches, if any.
func (fw *fileWatcher) relevant(ev fsnotify.Event) (string, bool) {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return "", false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return "", false
	}
	f, ok := fw.files[abs]
	return f, ok
}

// run calls onChange with the changed files, in sorted order, until ctx is
// done or the watcher fails.
func (fw *fileWatcher) run(ctx context.Context, onChange func([]string)) error {
	pending := make(map[string]bool)
	var flush <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if f, ok := fw.relevant(ev); ok {
				pending[f] = true
				if flush == nil {
					flush = time.After(watchDebounce)
				}
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			return err
		case <-flush:
			flush = nil
			changed := make([]string, 0, len(pending))
			for f := range pending {
				changed = append(changed, f)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)
			onChange(changed)
		}
	}
}
