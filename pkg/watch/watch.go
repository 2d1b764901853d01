// Package watch reports changes below a directory tree.
//
// A [Watcher] follows every directory below its root, including ones
// created while it runs, and batches events: the callback fires once the
// tree has been quiet for the debounce period, with every changed path
// seen since the previous call.
//
//	w := watch.New("lua", func(p string) bool { return strings.HasSuffix(p, ".lua") }, logger)
//	err := w.Run(ctx, func(ctx context.Context, changed []string) error {
//	    _, err := runner.Execute(ctx, opts)
//	    return err
//	})
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch is delivered.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc handles one batch of changed paths. Errors are logged and do
// not stop the watcher.
type ChangeFunc func(ctx context.Context, changed []string) error

// Watcher watches a directory tree.
type Watcher struct {
	Root     string
	Filter   func(path string) bool // nil accepts every file
	Debounce time.Duration
	Logger   *log.Logger
}

// New creates a watcher with the default debounce period.
func New(root string, filter func(string) bool, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{Root: root, Filter: filter, Debounce: DefaultDebounce, Logger: logger}
}

// Run blocks until ctx is done, calling fn for each batch of changes.
// Calls to fn never overlap.
func (w *Watcher) Run(ctx context.Context, fn ChangeFunc) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if _, err := w.addTree(fw, w.Root); err != nil {
		return err
	}
	w.Logger.Info("watching for changes", "root", w.Root)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			changed := w.handle(fw, event)
			if len(changed) == 0 {
				continue
			}
			for _, p := range changed {
				pending[p] = true
			}
			// Restart the quiet period on every relevant event.
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watch error", "error", err)

		case <-timer.C:
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			sort.Strings(batch)
			clear(pending)

			w.Logger.Debug("detected changes", "files", len(batch))
			if err := fn(ctx, batch); err != nil {
				w.Logger.Error("regeneration failed", "error", err)
			}
		}
	}
}

// handle returns the relevant paths touched by event. New directories are
// added to the watch list and their existing files reported, since they
// may have been written before the watch was in place.
func (w *Watcher) handle(fw *fsnotify.Watcher, event fsnotify.Event) []string {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			files, err := w.addTree(fw, event.Name)
			if err != nil {
				w.Logger.Warn("watch directory", "path", event.Name, "error", err)
			}
			return files
		}
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return nil
	}
	if !w.accept(event.Name) {
		return nil
	}
	return []string{event.Name}
}

// addTree watches dir and every directory below it, skipping hidden ones,
// and returns the accepted files found.
func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			if w.accept(p) {
				files = append(files, p)
			}
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
	return files, err
}

func (w *Watcher) accept(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	return w.Filter == nil || w.Filter(path)
}
