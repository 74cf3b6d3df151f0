package codebase

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher keeps a Codebase current between edits made outside the
// editor: it polls the root directory on a fixed interval, re-indexing any
// .c/.h file whose modification time has advanced and dropping any file
// that has disappeared. It carries no OS-level file notification
// dependency, matching the indexer's own synchronous, dependency-free scan.
type FileWatcher struct {
	codebase     *Codebase
	out          io.Writer
	onChange     func(path string)
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

// NewFileWatcher returns a FileWatcher for c, polling once per second and
// logging change activity to stderr.
func NewFileWatcher(c *Codebase) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		out:          os.Stderr,
		stopCh:       make(chan struct{}),
		pollInterval: time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

// SetOutput redirects change-activity logging, mainly for tests.
func (w *FileWatcher) SetOutput(out io.Writer) {
	w.out = out
}

// OnChange registers fn to be called with the path of every file the
// watcher re-indexes or removes. Only one callback may be registered.
func (w *FileWatcher) OnChange(fn func(path string)) {
	w.onChange = fn
}

// Start begins polling in the background.
func (w *FileWatcher) Start() {
	go w.run()
}

// Stop ends the polling loop.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.poll()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

// poll walks the tree once, re-indexing every changed .c/.h file and
// pruning every file that vanished since the previous poll.
func (w *FileWatcher) poll() {
	seen := make(map[string]bool, len(w.modTimes))

	filepath.Walk(w.codebase.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != "." && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSourceFile(path) {
			return nil
		}

		seen[path] = true
		w.checkModified(path, info.ModTime())
		return nil
	})

	w.pruneDeleted(seen)
}

// checkModified re-indexes path if it is new or its modification time has
// advanced since the last poll that saw it.
func (w *FileWatcher) checkModified(path string, modTime time.Time) {
	lastMod, known := w.modTimes[path]
	if known && !modTime.After(lastMod) {
		return
	}

	w.modTimes[path] = modTime
	w.codebase.ScanFile(path)

	if known {
		fmt.Fprintf(w.out, "[watch] reindexed %s\n", path)
	} else {
		fmt.Fprintf(w.out, "[watch] indexed %s\n", path)
	}
	w.notify(path)
}

// pruneDeleted drops every previously seen file that this poll no longer
// found on disk.
func (w *FileWatcher) pruneDeleted(seen map[string]bool) {
	for path := range w.modTimes {
		if seen[path] {
			continue
		}
		delete(w.modTimes, path)
		w.codebase.RemoveFile(path)
		fmt.Fprintf(w.out, "[watch] removed %s\n", path)
		w.notify(path)
	}
}

func (w *FileWatcher) notify(path string) {
	if w.onChange != nil {
		w.onChange(path)
	}
}
