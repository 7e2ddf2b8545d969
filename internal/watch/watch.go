// Package watch re-runs a script whenever its file changes. It backs the
// CLI's -watch mode.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/MapleCCC/importall/internal/logger"
)

// Throttle interval: editors fire bursts of events per save.
const minEventInterval = 2 * time.Second

var lastEvents = struct {
	sync.Mutex
	timestamps map[string]time.Time
}{
	timestamps: make(map[string]time.Time),
}

// shouldProcessEvent throttles events so one file is handled at most once
// per minEventInterval.
func shouldProcessEvent(path string, minInterval time.Duration) bool {
	lastEvents.Lock()
	defer lastEvents.Unlock()

	now := time.Now()
	lastTime, exists := lastEvents.timestamps[path]

	if !exists || now.Sub(lastTime) > minInterval {
		lastEvents.timestamps[path] = now
		return true
	}

	return false
}

// File watches one script file and calls run on every (throttled) write to
// it, after one initial run. It blocks until the watcher fails or the file
// is removed.
func File(script string, run func()) error {
	script = filepath.Clean(script)

	run()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors that replace-on-save break
	// a direct file watch.
	if err := watcher.Add(filepath.Dir(script)); err != nil {
		return err
	}

	logger.Info("watching %s for changes", filepath.Base(script))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != script {
				continue
			}

			if !shouldProcessEvent(event.Name, minEventInterval) {
				continue
			}

			switch {
			case event.Op&fsnotify.Write == fsnotify.Write,
				event.Op&fsnotify.Create == fsnotify.Create:
				logger.Info("change detected: %s", filepath.Base(event.Name))
				run()

			case event.Op&fsnotify.Remove == fsnotify.Remove,
				event.Op&fsnotify.Rename == fsnotify.Rename:
				logger.Info("script removed, stopping watch: %s", filepath.Base(event.Name))
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error: %v", err)
		}
	}
}
