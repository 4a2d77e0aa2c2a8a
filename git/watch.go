package git

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/git-log-pretty/logging"
	"github.com/sirupsen/logrus"
)

// Watcher reports when HEAD or local branches move.
type Watcher struct {
	watcher  *fsnotify.Watcher
	roots    []string
	debounce time.Duration
	logger   *logrus.Entry
}

// NewWatcher watches gitDir, the common dir of a linked worktree, and every
// directory below their refs/heads. Bursts of events closer together than
// debounce are reported once.
func NewWatcher(gitDir string, debounce time.Duration) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  watcher,
		roots:    []string{gitDir},
		debounce: debounce,
		logger:   logging.NewLogger("git-watcher"),
	}
	if common, ok := commonDir(gitDir); ok {
		w.roots = append(w.roots, common)
	}

	for _, root := range w.roots {
		if err := watcher.Add(root); err != nil {
			watcher.Close()
			return nil, err
		}
		if heads := filepath.Join(root, "refs", "heads"); isDir(heads) {
			if err := w.addTree(heads); err != nil {
				watcher.Close()
				return nil, err
			}
		}
	}
	return w, nil
}

// addTree watches dir and every directory below it. Namespaced branches
// such as feature/login live in subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
}

// commonDir reads the commondir file git writes into a linked worktree's
// git directory. It reports false for a main repository.
func commonDir(gitDir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		return "", false
	}
	dir := strings.TrimSpace(string(data))
	if dir == "" {
		return "", false
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(gitDir, dir)
	}
	dir = filepath.Clean(dir)
	if dir == filepath.Clean(gitDir) || !isDir(dir) {
		return "", false
	}
	return dir, true
}

// Run calls onChange after each settled burst of ref updates until ctx is
// cancelled. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.isRefChange(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.addTree(event.Name); err != nil {
					w.logger.WithError(err).WithField("path", event.Name).Warn("Failed to watch new ref directory")
				}
			}
			w.logger.WithField("path", event.Name).Debug("Ref change detected")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("File watcher error")

		case <-fire:
			fire = nil
			onChange()
		}
	}
}

// isRefChange filters out index writes, lock files and other noise.
func (w *Watcher) isRefChange(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".lock") {
		return false
	}
	for _, root := range w.roots {
		if isWithin(filepath.Join(root, "refs", "heads"), path) {
			return true
		}
	}
	return base == "HEAD" || base == "packed-refs"
}

// isWithin reports whether path is strictly below dir.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
