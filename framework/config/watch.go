package config

import (
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// DefaultWatchDebounce is used by Watch when debounce is zero.
const DefaultWatchDebounce = 200 * time.Millisecond

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Watch reloads path into s under prefix whenever the file changes. The
// directory is watched rather than the file so editors that replace files on
// save are still seen. mu guards s for the duration of each reload; callers
// that read s from other goroutines must hold it too.
//
// A failed reload is logged and leaves the previous values in place.
// A reload merges the file into s: keys removed from the file keep their last
// value, and services already built from s are not rebuilt.
func Watch(path string, s *Store, prefix string, mu sync.Locker, loggers ldlog.Loggers, debounce time.Duration) (io.Closer, error) {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})

	go func() {
		defer close(doneCh)
		var (
			timer  *time.Timer
			timerC <-chan time.Time
		)
		resetTimer := func() {
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
			timerC = timer.C
		}
		reload := func() {
			tree, err := ReadFile(abs)
			if err != nil {
				loggers.Warnf("Config reload failed: path=%q err=%v", abs, err)
				return
			}
			mu.Lock()
			err = s.SetOptions(tree, prefix)
			mu.Unlock()
			if err != nil {
				loggers.Warnf("Config reload failed: path=%q err=%v", abs, err)
				return
			}
			loggers.Infof("Config reloaded: path=%q options=%d", abs, len(tree))
		}

		for {
			select {
			case <-stopCh:
				if timer != nil {
					timer.Stop()
				}
				return
			case <-timerC:
				timerC = nil
				reload()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				loggers.Warnf("Config watcher error: %v", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) == abs && evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
					resetTimer()
				}
			}
		}
	}()

	loggers.Debugf("Watching config file %q", abs)
	return closerFunc(func() error {
		close(stopCh)
		_ = watcher.Close()
		<-doneCh
		return nil
	}), nil
}
