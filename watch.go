package aspen

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// PackWatcher hot-reloads a pack file: whenever the file changes on disk,
// the pack's full command batch (create, uploads, finalize) is pushed onto a
// Queue. The host drains the queue between frames, so reloads reach the GPU
// through the normal single-threaded execute path.
type PackWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// debounce window after a change event. Editors and asset pipelines write
// packs in multiple syscalls; reloading on the first event reads a torn
// file.
const watchDebounce = 50 * time.Millisecond

// WatchPack loads the pack at path, pushes its command batch onto queue,
// and keeps watching the file, pushing a fresh batch after every change.
// chunkRows bounds the pixel rows per upload chunk as in [Pack.Commands].
// Close the returned watcher to stop.
func WatchPack(path string, queue *Queue, chunkRows int) (*PackWatcher, error) {
	if err := pushPackFile(path, queue, chunkRows); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("aspen: watch pack: %w", err)
	}
	// Watch the directory, not the file: editors that replace-on-save break
	// a direct file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("aspen: watch pack %s: %w", path, err)
	}

	w := &PackWatcher{
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go w.run(path, queue, chunkRows)
	return w, nil
}

// Close stops watching. Safe to call once.
func (w *PackWatcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *PackWatcher) run(path string, queue *Queue, chunkRows int) {
	absPath, _ := filepath.Abs(path)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if abs, _ := filepath.Abs(event.Name); abs != absPath {
				continue
			}
			time.Sleep(watchDebounce)
			if err := pushPackFile(path, queue, chunkRows); err != nil {
				if globalDebug {
					log.Printf("aspen: pack reload failed: %v", err)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if globalDebug {
				log.Printf("aspen: pack watcher: %v", err)
			}
		}
	}
}

// pushPackFile reads the pack at path and pushes its command batch.
func pushPackFile(path string, queue *Queue, chunkRows int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("aspen: watch pack: %w", err)
	}
	defer f.Close()

	pack, err := ReadPack(f)
	if err != nil {
		return err
	}
	queue.Push(pack.Commands(chunkRows)...)
	return nil
}
