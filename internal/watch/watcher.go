package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/penwyp/go-timeline-export/internal/util"
)

// FileEvent describes one change to an export file under the watched tree.
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher watches a directory tree for changes to .json export files.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	root    string
	events  chan FileEvent
}

func NewFileWatcher(root string) (*FileWatcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch %s: not a directory", root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		root:    root,
		events:  make(chan FileEvent, 100),
	}

	if err := fw.addTree(root); err != nil {
		watcher.Close()
		return nil, err
	}

	go fw.processEvents()

	return fw, nil
}

// addTree recursively registers every directory under path.
func (fw *FileWatcher) addTree(path string) error {
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() {
			return fw.watcher.Add(p)
		}

		return nil
	})
}

func (fw *FileWatcher) processEvents() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// Monthly exports arrive in fresh year directories; start
			// watching those as they appear.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					fw.addTree(event.Name)
					continue
				}
			}

			if strings.HasSuffix(strings.ToLower(event.Name), ".json") {
				fw.events <- FileEvent{
					Path:      event.Name,
					Operation: event.Op.String(),
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
