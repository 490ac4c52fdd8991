package sources

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/configuration"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging/slog"
	"github.com/fsnotify/fsnotify"
)

// reloadDelay debounces editors that write a file in several steps.
const reloadDelay = 200 * time.Millisecond

var _ configuration.IConfigurationSource = (*FileConfigurationSource)(nil)

type FileConfigurationSource struct {
	Path           string
	Optional       bool
	ReloadOnChange bool
}

func (ss *FileConfigurationSource) BuildConfigurationProvider(builder configuration.IConfigurationBuilder) configuration.IConfigurationProvider {
	return NewFileConfigurationProvider(ss)
}

var _ configuration.IConfigurationProvider = (*FileConfigurationProvider)(nil)

type FileConfigurationProvider struct {
	*configuration.Provider

	path           string
	optional       bool
	reloadOnChange bool
	loaded         bool
	watcher        *fsnotify.Watcher

	// OnLoad parses the raw bytes and replaces the provider data.
	OnLoad func(bytes []byte)
}

func NewFileConfigurationProvider(source *FileConfigurationSource) *FileConfigurationProvider {
	return &FileConfigurationProvider{
		Provider:       configuration.NewProvider(),
		path:           source.Path,
		optional:       source.Optional,
		reloadOnChange: source.ReloadOnChange,
		OnLoad:         func(bytes []byte) {},
	}
}

func (ss *FileConfigurationProvider) Load() {
	if ss.loaded {
		if ss.reloadOnChange {
			return
		}

		ss.loadFile()
		ss.OnReload()
		return
	}
	ss.loadFile()
	ss.loaded = true

	if ss.reloadOnChange {
		ss.watch()
	}
}

// Close stops watching the file.
func (ss *FileConfigurationProvider) Close() error {
	if ss.watcher == nil {
		return nil
	}
	return ss.watcher.Close()
}

func (ss *FileConfigurationProvider) watch() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Errorf("file watcher for %v: %v", ss.path, err)
		return
	}
	ss.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !pathEquals(event.Name, ss.path) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					slog.Debugf("file watcher received Write Or Create: %v", event.Name)
					time.AfterFunc(reloadDelay, func() {
						ss.loadFile()
						ss.OnReload()
					})
				} else if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					slog.Debugf("file watcher received Rename or Remove: %v", event.Name)
					ss.Replace(container.NewMap[string, string]())
					ss.OnReload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warnf("file watcher error: %v", err)
			}
		}
	}()

	// watch the directory so that files replaced by rename are still seen
	parentDir := filepath.Dir(ss.path)
	if err = os.MkdirAll(parentDir, 0755); err != nil {
		slog.Errorf("create watcher path(%v) failed: %v", parentDir, err)
		return
	}
	if err = watcher.Add(parentDir); err != nil {
		slog.Errorf("cannot watch path(%v): %v", parentDir, err)
	}
}

func (ss *FileConfigurationProvider) loadFile() {
	data, err := os.ReadFile(ss.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if !ss.optional {
				panic(fmt.Sprintf("file not found: %v", ss.path))
			}
			ss.Replace(container.NewMap[string, string]())
			return
		}
		slog.Errorf("read file %v: %v", ss.path, err)
		return
	}

	ss.OnLoad(data)
}

func pathEquals(path1, path2 string) bool {
	p1, p2 := filepath.Clean(strings.ReplaceAll(path1, "\\", "/")), filepath.Clean(strings.ReplaceAll(path2, "\\", "/"))
	return p1 == p2
}
