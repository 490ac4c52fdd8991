package configuration

import (
	"strings"
	"sync"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
)

var _ IConfigurationProvider = (*Provider)(nil)

type Provider struct {
	lock     sync.Mutex
	data     container.Map[string, string]
	notifier *Notifier
}

func NewProvider() *Provider {
	return &Provider{
		data:     container.NewMap[string, string](),
		notifier: NewNotifier(),
	}
}

func (ss *Provider) Get(key string) string {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	return ss.data[strings.ToUpper(key)]
}

func (ss *Provider) TryGet(key string) (value string, ok bool) {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	value, ok = ss.data[strings.ToUpper(key)]
	return
}

func (ss *Provider) Set(key string, value string) {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	ss.data[strings.ToUpper(key)] = value
}

func (ss *Provider) GetReloadNotifier() INotifier {
	return ss.notifier
}

// Replace swaps the whole key set, keys are upper-cased on the way in.
func (ss *Provider) Replace(data container.Map[string, string]) {
	upper := container.NewMap[string, string]()
	for k, v := range data {
		upper[strings.ToUpper(k)] = v
	}

	ss.lock.Lock()
	defer ss.lock.Unlock()
	ss.data = upper
}

func (ss *Provider) Load() {
}

func (ss *Provider) OnReload() {
	ss.notifier.Notify()
}

func (ss *Provider) GetChildKeys(parentPath string) container.List[string] {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	parentPath = strings.ToUpper(parentPath)
	childKeys := container.NewList[string]()
	if len(parentPath) == 0 {
		for key := range ss.data {
			childKeys.Add(keySegment(key, 0))
		}
	} else {
		for key := range ss.data {
			if len(key) > len(parentPath) && strings.HasPrefix(key, parentPath) && key[len(parentPath)] == ':' {
				childKeys.Add(keySegment(key, len(parentPath)+1))
			}
		}
	}
	container.SortStable(childKeys)
	return childKeys
}

func keySegment(key string, prefixLength int) string {
	if prefixLength >= len(key) {
		return ""
	}
	idx := strings.IndexByte(key[prefixLength:], ':')
	if idx == -1 {
		return key[prefixLength:]
	}

	return key[prefixLength : prefixLength+idx]
}
