package configuration

import (
	"sync"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
)

var _ IConfigurationManager = (*Manager)(nil)

// Manager is both the builder and the root: sources added later override earlier ones.
type Manager struct {
	lock       sync.RWMutex
	properties container.Map[string, any]
	sources    container.List[IConfigurationSource]
	providers  container.List[IConfigurationProvider]
	notifier   *Notifier
}

func NewManager() *Manager {
	return &Manager{
		properties: container.NewMap[string, any](),
		sources:    container.NewList[IConfigurationSource](),
		providers:  container.NewList[IConfigurationProvider](),
		notifier:   NewNotifier(),
	}
}

func (ss *Manager) Get(key string) string {
	value, _ := ss.TryGet(key)
	return value
}

func (ss *Manager) TryGet(key string) (value string, ok bool) {
	providers := ss.GetProviders()
	for i := providers.Len() - 1; i >= 0; i-- {
		if value, ok = providers[i].TryGet(key); ok {
			return value, true
		}
	}
	return "", false
}

func (ss *Manager) Set(key string, value string) {
	for _, provider := range ss.GetProviders() {
		provider.Set(key, value)
	}
}

func (ss *Manager) GetSection(key string) IConfigurationSection {
	return NewSection(ss, key)
}

func (ss *Manager) GetChildren() container.List[IConfigurationSection] {
	return ss.GetChildrenByPath("")
}

func (ss *Manager) GetChildrenByPath(path string) container.List[IConfigurationSection] {
	keySet := container.NewSet[string]()
	for _, provider := range ss.GetProviders() {
		for _, key := range provider.GetChildKeys(path) {
			keySet.Add(key)
		}
	}

	keys := container.NewList[string]()
	for key := range keySet {
		keys.Add(key)
	}
	container.SortStable(keys)

	sections := make(container.List[IConfigurationSection], 0, keys.Len())
	for _, key := range keys {
		if len(path) > 0 {
			sections.Add(ss.GetSection(path + KeyDelimiter + key))
		} else {
			sections.Add(ss.GetSection(key))
		}
	}
	return sections
}

func (ss *Manager) GetReloadNotifier() INotifier {
	return ss.notifier
}

func (ss *Manager) Reload() {
	for _, provider := range ss.GetProviders() {
		provider.Load()
	}
	ss.notifier.Notify()
}

func (ss *Manager) GetProviders() container.List[IConfigurationProvider] {
	ss.lock.RLock()
	defer ss.lock.RUnlock()
	return ss.providers
}

func (ss *Manager) GetProperties() container.Map[string, any] {
	return ss.properties
}

func (ss *Manager) GetSources() container.List[IConfigurationSource] {
	ss.lock.RLock()
	defer ss.lock.RUnlock()
	return ss.sources
}

func (ss *Manager) AddSource(source IConfigurationSource) {
	newProvider := source.BuildConfigurationProvider(ss)
	newProvider.Load()

	ss.lock.Lock()
	ss.sources = append(ss.sources.Copy(), source)
	ss.providers = append(ss.providers.Copy(), newProvider)
	ss.lock.Unlock()

	newProvider.GetReloadNotifier().RegisterNotifyCallback(ss.notifier.Notify)
	ss.notifier.Notify()
}

func (ss *Manager) BuildConfigurationRoot() IConfigurationRoot {
	return ss
}
