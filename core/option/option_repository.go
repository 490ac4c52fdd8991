package option

import (
	"reflect"
	"sync"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/configuration"
)

type Repository struct {
	lock   sync.RWMutex
	config configuration.IConfiguration
	// key : type : option path
	binding map[string]map[reflect.Type]string
	// key : type : option value
	values map[string]map[reflect.Type]any
}

// NewOptionRepository creates a repository resolving bound paths against config, config may be nil.
func NewOptionRepository(config configuration.IConfiguration) *Repository {
	return &Repository{
		config:  config,
		binding: make(map[string]map[reflect.Type]string),
		values:  make(map[string]map[reflect.Type]any),
	}
}

func (ss *Repository) BindByPath(key string, ty reflect.Type, path string) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	kv, ok := ss.binding[key]
	if !ok {
		kv = make(map[reflect.Type]string)
		ss.binding[key] = kv
	}
	kv[ty] = path
}

func (ss *Repository) BindByValue(key string, ty reflect.Type, value any) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	kv, ok := ss.values[key]
	if !ok {
		kv = make(map[reflect.Type]any)
		ss.values[key] = kv
	}
	kv[ty] = value
}

// GetOption creates the *Option[T] of type ty reading from this repository.
func (ss *Repository) GetOption(ty reflect.Type) (any, error) {
	return newOptionInjector(ty, ss)
}

// get returns the bound value, or the option bound from configuration, or a zero option.
func (ss *Repository) get(key string, optTy reflect.Type) any {
	ss.lock.RLock()
	value, hasValue := ss.values[key][optTy]
	path, hasPath := ss.binding[key][optTy]
	ss.lock.RUnlock()

	if hasValue {
		return value
	}

	if hasPath && ss.config != nil {
		return configuration.GetByType(optTy, ss.config, path)
	}

	if optTy.Kind() == reflect.Pointer {
		return reflect.New(optTy.Elem()).Interface()
	}
	return reflect.Zero(optTy).Interface()
}

func (ss *Repository) onChanged(cb func()) {
	if ss.config == nil {
		return
	}
	ss.config.GetReloadNotifier().RegisterNotifyCallback(cb)
}

func BindOptionPath[T any](repo *Repository, path string) {
	BindKeyedOptionPath[T](repo, "", path)
}

func BindKeyedOptionPath[T any](repo *Repository, key string, path string) {
	repo.BindByPath(key, reflect.TypeOf((*T)(nil)).Elem(), path)
}

func BindOptionValue[T any](repo *Repository, value T) {
	BindKeyedOptionValue[T](repo, "", value)
}

func BindKeyedOptionValue[T any](repo *Repository, key string, value T) {
	repo.BindByValue(key, reflect.TypeOf((*T)(nil)).Elem(), value)
}
