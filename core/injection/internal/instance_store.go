package internal

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"weak"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
)

// MultitonKey identifies the instance table of one multiton registration.
type MultitonKey struct {
	Implementation reflect.Type
	Scope          reflect.Type
}

type storedInstance struct {
	seq      uint64
	instance any
	owned    bool
}

type weakScope struct {
	ty  reflect.Type
	ptr weak.Pointer[byte]
}

type weakEntry struct {
	id      uint64
	stored  *storedInstance
	cleanup runtime.Cleanup
}

type multitonTable struct {
	strong map[any]*storedInstance
	weak   map[weakScope]*weakEntry
}

func newMultitonTable() *multitonTable {
	return &multitonTable{
		strong: make(map[any]*storedInstance),
		weak:   make(map[weakScope]*weakEntry),
	}
}

type evictArg struct {
	store *InstanceStore
	key   MultitonKey
	scope weakScope
	id    uint64
}

// InstanceStore holds singleton and multiton instances. Pointer scope keys are weak: once a key
// is collected its instance is dropped and, if container owned, handed to onEvict.
type InstanceStore struct {
	lock       sync.Mutex
	seq        uint64
	singletons map[reflect.Type]*storedInstance
	multitons  map[MultitonKey]*multitonTable
	created    *container.OrderedMap[uint64, *storedInstance]
	onEvict    func(instance any)
}

func NewInstanceStore(onEvict func(instance any)) *InstanceStore {
	return &InstanceStore{
		singletons: make(map[reflect.Type]*storedInstance),
		multitons:  make(map[MultitonKey]*multitonTable),
		created:    container.NewOrderedMap[uint64, *storedInstance](),
		onEvict:    onEvict,
	}
}

func (ss *InstanceStore) GetSingleton(key reflect.Type) (any, bool) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	stored, ok := ss.singletons[key]
	if !ok {
		return nil, false
	}
	return stored.instance, true
}

// SetSingleton stores instance unless another one was stored first, it returns the stored instance.
func (ss *InstanceStore) SetSingleton(key reflect.Type, instance any, owned bool) (any, bool) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	if stored, ok := ss.singletons[key]; ok {
		return stored.instance, false
	}
	ss.singletons[key] = ss.track(instance, owned)
	return instance, true
}

func (ss *InstanceStore) GetMultiton(key MultitonKey, scope any) (any, bool, error) {
	strongKey, weakKey, isWeak, err := scopeKeyOf(scope)
	if err != nil {
		return nil, false, err
	}

	ss.lock.Lock()
	defer ss.lock.Unlock()

	table, ok := ss.multitons[key]
	if !ok {
		return nil, false, nil
	}
	if isWeak {
		entry, ok := table.weak[weakKey]
		if !ok {
			return nil, false, nil
		}
		return entry.stored.instance, true, nil
	}
	stored, ok := table.strong[strongKey]
	if !ok {
		return nil, false, nil
	}
	return stored.instance, true, nil
}

// SetMultiton stores instance for scope unless another one was stored first, it returns the stored instance.
func (ss *InstanceStore) SetMultiton(key MultitonKey, scope, instance any, owned bool) (any, bool, error) {
	strongKey, weakKey, isWeak, err := scopeKeyOf(scope)
	if err != nil {
		return nil, false, err
	}

	ss.lock.Lock()
	defer ss.lock.Unlock()

	table, ok := ss.multitons[key]
	if !ok {
		table = newMultitonTable()
		ss.multitons[key] = table
	}

	if !isWeak {
		if stored, ok := table.strong[strongKey]; ok {
			return stored.instance, false, nil
		}
		table.strong[strongKey] = ss.track(instance, owned)
		return instance, true, nil
	}

	if entry, ok := table.weak[weakKey]; ok {
		return entry.stored.instance, false, nil
	}
	stored := ss.track(instance, owned)
	entry := &weakEntry{id: stored.seq, stored: stored}
	ptr := (*byte)(reflect.ValueOf(scope).UnsafePointer())
	entry.cleanup = runtime.AddCleanup(ptr, evictWeakScope, evictArg{
		store: ss,
		key:   key,
		scope: weakKey,
		id:    entry.id,
	})
	table.weak[weakKey] = entry
	return instance, true, nil
}

// ClearMultiton drops every scope of key and returns the container owned instances, newest first.
func (ss *InstanceStore) ClearMultiton(key MultitonKey) []any {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	table, ok := ss.multitons[key]
	if !ok {
		return nil
	}
	delete(ss.multitons, key)

	removed := container.NewOrderedMap[uint64, *storedInstance]()
	for _, stored := range table.strong {
		removed.Add(stored.seq, stored)
	}
	for _, entry := range table.weak {
		entry.cleanup.Stop()
		removed.Add(entry.stored.seq, entry.stored)
	}
	return ss.untrack(removed)
}

// Drain empties the store and returns the container owned instances, newest first.
func (ss *InstanceStore) Drain() []any {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	for _, table := range ss.multitons {
		for _, entry := range table.weak {
			entry.cleanup.Stop()
		}
	}
	ss.singletons = make(map[reflect.Type]*storedInstance)
	ss.multitons = make(map[MultitonKey]*multitonTable)

	all := ss.created
	ss.created = container.NewOrderedMap[uint64, *storedInstance]()

	var owned []any
	all.ScanKVReverse(func(_ uint64, stored *storedInstance) {
		if stored.owned {
			owned = append(owned, stored.instance)
		}
	})
	return owned
}

// Len returns the number of stored instances.
func (ss *InstanceStore) Len() int {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	return ss.created.Len()
}

func (ss *InstanceStore) track(instance any, owned bool) *storedInstance {
	ss.seq++
	stored := &storedInstance{seq: ss.seq, instance: instance, owned: owned}
	ss.created.Add(stored.seq, stored)
	return stored
}

func (ss *InstanceStore) untrack(removed *container.OrderedMap[uint64, *storedInstance]) []any {
	var owned []any
	removed.ScanKVReverse(func(seq uint64, stored *storedInstance) {
		ss.created.Remove(seq)
		if stored.owned {
			owned = append(owned, stored.instance)
		}
	})
	return owned
}

func (ss *InstanceStore) evict(key MultitonKey, scope weakScope, id uint64) {
	ss.lock.Lock()
	table, ok := ss.multitons[key]
	if !ok {
		ss.lock.Unlock()
		return
	}
	entry, ok := table.weak[scope]
	if !ok || entry.id != id {
		ss.lock.Unlock()
		return
	}
	delete(table.weak, scope)
	ss.created.Remove(entry.stored.seq)
	ss.lock.Unlock()

	if entry.stored.owned && ss.onEvict != nil {
		ss.onEvict(entry.stored.instance)
	}
}

func evictWeakScope(arg evictArg) {
	arg.store.evict(arg.key, arg.scope, arg.id)
}

// scopeKeyOf returns the weak key of a pointer scope, other scopes are used as they are
// and must be comparable.
func scopeKeyOf(scope any) (any, weakScope, bool, error) {
	v := reflect.ValueOf(scope)
	if !v.IsValid() {
		return nil, weakScope{}, false, fmt.Errorf("scope is nil")
	}
	if v.Kind() == reflect.Pointer && !v.IsNil() && v.Type().Elem().Size() > 0 {
		return nil, weakScope{
			ty:  v.Type(),
			ptr: weak.Make((*byte)(v.UnsafePointer())),
		}, true, nil
	}
	if !v.Comparable() {
		return nil, weakScope{}, false, fmt.Errorf("scope of type %s is not comparable", v.Type())
	}
	return scope, weakScope{}, false, nil
}
