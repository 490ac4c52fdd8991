package container

import (
	"github.com/tidwall/btree"
)

var _ = Iterator[Pair[int, int]]((*OrderedMap[int, int])(nil))

type OrderedMap[T Ordered, U any] struct {
	base btree.Map[T, U]
}

func NewOrderedMap[T Ordered, U any](args ...Pair[T, U]) *OrderedMap[T, U] {
	result := &OrderedMap[T, U]{}
	for _, entry := range args {
		result.base.Set(entry.First, entry.Second)
	}
	return result
}

func (m *OrderedMap[T, U]) ScanIf(fn func(entry Pair[T, U]) bool) {
	m.base.Scan(func(key T, value U) bool {
		return fn(Pair[T, U]{key, value})
	})
}

func (m *OrderedMap[T, U]) Scan(fn func(entry Pair[T, U])) {
	m.base.Scan(func(key T, value U) bool {
		fn(Pair[T, U]{key, value})
		return true
	})
}

func (m *OrderedMap[T, U]) ScanKV(fn func(key T, value U)) {
	m.base.Scan(func(key T, value U) bool {
		fn(key, value)
		return true
	})
}

// ScanKVReverse iterates from the greatest key down to the smallest.
func (m *OrderedMap[T, U]) ScanKVReverse(fn func(key T, value U)) {
	m.base.Reverse(func(key T, value U) bool {
		fn(key, value)
		return true
	})
}

func (m *OrderedMap[T, U]) Len() int {
	return m.base.Len()
}

func (m *OrderedMap[T, U]) IsEmpty() bool {
	return m.Len() == 0
}

func (m *OrderedMap[T, U]) Contains(key T) bool {
	_, ok := m.base.Get(key)
	return ok
}

func (m *OrderedMap[T, U]) Get(key T) (U, bool) {
	return m.base.Get(key)
}

func (m *OrderedMap[T, U]) Add(key T, value U) {
	m.base.Set(key, value)
}

func (m *OrderedMap[T, U]) Remove(key T) {
	m.base.Delete(key)
}

func (m *OrderedMap[T, U]) Clear() {
	*m = OrderedMap[T, U]{}
}

func (m *OrderedMap[T, U]) Keys() List[T] {
	result := make(List[T], 0, m.Len())
	m.ScanKV(func(k T, v U) { result.Add(k) })
	return result
}

func (m *OrderedMap[T, U]) Values() List[U] {
	result := make(List[U], 0, m.Len())
	m.ScanKV(func(k T, v U) { result.Add(v) })
	return result
}
