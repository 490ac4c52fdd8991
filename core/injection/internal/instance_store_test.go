package internal

import (
	"reflect"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testScope struct {
	name string
	pad  [64]byte
}

var testKey = MultitonKey{Implementation: reflect.TypeOf(""), Scope: reflect.TypeOf((*testScope)(nil))}

func TestSingletonFirstWins(t *testing.T) {
	store := NewInstanceStore(nil)
	key := reflect.TypeOf(0)

	_, ok := store.GetSingleton(key)
	assert.False(t, ok)

	stored, added := store.SetSingleton(key, "a", false)
	assert.True(t, added)
	assert.Equal(t, "a", stored)

	stored, added = store.SetSingleton(key, "b", false)
	assert.False(t, added)
	assert.Equal(t, "a", stored)
}

func TestMultitonScopes(t *testing.T) {
	store := NewInstanceStore(nil)
	s1, s2 := &testScope{name: "1"}, &testScope{name: "2"}

	_, _, err := store.SetMultiton(testKey, s1, "one", false)
	require.NoError(t, err)
	_, _, err = store.SetMultiton(testKey, s2, "two", false)
	require.NoError(t, err)

	got, ok, err := store.GetMultiton(testKey, s1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one", got)

	got, _, _ = store.GetMultiton(testKey, s2)
	assert.Equal(t, "two", got)

	_, ok, _ = store.GetMultiton(testKey, &testScope{name: "1"})
	assert.False(t, ok, "pointer scopes are compared by identity")

	_, _, err = store.SetMultiton(testKey, 7, "seven", false)
	require.NoError(t, err)
	got, ok, _ = store.GetMultiton(testKey, 7)
	assert.True(t, ok, "value scopes are compared by value")
	assert.Equal(t, "seven", got)

	_, _, err = store.GetMultiton(testKey, []int{1})
	assert.Error(t, err, "scopes must be comparable")

	runtime.KeepAlive(s1)
	runtime.KeepAlive(s2)
}

func TestDrainOrder(t *testing.T) {
	store := NewInstanceStore(nil)
	store.SetSingleton(reflect.TypeOf(0), "first", true)
	store.SetSingleton(reflect.TypeOf(""), "not owned", false)
	s := &testScope{}
	_, _, err := store.SetMultiton(testKey, s, "second", true)
	require.NoError(t, err)
	store.SetSingleton(reflect.TypeOf(0.0), "third", true)

	assert.Equal(t, []any{"third", "second", "first"}, store.Drain())
	assert.Equal(t, 0, store.Len())
	_, ok := store.GetSingleton(reflect.TypeOf(0))
	assert.False(t, ok)
	runtime.KeepAlive(s)
}

func TestClearMultiton(t *testing.T) {
	store := NewInstanceStore(nil)
	s := &testScope{}
	store.SetMultiton(testKey, s, "weak", true)
	store.SetMultiton(testKey, "key", "strong", true)
	store.SetSingleton(reflect.TypeOf(0), "singleton", true)

	assert.Equal(t, []any{"strong", "weak"}, store.ClearMultiton(testKey))
	assert.Equal(t, 1, store.Len())
	assert.Nil(t, store.ClearMultiton(testKey), "clearing twice is a no-op")
	runtime.KeepAlive(s)
}

func TestWeakScopeEviction(t *testing.T) {
	var evicted atomic.Value
	store := NewInstanceStore(func(instance any) {
		evicted.Store(instance)
	})

	func() {
		_, _, err := store.SetMultiton(testKey, &testScope{name: "short lived"}, "instance", true)
		require.NoError(t, err)
	}()
	assert.Equal(t, 1, store.Len())

	require.Eventually(t, func() bool {
		runtime.GC()
		return evicted.Load() != nil
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, "instance", evicted.Load())
	assert.Equal(t, 0, store.Len())
}

func TestMergeParameters(t *testing.T) {
	assert.Equal(t, []any{"p0", "x"}, mergeParameters([]any{"p0", injection.Unset}, []any{"x"}))
	assert.Equal(t, []any{"x", "p1", "y", "z"}, mergeParameters([]any{injection.Unset, "p1"}, []any{"x", "y", "z"}))
	assert.Equal(t, []any{"p0"}, mergeParameters([]any{"p0", injection.Unset}, nil), "unset positions without arguments are dropped")
	assert.Equal(t, []any{1, 2}, mergeParameters(nil, []any{1, 2}))
}
