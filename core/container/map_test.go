package container_test

import (
	"strings"
	"testing"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	m := container.NewMap(
		container.Pair[int, string]{1, "ab"},
		container.Pair[int, string]{2, "ac"},
		container.Pair[int, string]{3, "ad"},
		container.Pair[int, string]{4, "af"},
	)

	isAllContains := true
	m.ScanIf(func(entry container.Pair[int, string]) bool {
		if !strings.Contains(entry.Second, "a") {
			isAllContains = false
			return false
		}
		return true
	})
	assert.True(t, isAllContains, "ScanIf can scan all elements that satisfy predicts")

	newMap := container.NewMap[int, string]()
	m.ScanKV(func(key int, value string) {
		newMap.Add(key, value)
	})
	assert.EqualValues(t, m, newMap, "ScanKV can iterates all elements")

	newMap = container.NewMap[int, string]()
	newMap.AddAll(m)
	assert.EqualValues(t, m, newMap, "Give an empty map and add all value as specified")

	newMap.Remove(1)
	assert.False(t, newMap.Contains(1), "Map Remove give key then map must match specified")
	assert.ElementsMatch(t, m.Keys(), container.NewList(1, 2, 3, 4), "Get map all keys,keys must match specified")
	assert.ElementsMatch(t, m.Values(), container.NewList("ab", "ac", "ad", "af"), "Get map all values")

	newMap.Clear()
	assert.Empty(t, newMap, "Map clear then map must match specified")
}

func TestListStack(t *testing.T) {
	stack := container.NewList[string]()
	_, ok := stack.Last()
	assert.False(t, ok, "empty list has no last element")

	stack.Add("a")
	stack.Add("b")
	last, ok := stack.Last()
	assert.True(t, ok)
	assert.Equal(t, "b", last)
	assert.True(t, container.ListContains(stack, "a"))

	stack.RemoveLast()
	assert.Equal(t, container.NewList("a"), stack)
}

func TestSortStableBy(t *testing.T) {
	type item struct {
		name  string
		arity int
	}
	list := container.NewList(
		item{"one", 1}, item{"two-a", 2}, item{"zero", 0}, item{"two-b", 2},
	)
	container.SortStableBy(list, func(lhs, rhs item) bool { return lhs.arity > rhs.arity })
	names := container.Trans[item, string](list, func(elem item) string { return elem.name })
	assert.Equal(t, container.List[string]{"two-a", "two-b", "one", "zero"}, names, "stable sort keeps the order of equal elements")
}
