package container

// Ordered is the key constraint of OrderedMap.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string
}

type Iterator[T any] interface {
	ScanIf(fn func(elem T) bool)
	Scan(fn func(elem T))
	Len() int
}

func Any[T any](iter Iterator[T], fn func(elem T) bool) bool {
	result := false
	iter.ScanIf(func(elem T) bool {
		if fn(elem) {
			result = true
			return false
		}
		return true
	})
	return result
}

func All[T any](iter Iterator[T], fn func(elem T) bool) bool {
	result := true
	iter.ScanIf(func(elem T) bool {
		if !fn(elem) {
			result = false
			return false
		}
		return true
	})
	return result
}

func Trans[T, U any](iter Iterator[T], fn func(elem T) U) List[U] {
	list := make(List[U], 0, max(iter.Len(), 4))
	iter.Scan(func(elem T) {
		list.Add(fn(elem))
	})
	return list
}

func Filter[T any](iter Iterator[T], fn func(elem T) bool) List[T] {
	list := make(List[T], 0, max(iter.Len(), 4))
	iter.Scan(func(elem T) {
		if fn(elem) {
			list.Add(elem)
		}
	})
	return list
}

func ListOf[T any](iter Iterator[T]) List[T] {
	list := make(List[T], 0, max(iter.Len(), 4))
	iter.Scan(func(elem T) {
		list.Add(elem)
	})
	return list
}
