package container

var _ = Iterator[struct{}]((Set[struct{}])(nil))

type Set[T comparable] map[T]struct{}

func NewSet[T comparable](args ...T) Set[T] {
	var set = Set[T]{}
	for _, arg := range args {
		set[arg] = struct{}{}
	}
	return set
}

func (set Set[T]) ScanIf(fn func(elem T) bool) {
	for k := range set {
		if !fn(k) {
			break
		}
	}
}

func (set Set[T]) Scan(fn func(elem T)) {
	for k := range set {
		fn(k)
	}
}

func (set Set[T]) Len() int {
	return len(set)
}

func (set Set[T]) IsEmpty() bool {
	return set.Len() == 0
}

func (set Set[T]) Copy() Set[T] {
	newSet := Set[T]{}
	for k := range set {
		newSet[k] = struct{}{}
	}
	return newSet
}

func (set Set[T]) Contains(elem T) bool {
	if _, ok := set[elem]; ok {
		return true
	}
	return false
}

func (set Set[T]) Add(elem T) {
	set[elem] = struct{}{}
}

func (set Set[T]) Remove(elem T) {
	delete(set, elem)
}

func (set *Set[T]) Clear() {
	*set = Set[T]{}
}
