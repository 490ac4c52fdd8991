package container

var _ = Iterator[struct{}]((List[struct{}])(nil))

type List[T any] []T

func NewList[T any](args ...T) List[T] {
	result := make(List[T], len(args))
	copy(result, args)
	return result
}

func (list List[T]) ScanIf(fn func(elem T) bool) {
	for _, v := range list {
		if !fn(v) {
			break
		}
	}
}

func (list List[T]) Scan(fn func(elem T)) {
	for _, v := range list {
		fn(v)
	}
}

func (list List[T]) Len() int {
	return len(list)
}

func (list List[T]) IsEmpty() bool {
	return list.Len() == 0
}

func (list List[T]) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list List[T]) Copy() List[T] {
	newList := make(List[T], list.Len())
	copy(newList, list)
	return newList
}

// Last returns the last element, ok is false on an empty list.
func (list List[T]) Last() (elem T, ok bool) {
	if list.IsEmpty() {
		return elem, false
	}
	return list[list.Len()-1], true
}

func (list *List[T]) Add(elem T) {
	*list = append(*list, elem)
}

func (list *List[T]) RemoveLast() {
	*list = (*list)[:list.Len()-1]
}

func (list *List[T]) RemoveIndex(index int) {
	*list = append((*list)[:index], (*list)[index+1:]...)
}

func (list *List[T]) RemoveIf(fn func(elem T) bool) {
	for i := 0; i < list.Len(); {
		if fn((*list)[i]) {
			list.RemoveIndex(i)
		} else {
			i++
		}
	}
}

func (list *List[T]) Clear() {
	*list = (*list)[:0]
}

func ListSearch[T comparable](list List[T], elem T) int {
	for idx, value := range list {
		if value == elem {
			return idx
		}
	}
	return -1
}

func ListContains[T comparable](list List[T], elem T) bool {
	return ListSearch(list, elem) != -1
}

// SortStableBy sorts in place and keeps the relative order of equal elements.
func SortStableBy[T any](list List[T], fn func(lhs, rhs T) bool) {
	less := func(i, j int) bool { return fn(list[i], list[j]) }
	sortStable(sortLessSwap{less, list.Swap}, list.Len())
}

func SortStable[T Ordered](list List[T]) {
	SortStableBy(list, func(lhs, rhs T) bool { return lhs < rhs })
}

func SortedStableBy[T any](list List[T], fn func(lhs, rhs T) bool) List[T] {
	result := list.Copy()
	SortStableBy(result, fn)
	return result
}

type sortLessSwap struct {
	Less func(i, j int) bool
	Swap func(i, j int)
}

func sortStable(data sortLessSwap, n int) {
	blockSize := 20
	a, b := 0, blockSize
	for b <= n {
		sortInsertion(data, a, b)
		a = b
		b += blockSize
	}
	sortInsertion(data, a, n)
	for blockSize < n {
		a, b = 0, 2*blockSize
		for b <= n {
			sortSymMerge(data, a, a+blockSize, b)
			a = b
			b += 2 * blockSize
		}
		if m := a + blockSize; m < n {
			sortSymMerge(data, a, m, n)
		}
		blockSize *= 2
	}
}

func sortInsertion(data sortLessSwap, a, b int) {
	for i := a + 1; i < b; i++ {
		for j := i; j > a && data.Less(j, j-1); j-- {
			data.Swap(j, j-1)
		}
	}
}

func sortSwapRange(data sortLessSwap, a, b, n int) {
	for i := 0; i < n; i++ {
		data.Swap(a+i, b+i)
	}
}

func sortSymMerge(data sortLessSwap, a, m, b int) {
	if m-a == 1 {
		i := m
		j := b
		for i < j {
			h := int(uint(i+j) >> 1)
			if data.Less(h, a) {
				i = h + 1
			} else {
				j = h
			}
		}
		for k := a; k < i-1; k++ {
			data.Swap(k, k+1)
		}
		return
	}
	if b-m == 1 {
		i := a
		j := m
		for i < j {
			h := int(uint(i+j) >> 1)
			if !data.Less(m, h) {
				i = h + 1
			} else {
				j = h
			}
		}
		for k := m; k > i; k-- {
			data.Swap(k, k-1)
		}
		return
	}
	mid := int(uint(a+b) >> 1)
	n := mid + m
	var start, r int
	if m > mid {
		start = n - b
		r = mid
	} else {
		start = a
		r = m
	}
	p := n - 1
	for start < r {
		c := int(uint(start+r) >> 1)
		if !data.Less(p-c, c) {
			start = c + 1
		} else {
			r = c
		}
	}
	end := n - start
	if start < m && m < end {
		sortRotate(data, start, m, end)
	}
	if a < start && start < mid {
		sortSymMerge(data, a, start, mid)
	}
	if mid < end && end < b {
		sortSymMerge(data, mid, end, b)
	}
}

func sortRotate(data sortLessSwap, a, m, b int) {
	i := m - a
	j := b - m
	for i != j {
		if i > j {
			sortSwapRange(data, m-i, m, j)
			i -= j
		} else {
			sortSwapRange(data, m-i, m+j-i, i)
			j -= i
		}
	}
	sortSwapRange(data, m-i, m, i)
}
