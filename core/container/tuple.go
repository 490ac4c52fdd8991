package container

type Pair[T, U any] struct {
	First  T
	Second U
}
