package injection

import (
	"fmt"
	"io"
	"reflect"
)

// Lifecycle decides how many instances a registration produces.
type Lifecycle uint8

const (
	Transient Lifecycle = iota // a new instance per resolve
	Singleton                  // one instance per container
	Multiton                   // one instance per scope key
)

func (ss Lifecycle) String() string {
	switch ss {
	case Transient:
		return "Transient"
	case Singleton:
		return "Singleton"
	case Multiton:
		return "Multiton"
	default:
		return fmt.Sprintf("Lifecycle(%d)", uint8(ss))
	}
}

// DisposeStrategy decides who closes a disposable Singleton or Multiton instance.
type DisposeStrategy uint8

const (
	NoDisposeStrategy DisposeStrategy = iota
	ApplicationOwned                  // the application closes the instance
	ContainerOwned                    // the container closes the instance when it is disposed
)

func (ss DisposeStrategy) String() string {
	switch ss {
	case NoDisposeStrategy:
		return "None"
	case ApplicationOwned:
		return "ApplicationOwned"
	case ContainerOwned:
		return "ContainerOwned"
	default:
		return fmt.Sprintf("DisposeStrategy(%d)", uint8(ss))
	}
}

var disposableType = reflect.TypeOf((*io.Closer)(nil)).Elem()

// IsDisposable reports whether instances of ty can be closed by the container.
func IsDisposable(ty reflect.Type) bool {
	return ty != nil && ty.Implements(disposableType)
}
