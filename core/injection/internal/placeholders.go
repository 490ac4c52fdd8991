package internal

import (
	"reflect"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection"
)

// existingInstance short-circuits a planned type that is already available.
type existingInstance struct {
	instance any
}

type target struct {
	ty       reflect.Type
	reg      *injection.Registration
	storeKey reflect.Type
	scope    any
	stack    container.List[reflect.Type]
}

// argSlot is either a value ready to pass or a nested plan, planned slots are materialized first.
type argSlot struct {
	value reflect.Value
	plan  any
}

// toBeResolved is a constructor call whose arguments are all known.
type toBeResolved struct {
	target
	ctor  *injection.Constructor
	slots []argSlot
}

// factoryMethodToBeResolved defers to the factory method of the registration.
type factoryMethodToBeResolved struct {
	target
}

func valueOf(instance any, ty reflect.Type) reflect.Value {
	if instance == nil {
		return reflect.Zero(ty)
	}
	return reflect.ValueOf(instance)
}

func isNilable(ty reflect.Type) bool {
	switch ty.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
