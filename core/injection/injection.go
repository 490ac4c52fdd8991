package injection

import (
	"fmt"
	"reflect"
)

// IResolver resolves instances. The resolver handed to factory methods and Construct methods
// continues the current resolution and shares its resolve stack.
type IResolver interface {
	Resolve(ty reflect.Type, args ...any) (any, error)
}

type IContainer interface {
	IResolver

	Register(interfaceType, implementationType reflect.Type, lifecycle Lifecycle, opts ...RegistrationOption) error
	RegisterMultiple(interfaceTypes []reflect.Type, implementationType reflect.Type, lifecycle Lifecycle, opts ...RegistrationOption) error
	RegisterOpenGeneric(interfaceDefinition, implementationDefinition reflect.Type, lifecycle Lifecycle, opts ...RegistrationOption) error
	RegisterSingleType(ty reflect.Type, lifecycle Lifecycle, opts ...RegistrationOption) error
	RegisterMultiton(interfaceType, implementationType, scopeType reflect.Type, opts ...RegistrationOption) error

	IsTypeRegistered(ty reflect.Type) bool
	// GetRegistrations returns the registrations in registration order.
	GetRegistrations() []*Registration

	// ClearMultitonInstances drops every scope of the multiton registered for ty.
	ClearMultitonInstances(ty reflect.Type) error
	// Dispose closes container owned instances in reverse creation order and clears all registrations.
	Dispose() error
}

// TypeOf returns the reflect.Type of T, T may be an interface type.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func Register[T, U any](c IContainer, lifecycle Lifecycle, opts ...RegistrationOption) error {
	return c.Register(TypeOf[T](), TypeOf[U](), lifecycle, opts...)
}

func RegisterMultiple[U any](c IContainer, interfaceTypes []reflect.Type, lifecycle Lifecycle, opts ...RegistrationOption) error {
	return c.RegisterMultiple(interfaceTypes, TypeOf[U](), lifecycle, opts...)
}

func RegisterSingleType[T any](c IContainer, lifecycle Lifecycle, opts ...RegistrationOption) error {
	return c.RegisterSingleType(TypeOf[T](), lifecycle, opts...)
}

func RegisterMultiton[T, U, S any](c IContainer, opts ...RegistrationOption) error {
	return c.RegisterMultiton(TypeOf[T](), TypeOf[U](), TypeOf[S](), opts...)
}

// RegisterOpenGeneric registers the generic definitions T and U are instantiated from.
func RegisterOpenGeneric[T, U any](c IContainer, lifecycle Lifecycle, opts ...RegistrationOption) error {
	return c.RegisterOpenGeneric(TypeOf[T](), TypeOf[U](), lifecycle, opts...)
}

func Resolve[T any](r IResolver, args ...any) (T, error) {
	var zero T
	ty := TypeOf[T]()
	instance, err := r.Resolve(ty, args...)
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}

	v, ok := instance.(T)
	if !ok {
		return zero, &InternalResolveError{Type: ty, Detail: fmt.Sprintf("resolved instance has type `%T`", instance)}
	}
	return v, nil
}

// MustResolve panics if T cannot be resolved.
func MustResolve[T any](r IResolver, args ...any) T {
	v, err := Resolve[T](r, args...)
	if err != nil {
		panic(err)
	}
	return v
}

func ClearMultitonInstances[T any](c IContainer) error {
	return c.ClearMultitonInstances(TypeOf[T]())
}
