package option

import (
	"fmt"
	"reflect"
)

type IOptionInjector interface {
	bindRepository(repo *Repository)
}

var _ IOptionInjector = (*Option[int])(nil)

var optionInjectorType = reflect.TypeOf((*IOptionInjector)(nil)).Elem()

// Option is injected into constructors and Construct methods, T is usually a pointer to an option struct.
type Option[T any] struct {
	repo *Repository
}

func (ss *Option[T]) Get() T {
	return ss.GetKeyed("")
}

func (ss *Option[T]) GetKeyed(key string) T {
	return ss.repo.get(key, reflect.TypeOf((*T)(nil)).Elem()).(T)
}

// OnChanged registers cb to run after the bound configuration reloads.
func (ss *Option[T]) OnChanged(cb func()) {
	ss.repo.onChanged(cb)
}

func (ss *Option[T]) bindRepository(repo *Repository) {
	ss.repo = repo
}

// IsOptionInjector reports whether ty is a *Option[T].
func IsOptionInjector(ty reflect.Type) bool {
	return ty.Kind() == reflect.Pointer && ty.Elem().Kind() == reflect.Struct && ty.Implements(optionInjectorType)
}

func newOptionInjector(ty reflect.Type, repo *Repository) (any, error) {
	if !IsOptionInjector(ty) {
		return nil, fmt.Errorf("type %v is not an option injector", ty)
	}

	instance := reflect.New(ty.Elem()).Interface()
	instance.(IOptionInjector).bindRepository(repo)
	return instance, nil
}
