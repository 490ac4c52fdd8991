package internal

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection"
)

var (
	errorType       = reflect.TypeOf((*error)(nil)).Elem()
	reflectTypeType = reflect.TypeOf((*reflect.Type)(nil)).Elem()
)

const clearMethodPrefix = "ClearMultitonInstance"

// newFactoryAdapter fills the exported func fields of the factory type of r. Calling a create
// func resolves its first result type with the call arguments.
func (ss *Container) newFactoryAdapter(r *injection.Registration) (any, error) {
	factoryType := r.FactoryType()
	structType := factoryType.Elem()
	adapter := reflect.New(structType)
	elem := adapter.Elem()

	creates := 0
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() || field.Type.Kind() != reflect.Func {
			continue
		}

		fnTy := field.Type
		if strings.HasPrefix(field.Name, clearMethodPrefix) {
			if !isClearFunc(fnTy) {
				return nil, &injection.IllegalAbstractMethodCreationError{
					FactoryType: factoryType,
					Method:      field.Name,
					Reason:      "must be func(reflect.Type) or func(reflect.Type) error",
				}
			}
			elem.Field(i).Set(reflect.MakeFunc(fnTy, ss.clearFunc(fnTy)))
			continue
		}

		switch {
		case fnTy.NumOut() == 0:
			return nil, &injection.IllegalAbstractMethodCreationError{
				FactoryType: factoryType,
				Method:      field.Name,
				Reason:      "a create method must return the created instance",
			}
		case fnTy.NumOut() > 2 || (fnTy.NumOut() == 2 && fnTy.Out(1) != errorType):
			return nil, &injection.InvalidFactoryRegistrationError{
				FactoryType: factoryType,
				Reason:      fmt.Sprintf("create method %s must return T or (T, error)", field.Name),
			}
		}
		if r.Lifecycle() == injection.Multiton && fnTy.Out(0) == r.InterfaceType() &&
			(fnTy.NumIn() == 0 || fnTy.In(0) != r.ScopeType()) {
			return nil, &injection.InvalidFactoryRegistrationError{
				FactoryType: factoryType,
				Reason:      fmt.Sprintf("create method %s of a multiton must take the scope `%s` first", field.Name, r.ScopeType()),
			}
		}

		elem.Field(i).Set(reflect.MakeFunc(fnTy, ss.createFunc(fnTy)))
		creates++
	}

	if creates == 0 {
		return nil, &injection.InvalidFactoryRegistrationError{FactoryType: factoryType, Reason: "no create method"}
	}
	return adapter.Interface(), nil
}

func (ss *Container) createFunc(fnTy reflect.Type) func(in []reflect.Value) []reflect.Value {
	outTy := fnTy.Out(0)
	withError := fnTy.NumOut() == 2
	return func(in []reflect.Value) []reflect.Value {
		args := make([]any, 0, len(in))
		for i, arg := range in {
			if fnTy.IsVariadic() && i == len(in)-1 {
				for j := 0; j < arg.Len(); j++ {
					args = append(args, arg.Index(j).Interface())
				}
				continue
			}
			args = append(args, arg.Interface())
		}

		instance, err := ss.Resolve(outTy, args...)
		if !withError {
			if err != nil {
				panic(err)
			}
			return []reflect.Value{valueOf(instance, outTy)}
		}
		if err != nil {
			return []reflect.Value{reflect.Zero(outTy), errorValue(err)}
		}
		return []reflect.Value{valueOf(instance, outTy), errorValue(nil)}
	}
}

func (ss *Container) clearFunc(fnTy reflect.Type) func(in []reflect.Value) []reflect.Value {
	return func(in []reflect.Value) []reflect.Value {
		var err error
		if ty, ok := in[0].Interface().(reflect.Type); ok && ty != nil {
			err = ss.ClearMultitonInstances(ty)
		}
		if fnTy.NumOut() == 0 {
			return nil
		}
		return []reflect.Value{errorValue(err)}
	}
}

func isClearFunc(fnTy reflect.Type) bool {
	if fnTy.IsVariadic() || fnTy.NumIn() != 1 || fnTy.In(0) != reflectTypeType {
		return false
	}
	return fnTy.NumOut() == 0 || (fnTy.NumOut() == 1 && fnTy.Out(0) == errorType)
}

func errorValue(err error) reflect.Value {
	if err == nil {
		return reflect.Zero(errorType)
	}
	return reflect.ValueOf(&err).Elem()
}
