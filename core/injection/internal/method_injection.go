package internal

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection"
)

// inject calls every exported method of instance whose name starts with Construct, the
// arguments are injected like constructor parameters without caller arguments.
func (ss *Container) inject(instance any, stack container.List[reflect.Type]) error {
	if instance == nil {
		return nil
	}

	v := reflect.ValueOf(instance)
	vTy := v.Type()
	for i := 0; i < vTy.NumMethod(); i++ {
		fMethod := vTy.Method(i)
		if !strings.HasPrefix(fMethod.Name, "Construct") {
			continue
		}

		fTy := fMethod.Type
		args := make([]reflect.Value, 0, fTy.NumIn())
		args = append(args, v)
		for j := 1; j < fTy.NumIn(); j++ {
			argTy := fTy.In(j)
			if argV, ok, err := ss.special(argTy, &stack); ok {
				if err != nil {
					return &injection.CreationFailedError{Type: vTy, Err: fmt.Errorf("%s: %w", fMethod.Name, err)}
				}
				args = append(args, argV)
				continue
			}

			argStack := stack.Copy()
			argInstance, err := ss.resolve(argTy, nil, &argStack)
			if err != nil {
				return &injection.CreationFailedError{Type: vTy, Err: fmt.Errorf("%s: %w", fMethod.Name, err)}
			}
			args = append(args, valueOf(argInstance, argTy))
		}

		var results []reflect.Value
		if fTy.IsVariadic() {
			results = fMethod.Func.CallSlice(args)
		} else {
			results = fMethod.Func.Call(args)
		}
		if n := len(results); n > 0 && fTy.Out(n-1) == errorType && !results[n-1].IsNil() {
			return &injection.CreationFailedError{Type: vTy, Err: fmt.Errorf("%s: %w", fMethod.Name, results[n-1].Interface().(error))}
		}
	}
	return nil
}
