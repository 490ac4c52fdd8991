package injection

import (
	"fmt"
	"reflect"
	"strings"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Constructor is one way of creating an implementation: a registered function or the implicit
// zero-argument constructor of a struct pointer.
type Constructor struct {
	fn        reflect.Value
	params    []reflect.Type
	out       reflect.Type
	withError bool
}

// NewConstructor checks fn has the form func(...) T or func(...) (T, error).
func NewConstructor(fn any) (*Constructor, error) {
	if fn == nil {
		return nil, fmt.Errorf("constructor is nil")
	}

	v := reflect.ValueOf(fn)
	ty := v.Type()
	if ty.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a func, got %s", ty)
	}
	if v.IsNil() {
		return nil, fmt.Errorf("constructor %s is nil", ty)
	}
	if ty.IsVariadic() {
		return nil, fmt.Errorf("constructor %s must not be variadic", ty)
	}

	c := &Constructor{fn: v}
	switch ty.NumOut() {
	case 1:
	case 2:
		if ty.Out(1) != errorType {
			return nil, fmt.Errorf("second result of constructor %s must be error", ty)
		}
		c.withError = true
	default:
		return nil, fmt.Errorf("constructor %s must return T or (T, error)", ty)
	}
	c.out = ty.Out(0)

	c.params = make([]reflect.Type, ty.NumIn())
	for i := range c.params {
		c.params[i] = ty.In(i)
	}
	return c, nil
}

// DefaultConstructor allocates a zero value of the struct behind ptrTy.
func DefaultConstructor(ptrTy reflect.Type) (*Constructor, bool) {
	if ptrTy.Kind() != reflect.Pointer || ptrTy.Elem().Kind() != reflect.Struct {
		return nil, false
	}
	return &Constructor{out: ptrTy}, true
}

func (ss *Constructor) Params() []reflect.Type {
	return ss.params
}

func (ss *Constructor) NumParams() int {
	return len(ss.params)
}

func (ss *Constructor) ReturnType() reflect.Type {
	return ss.out
}

// IsDefault reports whether c is the implicit zero-argument constructor.
func (ss *Constructor) IsDefault() bool {
	return !ss.fn.IsValid()
}

// Invoke calls the constructor, args must match Params.
func (ss *Constructor) Invoke(args []reflect.Value) (any, error) {
	if ss.IsDefault() {
		return reflect.New(ss.out.Elem()).Interface(), nil
	}

	results := ss.fn.Call(args)
	if ss.withError && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}

func (ss *Constructor) String() string {
	if ss.IsDefault() {
		return fmt.Sprintf("new(%s)", ss.out.Elem())
	}

	names := make([]string, len(ss.params))
	for i, p := range ss.params {
		names[i] = p.String()
	}
	return fmt.Sprintf("func(%s) %s", strings.Join(names, ", "), ss.out)
}
