package injection

import (
	"fmt"
	"reflect"
	"strings"
)

func typeName(ty reflect.Type) string {
	if ty == nil {
		return "<nil>"
	}
	return ty.String()
}

// MultipleRegistrationError is returned when a type is registered twice.
type MultipleRegistrationError struct {
	Type reflect.Type
}

func (e *MultipleRegistrationError) Error() string {
	return fmt.Sprintf("injection: type `%s` is already registered", typeName(e.Type))
}

// InvalidRegistrationError is returned for a registration that cannot be used.
type InvalidRegistrationError struct {
	Type   reflect.Type
	Reason string
}

func (e *InvalidRegistrationError) Error() string {
	return fmt.Sprintf("injection: invalid registration of `%s`: %s", typeName(e.Type), e.Reason)
}

// InvalidFactoryRegistrationError is returned when a factory adapter type does not fit its registration.
type InvalidFactoryRegistrationError struct {
	FactoryType reflect.Type
	Reason      string
}

func (e *InvalidFactoryRegistrationError) Error() string {
	return fmt.Sprintf("injection: invalid factory `%s`: %s", typeName(e.FactoryType), e.Reason)
}

// IllegalAbstractMethodCreationError is returned when a factory method cannot be synthesized.
type IllegalAbstractMethodCreationError struct {
	FactoryType reflect.Type
	Method      string
	Reason      string
}

func (e *IllegalAbstractMethodCreationError) Error() string {
	return fmt.Sprintf("injection: cannot create method `%s` of factory `%s`: %s", e.Method, typeName(e.FactoryType), e.Reason)
}

// InvalidDisposeStrategyError is returned when a dispose strategy does not fit the lifecycle or the implementation.
type InvalidDisposeStrategyError struct {
	Type     reflect.Type
	Strategy DisposeStrategy
	Reason   string
}

func (e *InvalidDisposeStrategyError) Error() string {
	return fmt.Sprintf("injection: invalid dispose strategy %s for `%s`: %s", e.Strategy, typeName(e.Type), e.Reason)
}

// TypeNotRegisteredError is returned when no registration serves the requested type.
type TypeNotRegisteredError struct {
	Type reflect.Type
}

func (e *TypeNotRegisteredError) Error() string {
	return fmt.Sprintf("injection: type `%s` is not registered", typeName(e.Type))
}

// CircularDependencyError is returned when a type is requested again while it is being resolved.
type CircularDependencyError struct {
	ResolvingType reflect.Type
	// ResolveStack holds the types being resolved, the root type first.
	ResolveStack []reflect.Type
}

func (e *CircularDependencyError) Error() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("injection: circular dependency has been detected when trying to resolve `%s`.\n", typeName(e.ResolvingType)))
	sb.WriteString("Resolve stack that resulted in the circular dependency:\n")
	sb.WriteString(fmt.Sprintf("`%s` resolved as dependency of\n", typeName(e.ResolvingType)))
	for i := len(e.ResolveStack) - 1; i > 0; i-- {
		sb.WriteString(fmt.Sprintf("`%s` resolved as dependency of\n", typeName(e.ResolveStack[i])))
	}
	if len(e.ResolveStack) > 0 {
		sb.WriteString(fmt.Sprintf("`%s` which is the root type being resolved.", typeName(e.ResolveStack[0])))
	}
	return sb.String()
}

// MultitonResolveError is returned when a multiton is resolved without a usable scope argument.
type MultitonResolveError struct {
	Type      reflect.Type
	ScopeType reflect.Type
	Reason    string
}

func (e *MultitonResolveError) Error() string {
	return fmt.Sprintf("injection: cannot resolve multiton `%s` with scope `%s`: %s", typeName(e.Type), typeName(e.ScopeType), e.Reason)
}

// ConstructorNotMatchingError explains why one constructor was rejected.
type ConstructorNotMatchingError struct {
	Type        reflect.Type
	Constructor string
	// Parameter is the index of the first parameter that could not be satisfied.
	Parameter int
	Err       error
}

func (e *ConstructorNotMatchingError) Error() string {
	return fmt.Sprintf("injection: constructor %s of `%s` does not match at parameter %d: %v", e.Constructor, typeName(e.Type), e.Parameter, e.Err)
}

func (e *ConstructorNotMatchingError) Unwrap() error {
	return e.Err
}

// NoMatchingConstructorFoundError aggregates the rejection of every candidate constructor.
type NoMatchingConstructorFoundError struct {
	Type   reflect.Type
	Errors []*ConstructorNotMatchingError
}

func (e *NoMatchingConstructorFoundError) Error() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("injection: no matching constructor found for `%s`", typeName(e.Type)))
	for _, err := range e.Errors {
		sb.WriteString("\n\t")
		sb.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n\t"))
	}
	return sb.String()
}

func (e *NoMatchingConstructorFoundError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, err := range e.Errors {
		errs = append(errs, err)
	}
	return errs
}

// NoPublicConstructorFoundError is returned when a registration has no constructor to try.
type NoPublicConstructorFoundError struct {
	Type reflect.Type
}

func (e *NoPublicConstructorFoundError) Error() string {
	return fmt.Sprintf("injection: no constructor found for `%s`", typeName(e.Type))
}

// CreationFailedError wraps the error returned by a constructor or a factory method.
type CreationFailedError struct {
	Type reflect.Type
	Err  error
}

func (e *CreationFailedError) Error() string {
	return fmt.Sprintf("injection: creating `%s` failed: %v", typeName(e.Type), e.Err)
}

func (e *CreationFailedError) Unwrap() error {
	return e.Err
}

// DirectResolveWithRegisteredFactoryNotAllowedError is reported by validators for types that have a factory
// and are resolved directly.
type DirectResolveWithRegisteredFactoryNotAllowedError struct {
	Type reflect.Type
}

func (e *DirectResolveWithRegisteredFactoryNotAllowedError) Error() string {
	return fmt.Sprintf("injection: `%s` has a registered factory and must not be resolved directly", typeName(e.Type))
}

// InternalResolveError is returned when resolution ends in an unexpected state.
type InternalResolveError struct {
	Type   reflect.Type
	Detail string
}

func (e *InternalResolveError) Error() string {
	return fmt.Sprintf("injection: internal error resolving `%s`: %s", typeName(e.Type), e.Detail)
}
