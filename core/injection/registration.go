package injection

import (
	"fmt"
	"reflect"
	"strings"
)

type unsetParameter struct{}

// Unset marks a fixed parameter position that is filled from the caller's arguments.
var Unset any = unsetParameter{}

// FactoryMethod creates an instance itself, r continues the current resolution.
type FactoryMethod func(r IResolver) (any, error)

// Registration describes how the container satisfies one requested type.
// It is immutable once it has been created.
type Registration struct {
	interfaceType      reflect.Type
	implementationType reflect.Type
	lifecycle          Lifecycle
	scopeType          reflect.Type
	openGeneric        bool
	definition         string

	constructors    []*Constructor
	parameters      []any
	onCreate        func(instance any)
	disposeStrategy DisposeStrategy
	factoryMethod   FactoryMethod
	factoryType     reflect.Type
	adapter         any

	parametersSet      bool
	onCreateSet        bool
	disposeStrategySet bool
	factoryTypeSet     bool
}

func (ss *Registration) InterfaceType() reflect.Type {
	return ss.interfaceType
}

func (ss *Registration) ImplementationType() reflect.Type {
	return ss.implementationType
}

func (ss *Registration) Lifecycle() Lifecycle {
	return ss.lifecycle
}

// ScopeType is the type of the scope argument of a multiton, nil otherwise.
func (ss *Registration) ScopeType() reflect.Type {
	return ss.scopeType
}

func (ss *Registration) IsOpenGeneric() bool {
	return ss.openGeneric
}

// Definition is the generic definition served by an open generic registration.
func (ss *Registration) Definition() string {
	return ss.definition
}

func (ss *Registration) Constructors() []*Constructor {
	return append([]*Constructor(nil), ss.constructors...)
}

// Parameters returns a copy of the fixed parameters, Unset marks positions taken from the caller.
func (ss *Registration) Parameters() []any {
	return append([]any(nil), ss.parameters...)
}

func (ss *Registration) OnCreate() func(instance any) {
	return ss.onCreate
}

func (ss *Registration) DisposeStrategy() DisposeStrategy {
	return ss.disposeStrategy
}

func (ss *Registration) FactoryMethod() FactoryMethod {
	return ss.factoryMethod
}

func (ss *Registration) HasFactoryMethod() bool {
	return ss.factoryMethod != nil
}

// FactoryType is the factory adapter type attached with WithFactory, nil if none.
func (ss *Registration) FactoryType() reflect.Type {
	return ss.factoryType
}

// Adapter is the synthesized factory of a factory adapter registration.
func (ss *Registration) Adapter() any {
	return ss.adapter
}

func (ss *Registration) IsFactoryAdapter() bool {
	return ss.adapter != nil
}

func (ss *Registration) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%s %s", ss.lifecycle, typeName(ss.interfaceType)))
	if ss.implementationType != nil && ss.implementationType != ss.interfaceType {
		sb.WriteString(" -> " + typeName(ss.implementationType))
	}
	if ss.scopeType != nil {
		sb.WriteString(" scoped by " + typeName(ss.scopeType))
	}
	return sb.String()
}

// RegistrationOption configures a registration while it is created.
type RegistrationOption func(r *Registration) error

// WithConstructor adds a candidate constructor, func(...) T or func(...) (T, error).
func WithConstructor(ctor any) RegistrationOption {
	return func(r *Registration) error {
		c, err := NewConstructor(ctor)
		if err != nil {
			return &InvalidRegistrationError{Type: r.interfaceType, Reason: err.Error()}
		}
		r.constructors = append(r.constructors, c)
		return nil
	}
}

// WithConstructors adds several candidate constructors.
func WithConstructors(ctors ...any) RegistrationOption {
	return func(r *Registration) error {
		for _, ctor := range ctors {
			if err := WithConstructor(ctor)(r); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithParameters fixes constructor arguments, use Unset for a position filled by the caller.
func WithParameters(params ...any) RegistrationOption {
	return func(r *Registration) error {
		if r.parametersSet {
			return &InvalidRegistrationError{Type: r.interfaceType, Reason: "parameters are already set"}
		}
		if len(params) == 0 {
			return &InvalidRegistrationError{Type: r.interfaceType, Reason: "WithParameters needs at least one parameter"}
		}
		r.parameters = append([]any(nil), params...)
		r.parametersSet = true
		return nil
	}
}

// WithOnCreate sets a hook invoked once for every newly created instance.
func WithOnCreate(fn func(instance any)) RegistrationOption {
	return func(r *Registration) error {
		if r.onCreateSet {
			return &InvalidRegistrationError{Type: r.interfaceType, Reason: "on-create hook is already set"}
		}
		if fn == nil {
			return &InvalidRegistrationError{Type: r.interfaceType, Reason: "on-create hook is nil"}
		}
		r.onCreate = fn
		r.onCreateSet = true
		return nil
	}
}

// OnCreate is the typed form of WithOnCreate.
func OnCreate[T any](fn func(instance T)) RegistrationOption {
	return WithOnCreate(func(instance any) {
		if v, ok := instance.(T); ok {
			fn(v)
		}
	})
}

func WithDisposeStrategy(strategy DisposeStrategy) RegistrationOption {
	return func(r *Registration) error {
		if r.disposeStrategySet {
			return &InvalidRegistrationError{Type: r.interfaceType, Reason: "dispose strategy is already set"}
		}
		r.disposeStrategy = strategy
		r.disposeStrategySet = true
		return nil
	}
}

// WithFactoryMethod lets fn create the instances instead of a constructor.
func WithFactoryMethod(fn FactoryMethod) RegistrationOption {
	return func(r *Registration) error {
		if r.factoryMethod != nil {
			return &InvalidRegistrationError{Type: r.interfaceType, Reason: "factory method is already set"}
		}
		if fn == nil {
			return &InvalidRegistrationError{Type: r.interfaceType, Reason: "factory method is nil"}
		}
		r.factoryMethod = fn
		return nil
	}
}

// WithTypedFactoryMethod is the typed form of WithFactoryMethod.
func WithTypedFactoryMethod[T any](fn func(r IResolver) (T, error)) RegistrationOption {
	if fn == nil {
		return WithFactoryMethod(nil)
	}
	return WithFactoryMethod(func(r IResolver) (any, error) {
		return fn(r)
	})
}

// WithFactory attaches a factory adapter, factoryType is a pointer to a struct of create funcs.
func WithFactory(factoryType reflect.Type) RegistrationOption {
	return func(r *Registration) error {
		if r.factoryTypeSet {
			return &InvalidRegistrationError{Type: r.interfaceType, Reason: "factory is already set"}
		}
		if factoryType == nil || factoryType.Kind() != reflect.Pointer || factoryType.Elem().Kind() != reflect.Struct {
			return &InvalidFactoryRegistrationError{FactoryType: factoryType, Reason: "factory must be a pointer to a struct"}
		}
		r.factoryType = factoryType
		r.factoryTypeSet = true
		return nil
	}
}

// Factory is the typed form of WithFactory.
func Factory[F any]() RegistrationOption {
	return WithFactory(TypeOf[F]())
}

// NewTypedRegistration registers implementationType for interfaceType.
func NewTypedRegistration(interfaceType, implementationType reflect.Type, lifecycle Lifecycle, opts ...RegistrationOption) (*Registration, error) {
	if lifecycle == Multiton {
		return nil, &InvalidRegistrationError{Type: interfaceType, Reason: "multitons need a scope type, use the multiton registration"}
	}
	return newRegistration(&Registration{
		interfaceType:      interfaceType,
		implementationType: implementationType,
		lifecycle:          lifecycle,
	}, opts)
}

// NewSingleTypeRegistration registers ty for itself.
func NewSingleTypeRegistration(ty reflect.Type, lifecycle Lifecycle, opts ...RegistrationOption) (*Registration, error) {
	if lifecycle == Multiton {
		return nil, &InvalidRegistrationError{Type: ty, Reason: "multitons need a scope type, use the multiton registration"}
	}
	return newRegistration(&Registration{
		interfaceType:      ty,
		implementationType: ty,
		lifecycle:          lifecycle,
	}, opts)
}

// NewMultitonRegistration registers implementationType with one instance per scope key of scopeType.
func NewMultitonRegistration(interfaceType, implementationType, scopeType reflect.Type, opts ...RegistrationOption) (*Registration, error) {
	if scopeType == nil {
		return nil, &InvalidRegistrationError{Type: interfaceType, Reason: "multiton scope type is nil"}
	}
	return newRegistration(&Registration{
		interfaceType:      interfaceType,
		implementationType: implementationType,
		lifecycle:          Multiton,
		scopeType:          scopeType,
	}, opts)
}

// NewOpenGenericRegistration registers every instantiation of the generic interface definition.
// Both types may be any instantiation of their definitions, the constructors must be instantiated
// constructors of the implementation definition.
func NewOpenGenericRegistration(interfaceDefinition, implementationDefinition reflect.Type, lifecycle Lifecycle, opts ...RegistrationOption) (*Registration, error) {
	if lifecycle == Multiton {
		return nil, &InvalidRegistrationError{Type: interfaceDefinition, Reason: "open generic multitons are not supported"}
	}
	if interfaceDefinition == nil || implementationDefinition == nil {
		return nil, &InvalidRegistrationError{Type: interfaceDefinition, Reason: "open generic definitions must not be nil"}
	}
	definition, ok := GenericDefinition(interfaceDefinition)
	if !ok {
		return nil, &InvalidRegistrationError{Type: interfaceDefinition, Reason: "not an instantiation of a generic type"}
	}
	if _, ok = GenericDefinition(implementationDefinition); !ok {
		return nil, &InvalidRegistrationError{Type: implementationDefinition, Reason: "not an instantiation of a generic type"}
	}
	return newRegistration(&Registration{
		interfaceType:      interfaceDefinition,
		implementationType: implementationDefinition,
		lifecycle:          lifecycle,
		openGeneric:        true,
		definition:         definition,
	}, opts)
}

// NewFactoryAdapterRegistration registers the synthesized adapter of factoryType as a singleton.
func NewFactoryAdapterRegistration(factoryType reflect.Type, adapter any) *Registration {
	return &Registration{
		interfaceType:      factoryType,
		implementationType: factoryType,
		lifecycle:          Singleton,
		adapter:            adapter,
	}
}

func newRegistration(r *Registration, opts []RegistrationOption) (*Registration, error) {
	if r.interfaceType == nil || r.implementationType == nil {
		return nil, &InvalidRegistrationError{Type: r.interfaceType, Reason: "registered types must not be nil"}
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.factoryMethod != nil && len(r.constructors) > 0 {
		return nil, &InvalidRegistrationError{Type: r.interfaceType, Reason: "constructors and factory method are mutually exclusive"}
	}
	if r.factoryMethod == nil && len(r.constructors) == 0 && !r.openGeneric {
		if c, ok := DefaultConstructor(r.implementationType); ok {
			r.constructors = append(r.constructors, c)
		}
	}

	if err := r.validateTypes(); err != nil {
		return nil, err
	}
	if err := r.validateDisposeStrategy(); err != nil {
		return nil, err
	}
	return r, nil
}

func (ss *Registration) validateTypes() error {
	if ss.openGeneric {
		if len(ss.constructors) == 0 && ss.factoryMethod == nil {
			return &InvalidRegistrationError{Type: ss.interfaceType, Reason: "open generic registrations need instantiated constructors"}
		}
		implDefinition, _ := GenericDefinition(ss.implementationType)
		for _, c := range ss.constructors {
			if d, _ := GenericDefinition(c.ReturnType()); d != implDefinition {
				return &InvalidRegistrationError{Type: ss.interfaceType, Reason: fmt.Sprintf("constructor %s does not create an instantiation of %s", c, implDefinition)}
			}
		}
		return nil
	}

	if !ss.implementationType.AssignableTo(ss.interfaceType) {
		return &InvalidRegistrationError{Type: ss.interfaceType, Reason: fmt.Sprintf("`%s` does not implement it", ss.implementationType)}
	}
	for _, c := range ss.constructors {
		if !c.ReturnType().AssignableTo(ss.implementationType) {
			return &InvalidRegistrationError{Type: ss.interfaceType, Reason: fmt.Sprintf("constructor %s does not create `%s`", c, ss.implementationType)}
		}
	}
	return nil
}

func (ss *Registration) validateDisposeStrategy() error {
	disposable := IsDisposable(ss.implementationType)
	switch {
	case ss.lifecycle == Transient && ss.disposeStrategy != NoDisposeStrategy:
		return &InvalidDisposeStrategyError{Type: ss.interfaceType, Strategy: ss.disposeStrategy, Reason: "transient instances are not tracked"}
	case !disposable && ss.disposeStrategy != NoDisposeStrategy:
		return &InvalidDisposeStrategyError{Type: ss.interfaceType, Strategy: ss.disposeStrategy, Reason: "implementation is not disposable"}
	case disposable && ss.lifecycle != Transient && ss.disposeStrategy == NoDisposeStrategy:
		return &InvalidDisposeStrategyError{Type: ss.interfaceType, Strategy: ss.disposeStrategy, Reason: "disposable singletons and multitons need a dispose strategy"}
	}
	return nil
}

// GenericDefinition returns the identity of the generic definition ty is instantiated from.
func GenericDefinition(ty reflect.Type) (string, bool) {
	if ty == nil {
		return "", false
	}

	prefix := ""
	for ty.Kind() == reflect.Pointer && ty.Name() == "" {
		prefix += "*"
		ty = ty.Elem()
	}

	name := ty.Name()
	idx := strings.IndexByte(name, '[')
	if idx < 0 {
		return "", false
	}
	return prefix + ty.PkgPath() + "." + name[:idx], true
}
