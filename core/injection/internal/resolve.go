package internal

import (
	"fmt"
	"reflect"

	assert "github.com/arl/assertgo"
	"github.com/davecgh/go-spew/spew"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/option"
)

var resolverType = reflect.TypeOf((*injection.IResolver)(nil)).Elem()

func (ss *Container) resolve(ty reflect.Type, args []any, stack *container.List[reflect.Type]) (any, error) {
	p, err := ss.plan(ty, args, stack)
	if err != nil {
		return nil, err
	}
	return ss.materialize(p)
}

// plan decides how ty is created without creating anything, the result is an *existingInstance,
// a *toBeResolved or a *factoryMethodToBeResolved.
func (ss *Container) plan(ty reflect.Type, args []any, stack *container.List[reflect.Type]) (any, error) {
	r := ss.registrations.Find(ty)
	if r == nil {
		return nil, &injection.TypeNotRegisteredError{Type: ty}
	}

	if container.ListContains(*stack, ty) {
		return nil, &injection.CircularDependencyError{ResolvingType: ty, ResolveStack: stack.Copy()}
	}
	stack.Add(ty)
	defer stack.RemoveLast()

	if r.IsFactoryAdapter() {
		return &existingInstance{instance: r.Adapter()}, nil
	}

	t := target{ty: ty, reg: r, storeKey: storeKeyOf(r, ty)}
	switch r.Lifecycle() {
	case injection.Singleton:
		if instance, ok := ss.store.GetSingleton(t.storeKey); ok {
			return &existingInstance{instance: instance}, nil
		}
	case injection.Multiton:
		if len(args) == 0 || args[0] == nil {
			return nil, &injection.MultitonResolveError{Type: ty, ScopeType: r.ScopeType(), Reason: "the first argument must be the scope"}
		}
		if !reflect.TypeOf(args[0]).AssignableTo(r.ScopeType()) {
			return nil, &injection.MultitonResolveError{Type: ty, ScopeType: r.ScopeType(), Reason: fmt.Sprintf("scope argument has type `%T`", args[0])}
		}
		t.scope = args[0]
		instance, ok, err := ss.store.GetMultiton(t.multitonKey(), t.scope)
		if err != nil {
			return nil, &injection.MultitonResolveError{Type: ty, ScopeType: r.ScopeType(), Reason: err.Error()}
		}
		if ok {
			return &existingInstance{instance: instance}, nil
		}
		args = args[1:]
	}
	t.stack = stack.Copy()

	if r.HasFactoryMethod() {
		return &factoryMethodToBeResolved{target: t}, nil
	}

	ctors := container.Filter[*injection.Constructor](container.NewList(r.Constructors()...), func(c *injection.Constructor) bool {
		return c.ReturnType().AssignableTo(ty)
	})
	if ctors.IsEmpty() {
		if r.ImplementationType().Kind() == reflect.Interface && !r.IsOpenGeneric() {
			return nil, &injection.InvalidRegistrationError{Type: ty, Reason: "interface registered without factory method"}
		}
		return nil, &injection.NoPublicConstructorFoundError{Type: ty}
	}
	container.SortStableBy(ctors, func(lhs, rhs *injection.Constructor) bool {
		return lhs.NumParams() > rhs.NumParams()
	})

	args = mergeParameters(r.Parameters(), args)
	mismatches := make([]*injection.ConstructorNotMatchingError, 0, ctors.Len())
	for _, ctor := range ctors {
		slots, mismatch := ss.matchConstructor(ty, ctor, args, stack)
		if mismatch == nil {
			return &toBeResolved{target: t, ctor: ctor, slots: slots}, nil
		}
		mismatches = append(mismatches, mismatch)
	}
	return nil, &injection.NoMatchingConstructorFoundError{Type: ty, Errors: mismatches}
}

// matchConstructor satisfies every parameter from the caller arguments, the special injectors,
// the registrations or, for nilable parameters, a remaining untyped nil argument.
func (ss *Container) matchConstructor(ty reflect.Type, ctor *injection.Constructor, args []any, stack *container.List[reflect.Type]) ([]argSlot, *injection.ConstructorNotMatchingError) {
	pool := container.NewList(args...)
	slots := make([]argSlot, ctor.NumParams())
	for i, paramTy := range ctor.Params() {
		if idx := firstAssignable(pool, paramTy); idx >= 0 {
			slots[i] = argSlot{value: reflect.ValueOf(pool[idx])}
			pool.RemoveIndex(idx)
			continue
		}

		if v, ok, err := ss.special(paramTy, stack); ok {
			if err != nil {
				return nil, &injection.ConstructorNotMatchingError{Type: ty, Constructor: ctor.String(), Parameter: i, Err: err}
			}
			slots[i] = argSlot{value: v}
			continue
		}

		nested, err := ss.plan(paramTy, nil, stack)
		if err == nil {
			slots[i] = argSlot{plan: nested}
			continue
		}

		if idx := container.ListSearch[any](pool, nil); idx >= 0 && isNilable(paramTy) {
			slots[i] = argSlot{value: reflect.Zero(paramTy)}
			pool.RemoveIndex(idx)
			continue
		}
		return nil, &injection.ConstructorNotMatchingError{Type: ty, Constructor: ctor.String(), Parameter: i, Err: err}
	}
	return slots, nil
}

// special creates the values the container injects itself.
func (ss *Container) special(ty reflect.Type, stack *container.List[reflect.Type]) (reflect.Value, bool, error) {
	var instance any
	var err error
	switch {
	case logging.IsLoggerInjector(ty):
		instance, err = logging.NewLoggerInjector(ty, ss.handler)
	case option.IsOptionInjector(ty):
		instance, err = ss.options.GetOption(ty)
	case ty == resolverType:
		instance = newCallResolver(ss, stack.Copy())
	default:
		return reflect.Value{}, false, nil
	}
	if err != nil {
		return reflect.Value{}, true, err
	}
	return reflect.ValueOf(instance), true, nil
}

func (ss *Container) materialize(p any) (any, error) {
	switch p := p.(type) {
	case *existingInstance:
		return p.instance, nil
	case *factoryMethodToBeResolved:
		if instance, ok := ss.cached(&p.target); ok {
			return instance, nil
		}

		instance, err := p.reg.FactoryMethod()(newCallResolver(ss, p.stack))
		if err != nil {
			return nil, &injection.CreationFailedError{Type: p.ty, Err: err}
		}
		if instance != nil && !reflect.TypeOf(instance).AssignableTo(p.ty) {
			return nil, &injection.CreationFailedError{Type: p.ty, Err: fmt.Errorf("factory method returned `%T`", instance)}
		}
		return ss.created(&p.target, instance), nil
	case *toBeResolved:
		if instance, ok := ss.cached(&p.target); ok {
			return instance, nil
		}

		params := p.ctor.Params()
		assert.True(len(params) == len(p.slots))
		args := make([]reflect.Value, len(p.slots))
		for i, slot := range p.slots {
			if slot.plan == nil {
				args[i] = slot.value
				continue
			}
			instance, err := ss.materialize(slot.plan)
			if err != nil {
				return nil, err
			}
			args[i] = valueOf(instance, params[i])
		}

		instance, err := p.ctor.Invoke(args)
		if err != nil {
			return nil, &injection.CreationFailedError{Type: p.ty, Err: err}
		}
		if err = ss.inject(instance, p.stack); err != nil {
			return nil, err
		}
		return ss.created(&p.target, instance), nil
	default:
		return nil, &injection.InternalResolveError{Type: nil, Detail: "unexpected resolve plan " + spew.Sdump(p)}
	}
}

// cached looks the target up again, an earlier part of the same plan may have created it.
func (ss *Container) cached(t *target) (any, bool) {
	switch t.reg.Lifecycle() {
	case injection.Singleton:
		return ss.store.GetSingleton(t.storeKey)
	case injection.Multiton:
		instance, ok, _ := ss.store.GetMultiton(t.multitonKey(), t.scope)
		return instance, ok
	default:
		return nil, false
	}
}

// created stores a new instance and runs the on-create hook, if another resolve stored an
// instance first that one is returned instead.
func (ss *Container) created(t *target, instance any) any {
	owned := t.reg.DisposeStrategy() == injection.ContainerOwned
	switch t.reg.Lifecycle() {
	case injection.Singleton:
		stored, added := ss.store.SetSingleton(t.storeKey, instance, owned)
		if !added {
			return stored
		}
	case injection.Multiton:
		stored, added, err := ss.store.SetMultiton(t.multitonKey(), t.scope, instance, owned)
		assert.True(err == nil)
		if err == nil && !added {
			return stored
		}
	}

	ss.logger.Tracef("created %T for %s", instance, t.ty)
	if hook := t.reg.OnCreate(); hook != nil {
		hook(instance)
	}
	return instance
}

func (t *target) multitonKey() MultitonKey {
	return MultitonKey{Implementation: t.storeKey, Scope: t.reg.ScopeType()}
}

// storeKeyOf shares singletons between interfaces registered for the same implementation,
// open generics store one instance per instantiation.
func storeKeyOf(r *injection.Registration, ty reflect.Type) reflect.Type {
	if r.IsOpenGeneric() {
		return ty
	}
	return r.ImplementationType()
}

func firstAssignable(pool container.List[any], ty reflect.Type) int {
	for idx, arg := range pool {
		if arg != nil && reflect.TypeOf(arg).AssignableTo(ty) {
			return idx
		}
	}
	return -1
}

// mergeParameters keeps fixed parameters at their position, Unset positions and the positions
// after the fixed parameters take the caller arguments from left to right.
func mergeParameters(fixed []any, args []any) []any {
	if len(fixed) == 0 {
		return args
	}

	merged := make([]any, 0, len(fixed)+len(args))
	next := 0
	for _, p := range fixed {
		if p != injection.Unset {
			merged = append(merged, p)
			continue
		}
		if next < len(args) {
			merged = append(merged, args[next])
			next++
		}
	}
	return append(merged, args[next:]...)
}
