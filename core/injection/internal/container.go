package internal

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/option"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/task"
)

var _ injection.IContainer = (*Container)(nil)

type Options struct {
	// Name is written to the log data of the container's own logger.
	Name string
	// Synchronized serializes top level calls with a container wide lock.
	Synchronized bool
	// Handler receives the container's logs and the logs of injected *logging.Logger[T].
	Handler logging.ILogHandler
	// Options serves injected *option.Option[T], a repository without configuration is used if nil.
	Options *option.Repository
}

type Container struct {
	id           string
	synchronized bool
	lock         sync.Mutex
	disposed     atomic.Bool

	registrations *RegistrationCollection
	store         *InstanceStore

	handler logging.ILogHandler
	options *option.Repository
	logger  logging.ILogger
}

func NewContainer(opt Options) *Container {
	ss := &Container{
		id:            uuid.NewString(),
		synchronized:  opt.Synchronized,
		registrations: NewRegistrationCollection(),
		handler:       opt.Handler,
		options:       opt.Options,
	}
	if ss.options == nil {
		ss.options = option.NewOptionRepository(nil)
	}
	ss.store = NewInstanceStore(ss.evicted)

	name := opt.Name
	if name == "" {
		name = "Container"
	}
	loggerInjector, _ := logging.NewLoggerInjector(reflect.TypeOf((*logging.Logger[Container])(nil)), ss.handler)
	ss.logger = loggerInjector.(*logging.Logger[Container]).Get(func(data *logging.LogData) {
		data.Name = name
		data.ID = ss.id
	})
	return ss
}

// ID is the unique id of this container, it is attached to every log record of the container.
func (ss *Container) ID() string {
	return ss.id
}

func (ss *Container) enter() func() {
	if !ss.synchronized {
		return func() {}
	}
	ss.lock.Lock()
	return ss.lock.Unlock
}

func (ss *Container) Register(interfaceType, implementationType reflect.Type, lifecycle injection.Lifecycle, opts ...injection.RegistrationOption) error {
	defer ss.enter()()

	r, err := injection.NewTypedRegistration(interfaceType, implementationType, lifecycle, opts...)
	if err != nil {
		return err
	}
	return ss.add(r)
}

func (ss *Container) RegisterMultiple(interfaceTypes []reflect.Type, implementationType reflect.Type, lifecycle injection.Lifecycle, opts ...injection.RegistrationOption) error {
	defer ss.enter()()

	if len(interfaceTypes) == 0 {
		return &injection.InvalidRegistrationError{Type: implementationType, Reason: "no interface types given"}
	}

	registrations := make([]*injection.Registration, 0, len(interfaceTypes))
	for _, interfaceType := range interfaceTypes {
		r, err := injection.NewTypedRegistration(interfaceType, implementationType, lifecycle, opts...)
		if err != nil {
			return err
		}
		registrations = append(registrations, r)
	}
	return ss.add(registrations...)
}

func (ss *Container) RegisterOpenGeneric(interfaceDefinition, implementationDefinition reflect.Type, lifecycle injection.Lifecycle, opts ...injection.RegistrationOption) error {
	defer ss.enter()()

	r, err := injection.NewOpenGenericRegistration(interfaceDefinition, implementationDefinition, lifecycle, opts...)
	if err != nil {
		return err
	}
	return ss.add(r)
}

func (ss *Container) RegisterSingleType(ty reflect.Type, lifecycle injection.Lifecycle, opts ...injection.RegistrationOption) error {
	defer ss.enter()()

	r, err := injection.NewSingleTypeRegistration(ty, lifecycle, opts...)
	if err != nil {
		return err
	}
	return ss.add(r)
}

func (ss *Container) RegisterMultiton(interfaceType, implementationType, scopeType reflect.Type, opts ...injection.RegistrationOption) error {
	defer ss.enter()()

	r, err := injection.NewMultitonRegistration(interfaceType, implementationType, scopeType, opts...)
	if err != nil {
		return err
	}
	return ss.add(r)
}

func (ss *Container) add(registrations ...*injection.Registration) error {
	all := container.NewList(registrations...)
	for _, r := range registrations {
		if r.FactoryType() == nil {
			continue
		}
		adapter, err := ss.newFactoryAdapter(r)
		if err != nil {
			return err
		}
		all.Add(injection.NewFactoryAdapterRegistration(r.FactoryType(), adapter))
	}

	if err := ss.registrations.Add(all...); err != nil {
		return err
	}
	all.Scan(func(r *injection.Registration) {
		ss.logger.Debugf("registered %s", r)
	})
	return nil
}

func (ss *Container) IsTypeRegistered(ty reflect.Type) bool {
	return ss.registrations.Contains(ty)
}

func (ss *Container) GetRegistrations() []*injection.Registration {
	return ss.registrations.Registrations()
}

func (ss *Container) Resolve(ty reflect.Type, args ...any) (any, error) {
	defer ss.enter()()

	stack := container.NewList[reflect.Type]()
	return ss.resolve(ty, args, &stack)
}

func (ss *Container) ClearMultitonInstances(ty reflect.Type) error {
	defer ss.enter()()

	r := ss.registrations.Find(ty)
	if r == nil || r.Lifecycle() != injection.Multiton {
		return nil
	}

	instances := ss.store.ClearMultiton(MultitonKey{Implementation: r.ImplementationType(), Scope: r.ScopeType()})
	ss.logger.Infof("cleared multiton instances of %s", r)
	return errors.Join(ss.closeAll(instances)...)
}

func (ss *Container) Dispose() error {
	defer ss.enter()()

	if !ss.disposed.CompareAndSwap(false, true) {
		return nil
	}

	ss.registrations.Clear()
	instances := ss.store.Drain()
	errs := ss.closeAll(instances)
	ss.logger.Infof("disposed, %d container owned instances closed, %d failed", len(instances)-len(errs), len(errs))
	return errors.Join(errs...)
}

func (ss *Container) closeAll(instances []any) []error {
	var errs []error
	for _, instance := range instances {
		if err := ss.close(instance); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (ss *Container) close(instance any) error {
	closer, ok := instance.(io.Closer)
	if !ok {
		return nil
	}
	if err := closer.Close(); err != nil {
		ss.logger.Warnf("close %T failed: %v", instance, err)
		return fmt.Errorf("close %T: %w", instance, err)
	}
	return nil
}

// evicted runs on the runtime cleanup goroutine and must not block it.
func (ss *Container) evicted(instance any) {
	task.Execute(func() {
		ss.logger.Infof("scope of %T collected", instance)
		_ = ss.close(instance)
	})
}
