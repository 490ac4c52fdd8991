package internal_test

import (
	"errors"
	"io"
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection/internal"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label string

func (l label) Area() float64 { return float64(len(l)) }

type auditLog struct {
	FileLogger
}

func TestResolveShape(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.Register[IShape, *Circle](c, injection.Transient))
	assert.True(t, c.IsTypeRegistered(injection.TypeOf[IShape]()))
	assert.False(t, c.IsTypeRegistered(injection.TypeOf[IRound]()))

	shape, err := injection.Resolve[IShape](c)
	require.NoError(t, err)
	assert.IsType(t, &Circle{}, shape)

	circle, err := injection.Resolve[*Circle](c)
	require.NoError(t, err, "registrations are found by implementation too")
	assert.NotNil(t, circle)

	_, err = c.Resolve(injection.TypeOf[IRound]())
	var notRegistered *injection.TypeNotRegisteredError
	assert.ErrorAs(t, err, &notRegistered)
}

func TestRegisterTwice(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.Register[IShape, *Circle](c, injection.Transient))

	var multiple *injection.MultipleRegistrationError
	err := injection.Register[IShape, *Circle](c, injection.Singleton, injection.WithParameters(1.0))
	assert.ErrorAs(t, err, &multiple)
	assert.Equal(t, injection.TypeOf[IShape](), multiple.Type)

	err = c.RegisterMultiple([]reflect.Type{injection.TypeOf[IRound](), injection.TypeOf[IShape]()}, injection.TypeOf[*Circle](), injection.Transient)
	assert.ErrorAs(t, err, &multiple)
	assert.False(t, c.IsTypeRegistered(injection.TypeOf[IRound]()), "multiple registrations are all or nothing")
	assert.Len(t, c.GetRegistrations(), 1)
}

func TestTransient(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.Register[IShape, *Circle](c, injection.Transient))

	a := injection.MustResolve[IShape](c)
	b := injection.MustResolve[IShape](c)
	assert.NotSame(t, a, b)
}

func TestSingleton(t *testing.T) {
	c := newContainer()
	created := 0
	require.NoError(t, injection.RegisterMultiple[*Circle](c, []reflect.Type{injection.TypeOf[IShape](), injection.TypeOf[IRound]()}, injection.Singleton,
		injection.OnCreate(func(circle *Circle) { created++ })))

	shape := injection.MustResolve[IShape](c)
	assert.Same(t, shape, injection.MustResolve[IShape](c))
	assert.Same(t, shape, injection.MustResolve[IRound](c), "interfaces registered together share the singleton")
	assert.Same(t, shape, injection.MustResolve[*Circle](c))
	assert.Equal(t, 1, created, "the on-create hook runs once per instance")
}

func TestSingletonConcurrent(t *testing.T) {
	for _, synchronized := range []bool{false, true} {
		c := internal.NewContainer(internal.Options{Synchronized: synchronized})
		require.NoError(t, injection.Register[IShape, *Circle](c, injection.Singleton))

		var wg sync.WaitGroup
		results := make([]IShape, 32)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = injection.MustResolve[IShape](c)
			}()
		}
		wg.Wait()

		for _, r := range results {
			assert.Same(t, results[0], r)
		}
	}
}

func TestMultiton(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.RegisterMultiton[IConnection, *Connection, *session](c, injection.WithDisposeStrategy(injection.ContainerOwned)))

	s1, s2 := &session{ID: "1"}, &session{ID: "2"}
	a1 := injection.MustResolve[IConnection](c, s1)
	assert.Same(t, a1, injection.MustResolve[IConnection](c, s1))
	a2 := injection.MustResolve[IConnection](c, s2)
	assert.NotSame(t, a1, a2)

	var multitonErr *injection.MultitonResolveError
	_, err := injection.Resolve[IConnection](c)
	assert.ErrorAs(t, err, &multitonErr, "multitons need a scope")
	_, err = injection.Resolve[IConnection](c, "session")
	assert.ErrorAs(t, err, &multitonErr, "the scope must have the scope type")

	require.NoError(t, injection.ClearMultitonInstances[IConnection](c))
	assert.EqualValues(t, 1, a1.(*Connection).closed.Load(), "cleared container owned instances are closed")
	assert.EqualValues(t, 1, a2.(*Connection).closed.Load())
	assert.NotSame(t, a1, injection.MustResolve[IConnection](c, s1))

	assert.NoError(t, injection.ClearMultitonInstances[IShape](c), "clearing unknown types is a no-op")
}

func TestMultitonScopeIsCollected(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.RegisterMultiton[IConnection, *Connection, *session](c, injection.WithDisposeStrategy(injection.ContainerOwned)))

	var conn *Connection
	func() {
		conn = injection.MustResolve[IConnection](c, &session{ID: "short lived"}).(*Connection)
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return conn.closed.Load() == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestCircularDependency(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.Register[IA, *cycleA](c, injection.Transient, injection.WithConstructor(newCycleA)))
	require.NoError(t, injection.Register[IB, *cycleB](c, injection.Transient, injection.WithConstructor(newCycleB)))

	_, err := c.Resolve(injection.TypeOf[IA]())
	var circular *injection.CircularDependencyError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, injection.TypeOf[IA](), circular.ResolvingType)
	assert.Equal(t, []reflect.Type{injection.TypeOf[IA](), injection.TypeOf[IB]()}, circular.ResolveStack)
	assert.Contains(t, circular.Error(), "which is the root type being resolved.")
}

func TestFactoryMethodCycle(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.RegisterSingleType[IA](c, injection.Transient, injection.WithFactoryMethod(func(r injection.IResolver) (any, error) {
		return injection.Resolve[IA](r)
	})))

	_, err := c.Resolve(injection.TypeOf[IA]())
	var circular *injection.CircularDependencyError
	var failed *injection.CreationFailedError
	assert.ErrorAs(t, err, &failed)
	assert.ErrorAs(t, err, &circular, "the resolver of a factory method continues the resolve stack")
}

func TestConstructorPreference(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.RegisterSingleType[*Greeter](c, injection.Transient,
		injection.WithConstructors(newGreeterEmpty, newGreeterShape, newGreeterFull)))

	assert.Equal(t, "empty", injection.MustResolve[*Greeter](c).used)

	require.NoError(t, injection.Register[IShape, *Circle](c, injection.Transient))
	assert.Equal(t, "shape", injection.MustResolve[*Greeter](c).used, "the constructor with most satisfiable parameters wins")

	g := injection.MustResolve[*Greeter](c, "hi", "bob")
	assert.Equal(t, "full", g.used)
	assert.Equal(t, "hi", g.Greeting)
	assert.Equal(t, "bob", g.Name)
	assert.NotNil(t, g.Shape)
}

func TestParameterMerge(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.Register[IShape, *Circle](c, injection.Transient))
	require.NoError(t, injection.RegisterSingleType[*Greeter](c, injection.Transient,
		injection.WithConstructor(newGreeterFull), injection.WithParameters("hello", injection.Unset)))

	g := injection.MustResolve[*Greeter](c, "world")
	assert.Equal(t, "hello", g.Greeting)
	assert.Equal(t, "world", g.Name)
}

func TestNoMatchingConstructor(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.RegisterSingleType[*Greeter](c, injection.Transient,
		injection.WithConstructors(newGreeterShape, newGreeterFull)))

	_, err := c.Resolve(injection.TypeOf[*Greeter]())
	var noMatch *injection.NoMatchingConstructorFoundError
	require.ErrorAs(t, err, &noMatch)
	require.Len(t, noMatch.Errors, 2)
	assert.Equal(t, 0, noMatch.Errors[0].Parameter)

	var notRegistered *injection.TypeNotRegisteredError
	assert.ErrorAs(t, err, &notRegistered, "mismatches wrap the failure of the parameter")
}

func TestNoConstructor(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.Register[IShape, label](c, injection.Transient))

	_, err := c.Resolve(injection.TypeOf[IShape]())
	var noCtor *injection.NoPublicConstructorFoundError
	assert.ErrorAs(t, err, &noCtor)

	require.NoError(t, injection.RegisterSingleType[IRound](c, injection.Transient))
	_, err = c.Resolve(injection.TypeOf[IRound]())
	var invalid *injection.InvalidRegistrationError
	assert.ErrorAs(t, err, &invalid, "interfaces need a factory method")
}

func TestCreationFailed(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.RegisterSingleType[*failing](c, injection.Transient, injection.WithConstructor(newFailing)))

	_, err := c.Resolve(injection.TypeOf[*failing]())
	var failed *injection.CreationFailedError
	assert.ErrorAs(t, err, &failed)
	assert.ErrorIs(t, err, errConstruct)
}

func TestFactoryMethod(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.RegisterSingleType[IShape](c, injection.Singleton,
		injection.WithTypedFactoryMethod(func(r injection.IResolver) (IShape, error) {
			return &Circle{Radius: 2}, nil
		})))

	shape := injection.MustResolve[IShape](c)
	assert.Equal(t, 12.0, shape.Area())
	assert.Same(t, shape, injection.MustResolve[IShape](c))

	require.NoError(t, injection.RegisterSingleType[IRound](c, injection.Transient,
		injection.WithFactoryMethod(func(r injection.IResolver) (any, error) {
			return "not round", nil
		})))
	_, err := c.Resolve(injection.TypeOf[IRound]())
	var failed *injection.CreationFailedError
	assert.ErrorAs(t, err, &failed, "factory methods must return the requested type")
}

func TestResolverInjection(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.Register[IShape, *Circle](c, injection.Transient))
	require.NoError(t, injection.RegisterSingleType[*needsResolver](c, injection.Transient, injection.WithConstructor(newNeedsResolver)))

	assert.NotNil(t, injection.MustResolve[*needsResolver](c).shape)
}

func TestNilArgument(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.RegisterSingleType[*nilable](c, injection.Transient, injection.WithConstructor(newNilable)))

	n := injection.MustResolve[*nilable](c, "n", nil)
	assert.Equal(t, "n", n.name)
	assert.Nil(t, n.shape, "an untyped nil argument fills an unresolvable nilable parameter")

	_, err := c.Resolve(injection.TypeOf[*nilable](), "n")
	assert.Error(t, err)
}

func TestMethodInjection(t *testing.T) {
	repo := option.NewOptionRepository(nil)
	option.BindOptionValue(repo, &componentOption{Level: 3})
	handler := logging.NewMemoryLogHandler()
	c := internal.NewContainer(internal.Options{Handler: handler, Options: repo})

	require.NoError(t, injection.RegisterSingleType[*Component](c, injection.Singleton))
	_, err := c.Resolve(injection.TypeOf[*Component]())
	var failed *injection.CreationFailedError
	assert.ErrorAs(t, err, &failed, "Construct arguments must be resolvable")

	require.NoError(t, injection.Register[IShape, *Circle](c, injection.Transient))
	component := injection.MustResolve[*Component](c)
	assert.Equal(t, 3, component.level)
	assert.NotNil(t, component.shape)
	assert.Equal(t, 1, component.calls)

	component.logger.Infof("hello %s", "component")
	assert.Contains(t, handler.Messages(logging.INFO), "hello component")
	assert.NotEmpty(t, handler.Messages(logging.DEBUG), "the container logs its registrations")

	assert.Same(t, component, injection.MustResolve[*Component](c))
	assert.Equal(t, 1, component.calls)
}

func TestOpenGeneric(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.RegisterOpenGeneric[repository[int], *memoryRepository[int]](c, injection.Singleton,
		injection.WithConstructors(newIntRepository, newStringRepository)))

	ints := injection.MustResolve[repository[int]](c)
	assert.Equal(t, 42, ints.Get())
	assert.Same(t, ints, injection.MustResolve[repository[int]](c))
	assert.Equal(t, "forty-two", injection.MustResolve[repository[string]](c).Get())
	assert.True(t, c.IsTypeRegistered(injection.TypeOf[repository[bool]]()))

	_, err := c.Resolve(injection.TypeOf[repository[float64]]())
	var noCtor *injection.NoPublicConstructorFoundError
	assert.ErrorAs(t, err, &noCtor)

	var multiple *injection.MultipleRegistrationError
	err = injection.RegisterOpenGeneric[repository[string], *memoryRepository[string]](c, injection.Transient,
		injection.WithConstructor(newStringRepository))
	assert.ErrorAs(t, err, &multiple)
}

func TestDispose(t *testing.T) {
	var order []string
	c := newContainer()
	require.NoError(t, injection.Register[ILogger, *FileLogger](c, injection.Singleton,
		injection.WithDisposeStrategy(injection.ContainerOwned),
		injection.WithConstructor(func() *FileLogger { return &FileLogger{order: &order, name: "logger"} })))
	require.NoError(t, injection.RegisterSingleType[*auditLog](c, injection.Singleton,
		injection.WithDisposeStrategy(injection.ContainerOwned),
		injection.WithConstructor(func() *auditLog { return &auditLog{FileLogger{order: &order, name: "audit"}} })))
	require.NoError(t, injection.Register[io.Closer, *Connection](c, injection.Singleton,
		injection.WithDisposeStrategy(injection.ApplicationOwned)))
	require.NoError(t, injection.RegisterSingleType[*FileLogger](c, injection.Transient))

	logger := injection.MustResolve[ILogger](c).(*FileLogger)
	audit := injection.MustResolve[*auditLog](c)
	conn := injection.MustResolve[io.Closer](c).(*Connection)
	transient := injection.MustResolve[*FileLogger](c)

	require.NoError(t, c.Dispose())
	assert.Equal(t, []string{"audit", "logger"}, order, "instances are closed in reverse creation order")
	assert.EqualValues(t, 1, logger.closed.Load())
	assert.EqualValues(t, 1, audit.closed.Load())
	assert.EqualValues(t, 0, conn.closed.Load(), "application owned instances are left open")
	assert.EqualValues(t, 0, transient.closed.Load(), "transients are not tracked")

	require.NoError(t, c.Dispose())
	assert.EqualValues(t, 1, logger.closed.Load(), "disposing twice is a no-op")

	_, err := c.Resolve(injection.TypeOf[ILogger]())
	var notRegistered *injection.TypeNotRegisteredError
	assert.ErrorAs(t, err, &notRegistered)
	assert.Empty(t, c.GetRegistrations())
}

func TestDisposeErrors(t *testing.T) {
	closeErr := errors.New("disk gone")
	c := newContainer()
	require.NoError(t, injection.Register[ILogger, *FileLogger](c, injection.Singleton,
		injection.WithDisposeStrategy(injection.ContainerOwned),
		injection.WithConstructor(func() *FileLogger { return &FileLogger{err: closeErr} })))
	injection.MustResolve[ILogger](c)

	assert.ErrorIs(t, c.Dispose(), closeErr)
}

type greeterFactory struct {
	Create         func(greeting, name string) *Greeter
	CreateVariadic func(args ...any) (*Greeter, error)
}

type failingFactory struct {
	Create func() *failing
}

type connectionFactory struct {
	Create                func(s *session) IConnection
	ClearMultitonInstance func(ty reflect.Type) error
}

func TestFactoryAdapter(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.Register[IShape, *Circle](c, injection.Transient))
	require.NoError(t, injection.RegisterSingleType[*Greeter](c, injection.Transient,
		injection.WithConstructors(newGreeterFull, newGreeterEmpty), injection.Factory[*greeterFactory]()))

	factory := injection.MustResolve[*greeterFactory](c)
	assert.Same(t, factory, injection.MustResolve[*greeterFactory](c))

	g := factory.Create("hi", "bob")
	assert.Equal(t, "full", g.used)
	assert.Equal(t, "bob", g.Name)

	g, err := factory.CreateVariadic("yo", "al")
	require.NoError(t, err)
	assert.Equal(t, "yo", g.Greeting)
	assert.Equal(t, "al", g.Name)

	registrations := c.GetRegistrations()
	require.Len(t, registrations, 3)
	assert.Equal(t, injection.TypeOf[*greeterFactory](), registrations[1].FactoryType())
	assert.True(t, registrations[2].IsFactoryAdapter())

	require.NoError(t, injection.RegisterSingleType[*failing](c, injection.Transient,
		injection.WithConstructor(newFailing), injection.Factory[*failingFactory]()))
	failingF := injection.MustResolve[*failingFactory](c)
	assert.Panics(t, func() { failingF.Create() }, "create methods without an error result panic")
}

func TestMultitonFactoryAdapter(t *testing.T) {
	c := newContainer()
	require.NoError(t, injection.RegisterMultiton[IConnection, *Connection, *session](c,
		injection.WithDisposeStrategy(injection.ContainerOwned), injection.Factory[*connectionFactory]()))

	factory := injection.MustResolve[*connectionFactory](c)
	s := &session{ID: "s"}
	conn := factory.Create(s)
	assert.Same(t, conn, factory.Create(s))

	require.NoError(t, factory.ClearMultitonInstance(injection.TypeOf[IConnection]()))
	assert.EqualValues(t, 1, conn.(*Connection).closed.Load())
	assert.NotSame(t, conn, factory.Create(s))
}

func TestInvalidFactories(t *testing.T) {
	var invalid *injection.InvalidFactoryRegistrationError
	var illegal *injection.IllegalAbstractMethodCreationError

	c := newContainer()
	err := injection.Register[IShape, *Circle](c, injection.Transient, injection.Factory[*struct{ Name string }]())
	assert.ErrorAs(t, err, &invalid, "factories need a create method")

	err = injection.Register[IShape, *Circle](c, injection.Transient, injection.Factory[*struct{ Reset func() }]())
	assert.ErrorAs(t, err, &illegal, "void funcs cannot be synthesized")

	err = injection.Register[IShape, *Circle](c, injection.Transient, injection.Factory[*struct {
		Create                func() IShape
		ClearMultitonInstance func()
	}]())
	assert.ErrorAs(t, err, &illegal, "clear funcs take the type to clear")

	err = injection.Register[IShape, *Circle](c, injection.Transient, injection.Factory[*struct {
		Create func() (IShape, int, error)
	}]())
	assert.ErrorAs(t, err, &invalid)

	err = injection.RegisterMultiton[IConnection, *Connection, *session](c,
		injection.WithDisposeStrategy(injection.ContainerOwned), injection.Factory[*struct{ Create func() IConnection }]())
	assert.ErrorAs(t, err, &invalid, "multiton create methods take the scope first")

	assert.Empty(t, c.GetRegistrations(), "failed factories register nothing")

	err = injection.Register[IShape, *Circle](c, injection.Transient, injection.WithFactory(injection.TypeOf[greeterFactory]()))
	assert.ErrorAs(t, err, &invalid, "factories are struct pointers")
}
