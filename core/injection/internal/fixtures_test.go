package internal_test

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection/internal"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/option"
)

func newContainer() *internal.Container {
	return internal.NewContainer(internal.Options{})
}

type IShape interface {
	Area() float64
}

type Circle struct {
	Radius float64
}

func (ss *Circle) Area() float64 {
	return 3 * ss.Radius * ss.Radius
}

type IRound interface {
	Diameter() float64
}

func (ss *Circle) Diameter() float64 {
	return 2 * ss.Radius
}

type ILogger interface {
	Write(msg string)
}

type FileLogger struct {
	lines  []string
	closed atomic.Int32
	err    error
	order  *[]string
	name   string
}

func (ss *FileLogger) Write(msg string) {
	ss.lines = append(ss.lines, msg)
}

func (ss *FileLogger) Close() error {
	ss.closed.Add(1)
	if ss.order != nil {
		*ss.order = append(*ss.order, ss.name)
	}
	return ss.err
}

type IA interface{ A() }
type IB interface{ B() }

type cycleA struct{ b IB }
type cycleB struct{ a IA }

func (ss *cycleA) A() {}
func (ss *cycleB) B() {}

func newCycleA(b IB) *cycleA { return &cycleA{b: b} }
func newCycleB(a IA) *cycleB { return &cycleB{a: a} }

type Greeter struct {
	Greeting string
	Name     string
	Shape    IShape
	used     string
}

func newGreeterFull(greeting, name string, shape IShape) *Greeter {
	return &Greeter{Greeting: greeting, Name: name, Shape: shape, used: "full"}
}

func newGreeterShape(shape IShape) *Greeter {
	return &Greeter{Shape: shape, used: "shape"}
}

func newGreeterEmpty() *Greeter {
	return &Greeter{used: "empty"}
}

type failing struct{}

var errConstruct = errors.New("construct failed")

func newFailing() (*failing, error) {
	return nil, errConstruct
}

type session struct {
	ID string
}

type Connection struct {
	Tag    string
	closed atomic.Int32
}

func (ss *Connection) Close() error {
	ss.closed.Add(1)
	return nil
}

type IConnection interface {
	TagName() string
}

func (ss *Connection) TagName() string { return ss.Tag }

type repository[T any] interface {
	Get() T
}

type memoryRepository[T any] struct {
	value T
}

func (ss *memoryRepository[T]) Get() T {
	return ss.value
}

func newIntRepository() *memoryRepository[int] {
	return &memoryRepository[int]{value: 42}
}

func newStringRepository() *memoryRepository[string] {
	return &memoryRepository[string]{value: "forty-two"}
}

type componentOption struct {
	Level int
}

type Component struct {
	logger logging.ILogger
	level  int
	shape  IShape
	calls  int
}

func (ss *Component) Construct(logger *logging.Logger[Component], opt *option.Option[*componentOption], shape IShape) {
	ss.logger = logger.Get(func(data *logging.LogData) {
		data.Name = "Component"
	})
	ss.level = opt.Get().Level
	ss.shape = shape
	ss.calls++
}

type needsResolver struct {
	shape IShape
}

func newNeedsResolver(r injection.IResolver) (*needsResolver, error) {
	shape, err := injection.Resolve[IShape](r)
	if err != nil {
		return nil, fmt.Errorf("resolve shape: %w", err)
	}
	return &needsResolver{shape: shape}, nil
}

type nilable struct {
	shape IShape
	name  string
}

func newNilable(name string, shape IShape) *nilable {
	return &nilable{name: name, shape: shape}
}
