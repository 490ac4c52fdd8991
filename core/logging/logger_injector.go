package logging

import (
	"fmt"
	"reflect"
)

type ILoggerInjector interface {
	bindLogHandler(handler ILogHandler)
}

var _ ILoggerInjector = (*Logger[int])(nil)

var loggerInjectorType = reflect.TypeOf((*ILoggerInjector)(nil)).Elem()

// Logger is injected into constructors and Construct methods.
//
//	the path of loggers created by Get is the full path of T
type Logger[T any] struct {
	handler ILogHandler
}

func (ss *Logger[T]) Get(logDataBuilder func(data *LogData)) ILogger {
	ty := reflect.TypeOf((*T)(nil)).Elem()
	for ty.Kind() == reflect.Pointer {
		ty = ty.Elem()
	}
	path := ty.PkgPath() + "/" + ty.Name()
	return NewDefaultLogger(path, ss.handler, logDataBuilder)
}

func (ss *Logger[T]) bindLogHandler(handler ILogHandler) {
	ss.handler = handler
}

// IsLoggerInjector reports whether ty is a *Logger[T].
func IsLoggerInjector(ty reflect.Type) bool {
	return ty.Kind() == reflect.Pointer && ty.Elem().Kind() == reflect.Struct && ty.Implements(loggerInjectorType)
}

// NewLoggerInjector creates a *Logger[T] of type ty writing to handler.
func NewLoggerInjector(ty reflect.Type, handler ILogHandler) (any, error) {
	if !IsLoggerInjector(ty) {
		return nil, fmt.Errorf("type %v is not a logger injector", ty)
	}

	instance := reflect.New(ty.Elem()).Interface()
	instance.(ILoggerInjector).bindLogHandler(handler)
	return instance, nil
}
