package slog

import (
	"sync"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging/handler"
)

var (
	lock          sync.Mutex
	globalHandler = handler.NewRootHandler(logging.NewSimpleLogHandler())
	globalLogger  logging.ILogger
)

// BindGlobalHandler redirects every global log call to h.
func BindGlobalHandler(h logging.ILogHandler) {
	globalHandler.SetProxy(h)
}

func BindGlobalLogger(l logging.ILogger) {
	lock.Lock()
	defer lock.Unlock()
	globalLogger = l
}

func getLogger() logging.ILogger {
	lock.Lock()
	defer lock.Unlock()

	if globalLogger == nil {
		globalLogger = logging.NewDefaultLogger("Global", globalHandler, nil)
	}
	return globalLogger
}

func Tracef(format string, args ...any) {
	getLogger().Tracef(format, args...)
}

func Debugf(format string, args ...any) {
	getLogger().Debugf(format, args...)
}

func Infof(format string, args ...any) {
	getLogger().Infof(format, args...)
}

func Warnf(format string, args ...any) {
	getLogger().Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	getLogger().Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	getLogger().Fatalf(format, args...)
}
