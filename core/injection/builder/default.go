package builder

import (
	"github.com/SimonG96/LightweightIocContainer-sub000/core/configuration"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection/internal"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging/handler"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging/handler/compound"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging/handler/console"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging/handler/file"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging/slog"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/option"
)

// ContainerOption is bound to the configuration section "Container".
type ContainerOption struct {
	Name          string `snow:"Name"`
	Synchronized  bool   `snow:"Synchronized"`
	EnableFileLog bool   `snow:"EnableFileLog"`
}

type DefaultBuilder struct {
	config  *configuration.Manager
	options *option.Repository
	root    *handler.RootHandler
}

func NewDefaultBuilder() *DefaultBuilder {
	builder := &DefaultBuilder{
		config: configuration.NewManager(),
		root:   handler.NewRootHandler(nil),
	}
	builder.options = option.NewOptionRepository(builder.config)

	AddOption[*ContainerOption](builder, "Container")
	AddOption[*compound.Option](builder, "Log:Compound")
	AddOption[*console.Option](builder, "Log:Console")
	AddOption[*file.Option](builder, "Log:File")
	return builder
}

func (ss *DefaultBuilder) GetConfigurationManager() configuration.IConfigurationManager {
	return ss.config
}

func (ss *DefaultBuilder) GetOptionRepository() *option.Repository {
	return ss.options
}

// GetRootHandler returns the handler every container log and injected logger writes to.
func (ss *DefaultBuilder) GetRootHandler() *handler.RootHandler {
	return ss.root
}

// AddOption binds the option type T to the configuration section at path.
func AddOption[T any](builder *DefaultBuilder, path string) {
	option.BindOptionPath[T](builder.options, path)
}

// Build creates the container and registers the configuration, the option repository and
// the log handlers in it. The compound handler becomes the target of the root handler.
func (ss *DefaultBuilder) Build() (injection.IContainer, error) {
	opt := configuration.Get[*ContainerOption](ss.config, "Container")
	if opt == nil {
		opt = &ContainerOption{}
	}

	c := internal.NewContainer(internal.Options{
		Name:         opt.Name,
		Synchronized: opt.Synchronized,
		Handler:      ss.root,
		Options:      ss.options,
	})

	err := injection.RegisterSingleType[configuration.IConfiguration](c, injection.Singleton,
		injection.WithTypedFactoryMethod(func(injection.IResolver) (configuration.IConfiguration, error) {
			return ss.config, nil
		}))
	if err != nil {
		return nil, err
	}
	err = injection.RegisterSingleType[*option.Repository](c, injection.Singleton,
		injection.WithTypedFactoryMethod(func(injection.IResolver) (*option.Repository, error) {
			return ss.options, nil
		}))
	if err != nil {
		return nil, err
	}
	err = injection.RegisterSingleType[*handler.RootHandler](c, injection.Singleton,
		injection.WithTypedFactoryMethod(func(injection.IResolver) (*handler.RootHandler, error) {
			return ss.root, nil
		}))
	if err != nil {
		return nil, err
	}
	err = injection.RegisterSingleType[*logging.LogFormatterContainer](c, injection.Singleton,
		injection.WithConstructor(func() *logging.LogFormatterContainer {
			f := logging.NewLogFormatterRepository()
			f.AddFormatter("Default", logging.DefaultLogFormatter)
			f.AddFormatter("Color", logging.ColorLogFormatter)
			return f
		}))
	if err != nil {
		return nil, err
	}
	if err = injection.RegisterSingleType[*compound.Handler](c, injection.Singleton, injection.WithConstructor(compound.NewHandler)); err != nil {
		return nil, err
	}
	if err = injection.RegisterSingleType[*console.Handler](c, injection.Singleton, injection.WithConstructor(console.NewHandler)); err != nil {
		return nil, err
	}
	if opt.EnableFileLog {
		err = injection.RegisterSingleType[*file.Handler](c, injection.Singleton,
			injection.WithConstructor(file.NewHandler), injection.WithDisposeStrategy(injection.ContainerOwned))
		if err != nil {
			return nil, err
		}
	}

	compoundH, err := injection.Resolve[*compound.Handler](c)
	if err != nil {
		return nil, err
	}
	ch, err := injection.Resolve[*console.Handler](c)
	if err != nil {
		return nil, err
	}
	compoundH.AddHandler(ch)
	if opt.EnableFileLog {
		fh, err := injection.Resolve[*file.Handler](c)
		if err != nil {
			return nil, err
		}
		compoundH.AddHandler(fh)
	}

	ss.root.SetProxy(compoundH)
	slog.BindGlobalHandler(ss.root)
	return c, nil
}

// NewContainer builds a container from an empty configuration.
func NewContainer() (injection.IContainer, error) {
	return NewDefaultBuilder().Build()
}
