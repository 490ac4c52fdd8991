package internal

import (
	"reflect"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection"
)

var _ injection.IResolver = (*callResolver)(nil)

// callResolver continues a resolution from inside a factory method or a Construct method.
// It never takes the container lock.
type callResolver struct {
	container *Container
	stack     container.List[reflect.Type]
}

func newCallResolver(c *Container, stack container.List[reflect.Type]) *callResolver {
	return &callResolver{container: c, stack: stack}
}

func (ss *callResolver) Resolve(ty reflect.Type, args ...any) (any, error) {
	stack := ss.stack.Copy()
	return ss.container.resolve(ty, args, &stack)
}
