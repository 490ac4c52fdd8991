package task

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const poolSize = 1024

var (
	p    *ants.PoolWithFunc
	once sync.Once
)

func pool() *ants.PoolWithFunc {
	once.Do(func() {
		var err error
		p, err = ants.NewPoolWithFunc(poolSize, func(f any) {
			(f.(func()))()
		}, ants.WithNonblocking(false))
		if err != nil {
			panic(fmt.Sprintf("init goroutine pool: %v", err))
		}
	})
	return p
}

// Execute runs f on the shared goroutine pool, falling back to a plain goroutine when the pool rejects it.
func Execute(f func()) {
	if err := pool().Invoke(f); err != nil {
		go f()
	}
}

// Running reports the number of pool workers currently executing tasks.
func Running() int {
	return pool().Running()
}
