package configuration

import (
	"sync"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
)

type INotifier interface {
	RegisterNotifyCallback(callback func())
	Notify()
}

var _ INotifier = (*Notifier)(nil)

type Notifier struct {
	lock      sync.Mutex
	callbacks container.List[func()]
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (ss *Notifier) RegisterNotifyCallback(callback func()) {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	ss.callbacks = append(ss.callbacks.Copy(), callback)
}

func (ss *Notifier) Notify() {
	ss.lock.Lock()
	cbs := ss.callbacks
	ss.lock.Unlock()

	for _, callback := range cbs {
		callback()
	}
}
