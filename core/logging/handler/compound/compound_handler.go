package compound

import (
	"sync"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/option"
)

var _ logging.ILogHandler = (*Handler)(nil)

type Option struct {
	NodeId   int    `snow:"NodeId"`
	NodeName string `snow:"NodeName"`
}

type Handler struct {
	lock  sync.RWMutex
	proxy container.List[logging.ILogHandler]
	opt   *Option
}

func NewHandler() *Handler {
	return &Handler{
		opt: &Option{},
	}
}

func (ss *Handler) Construct(opt *option.Option[*Option]) {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	ss.opt = opt.Get()
}

func (ss *Handler) Log(data *logging.LogData) {
	ss.lock.RLock()
	opt := ss.opt
	handlers := ss.proxy
	ss.lock.RUnlock()

	data.NodeID = opt.NodeId
	data.NodeName = opt.NodeName
	for _, handler := range handlers {
		handler.Log(data)
	}
}

func (ss *Handler) AddHandler(handler logging.ILogHandler) {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	ss.proxy = append(ss.proxy.Copy(), handler)
}

func (ss *Handler) Len() int {
	ss.lock.RLock()
	defer ss.lock.RUnlock()
	return ss.proxy.Len()
}
