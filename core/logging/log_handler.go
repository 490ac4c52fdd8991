package logging

import (
	"fmt"
	"sync"
	"time"
)

type LogData struct {
	Time     time.Time
	NodeID   int
	NodeName string
	Path     string
	Name     string
	ID       string
	File     string
	Line     int
	Level    Level
	Custom   []any
	Message  func() string
}

// Clone returns a shallow copy, handlers use it before decorating shared data.
func (ss *LogData) Clone() *LogData {
	c := *ss
	return &c
}

type ILogHandler interface {
	Log(data *LogData)
}

func NewSimpleLogHandler() ILogHandler {
	return simpleLogHandler{}
}

type simpleLogHandler struct {
}

func (s simpleLogHandler) Log(data *LogData) {
	fmt.Println(DefaultLogFormatter(data))
}

// MemoryLogHandler keeps every record, tests use it to assert on log output.
type MemoryLogHandler struct {
	lock    sync.Mutex
	records []*LogData
}

func NewMemoryLogHandler() *MemoryLogHandler {
	return &MemoryLogHandler{}
}

func (ss *MemoryLogHandler) Log(data *LogData) {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	ss.records = append(ss.records, data)
}

func (ss *MemoryLogHandler) Records() []*LogData {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	result := make([]*LogData, len(ss.records))
	copy(result, ss.records)
	return result
}

// Messages returns the formatted messages logged at level or above.
func (ss *MemoryLogHandler) Messages(level Level) []string {
	var result []string
	for _, record := range ss.Records() {
		if record.Level >= level {
			result = append(result, record.Message())
		}
	}
	return result
}
