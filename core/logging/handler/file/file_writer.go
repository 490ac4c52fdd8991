package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/task"
)

type writerElement struct {
	File    string
	Message string
}

type writer struct {
	fileName string
	file     *os.File
	done     chan struct{}
	err      error
}

func newWriter(c <-chan *writerElement) *writer {
	w := &writer{done: make(chan struct{})}
	task.Execute(func() { w.loop(c) })
	return w
}

func (ss *writer) wait() error {
	<-ss.done
	return ss.err
}

func (ss *writer) loop(c <-chan *writerElement) {
	defer close(ss.done)
	defer func() {
		if ss.file != nil {
			ss.err = ss.file.Close()
		}
	}()

	for unit := range c {
		if ss.fileName == unit.File {
			_, _ = fmt.Fprintln(ss.file, unit.Message)
			continue
		}

		_ = os.MkdirAll(filepath.Dir(unit.File), 0755)

		f, err := os.OpenFile(unit.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "### ERROR ### log to file <%s>: %s\n", unit.File, err.Error())
			continue
		}

		if ss.file != nil {
			_ = ss.file.Close()
		}

		ss.file = f
		ss.fileName = unit.File
		_, _ = fmt.Fprintln(f, unit.Message)
	}
}
