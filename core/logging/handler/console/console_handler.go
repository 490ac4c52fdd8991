package console

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/option"
)

var _ logging.ILogHandler = (*Handler)(nil)

type Option struct {
	Formatter     string                   `snow:"Formatter"`
	FileLineLevel int                      `snow:"FileLineLevel"`
	FileLineSkip  int                      `snow:"FileLineSkip"`
	ErrorLevel    logging.Level            `snow:"ErrorLevel"`
	Filter        map[string]logging.Level `snow:"Filter"`
	DefaultLevel  logging.Level            `snow:"DefaultLevel"`
}

type Handler struct {
	lock             sync.Mutex
	option           *Option
	sortedFilterKeys []string
	filterLevels     map[string]logging.Level
	formatter        func(logData *logging.LogData) string
	stdout           io.Writer
	stderr           io.Writer
}

func NewHandler() *Handler {
	handler := &Handler{
		option: &Option{
			Formatter:     "Color",
			FileLineLevel: int(logging.ERROR),
			FileLineSkip:  6,
			ErrorLevel:    logging.ERROR,
			Filter:        make(map[string]logging.Level),
		},
		formatter: logging.ColorLogFormatter,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
	}
	handler.CheckOption()
	return handler
}

func (ss *Handler) Construct(opt *option.Option[*Option], repo *logging.LogFormatterContainer) {
	ss.lock.Lock()
	ss.option = opt.Get()
	ss.formatter = repo.GetFormatter(ss.option.Formatter)
	if ss.formatter == nil {
		ss.formatter = logging.ColorLogFormatter
	}
	ss.CheckOption()
	ss.lock.Unlock()

	opt.OnChanged(func() {
		newOption := opt.Get()

		ss.lock.Lock()
		defer ss.lock.Unlock()

		ss.option = newOption
		ss.CheckOption()
	})
}

// SetOutput redirects the handler, messages below ErrorLevel go to out and the rest to errOut.
func (ss *Handler) SetOutput(out, errOut io.Writer) {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	ss.stdout = out
	ss.stderr = errOut
}

func (ss *Handler) CheckOption() {
	if ss.option.Filter == nil {
		ss.option.Filter = make(map[string]logging.Level)
	}
	// configuration keys are case-insensitive, filters match upper-cased paths
	levels := container.NewMap[string, logging.Level]()
	for path, level := range ss.option.Filter {
		levels.Add(strings.ToUpper(path), level)
	}
	keys := levels.Keys()
	container.SortStableBy(keys, func(lhs, rhs string) bool { return len(lhs) > len(rhs) })
	ss.sortedFilterKeys = keys
	ss.filterLevels = levels

	if ss.option.DefaultLevel == logging.NONE {
		ss.option.DefaultLevel = logging.INFO
	}
	if ss.option.ErrorLevel == logging.NONE {
		ss.option.ErrorLevel = logging.ERROR
	}
}

func (ss *Handler) Log(logData *logging.LogData) {
	if logData.Level == logging.NONE {
		return
	}

	ss.lock.Lock()
	curOption := ss.option
	filterKeys := ss.sortedFilterKeys
	filterLevels := ss.filterLevels
	formatter := ss.formatter
	stdout, stderr := ss.stdout, ss.stderr
	ss.lock.Unlock()

	filterLevel := curOption.DefaultLevel
	if len(filterKeys) > 0 {
		upperPath := strings.ToUpper(logData.Path)
		for _, key := range filterKeys {
			if strings.HasPrefix(upperPath, key) {
				filterLevel = filterLevels[key]
				break
			}
		}
	}

	if logData.Level < filterLevel {
		return
	}

	if len(logData.File) == 0 && curOption.FileLineLevel > 0 && int(logData.Level) >= curOption.FileLineLevel {
		_, fn, ln, _ := runtime.Caller(curOption.FileLineSkip)
		logData = logData.Clone()
		logData.File = fn
		logData.Line = ln
	}

	message := formatter(logData)

	if logData.Level < curOption.ErrorLevel {
		_, _ = fmt.Fprintln(stdout, message)
	} else {
		_, _ = fmt.Fprintln(stderr, message)
	}
}
