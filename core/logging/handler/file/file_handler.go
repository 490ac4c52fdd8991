package file

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/option"
)

var _ logging.ILogHandler = (*Handler)(nil)

type Option struct {
	LogPath              string                   `snow:"LogPath"`
	FilePrefix           string                   `snow:"FilePrefix"`
	MaxLogChanLength     int                      `snow:"MaxLogChanLength"`
	Formatter            string                   `snow:"Formatter"`
	FileLineLevel        int                      `snow:"FileLineLevel"`
	FileLineSkip         int                      `snow:"FileLineSkip"`
	Filter               map[string]logging.Level `snow:"Filter"`
	DefaultLevel         logging.Level            `snow:"DefaultLevel"`
	FileRollingMegabytes int                      `snow:"FileRollingMegabytes"`
}

type Handler struct {
	lock sync.Mutex

	day      string
	index    int
	fileName string
	closed   bool

	logChan    chan *writerElement
	fileWriter *writer

	option           *Option
	sortedFilterKeys []string
	filterLevels     map[string]logging.Level
	formatter        func(logData *logging.LogData) string
}

func NewHandler() *Handler {
	handler := &Handler{
		option: &Option{
			LogPath:          "logs",
			MaxLogChanLength: 10240,
			Formatter:        "Default",
			FileLineLevel:    int(logging.ERROR),
			FileLineSkip:     6,
			Filter:           make(map[string]logging.Level),
		},
		formatter: logging.DefaultLogFormatter,
	}
	handler.CheckOption()
	return handler
}

func (ss *Handler) Construct(opt *option.Option[*Option], repo *logging.LogFormatterContainer) {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.option = opt.Get()
	ss.formatter = repo.GetFormatter(ss.option.Formatter)
	if ss.formatter == nil {
		ss.formatter = logging.DefaultLogFormatter
	}
	ss.CheckOption()
}

func (ss *Handler) CheckOption() {
	if ss.option.Filter == nil {
		ss.option.Filter = make(map[string]logging.Level)
	}
	levels := container.NewMap[string, logging.Level]()
	for path, level := range ss.option.Filter {
		levels.Add(strings.ToUpper(path), level)
	}
	keys := levels.Keys()
	container.SortStableBy(keys, func(lhs, rhs string) bool { return len(lhs) > len(rhs) })
	ss.sortedFilterKeys = keys
	ss.filterLevels = levels

	if ss.option.MaxLogChanLength <= 0 {
		ss.option.MaxLogChanLength = 10240
	}
	if ss.option.FileRollingMegabytes <= 0 {
		ss.option.FileRollingMegabytes = 100
	}
	if len(ss.option.LogPath) == 0 {
		ss.option.LogPath = "logs"
	}
	if ss.option.DefaultLevel == logging.NONE {
		ss.option.DefaultLevel = logging.INFO
	}

	if ss.logChan == nil || ss.option.MaxLogChanLength != cap(ss.logChan) {
		if ss.logChan != nil {
			close(ss.logChan)
		}
		ss.logChan = make(chan *writerElement, ss.option.MaxLogChanLength)
		ss.fileWriter = newWriter(ss.logChan)
	}
}

func (ss *Handler) Log(logData *logging.LogData) {
	if logData.Level == logging.NONE {
		return
	}

	ss.lock.Lock()
	defer ss.lock.Unlock()

	if ss.closed {
		return
	}

	filterLevel := ss.option.DefaultLevel
	if len(ss.sortedFilterKeys) > 0 {
		upperPath := strings.ToUpper(logData.Path)
		for _, key := range ss.sortedFilterKeys {
			if strings.HasPrefix(upperPath, key) {
				filterLevel = ss.filterLevels[key]
				break
			}
		}
	}
	if logData.Level < filterLevel {
		return
	}

	if len(logData.File) == 0 && ss.option.FileLineLevel > 0 && int(logData.Level) >= ss.option.FileLineLevel {
		_, fn, ln, _ := runtime.Caller(ss.option.FileLineSkip)
		logData = logData.Clone()
		logData.File = fn
		logData.Line = ln
	}

	unit := &writerElement{
		File:    ss.refreshFileName(logData.Time),
		Message: ss.formatter(logData),
	}
	select {
	case ss.logChan <- unit:
	default:
		_, _ = fmt.Fprintln(os.Stderr, "file log channel full")
	}
}

// Close flushes pending records and closes the current file.
func (ss *Handler) Close() error {
	ss.lock.Lock()
	if ss.closed {
		ss.lock.Unlock()
		return nil
	}
	ss.closed = true
	close(ss.logChan)
	w := ss.fileWriter
	ss.lock.Unlock()

	return w.wait()
}

// refreshFileName rolls to a new file per day and whenever the current file exceeds the size limit.
func (ss *Handler) refreshFileName(now time.Time) string {
	day := now.Format("2006_01_02")
	if day != ss.day {
		ss.day = day
		ss.index = 0
		ss.fileName = ss.buildFileName()
		for {
			if _, err := os.Stat(ss.fileName); err != nil {
				break
			}
			ss.index++
			ss.fileName = ss.buildFileName()
		}
		return ss.fileName
	}

	if stat, err := os.Stat(ss.fileName); err == nil && stat.Size() > int64(ss.option.FileRollingMegabytes)*1024*1024 {
		ss.index++
		ss.fileName = ss.buildFileName()
	}
	return ss.fileName
}

func (ss *Handler) buildFileName() string {
	prefix := ss.option.FilePrefix
	if len(prefix) > 0 {
		prefix += "_"
	}
	return filepath.Join(ss.option.LogPath, fmt.Sprintf("%s%s_%04d.log", prefix, ss.day, ss.index))
}
