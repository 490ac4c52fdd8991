package logging_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type service struct{}

func TestLevelUnmarshalText(t *testing.T) {
	var lv logging.Level
	require.NoError(t, lv.UnmarshalText([]byte("warn")))
	assert.Equal(t, logging.WARN, lv, "level names are case-insensitive")

	require.NoError(t, lv.UnmarshalText([]byte("2")))
	assert.Equal(t, logging.DEBUG, lv, "numeric levels are accepted")

	assert.Error(t, lv.UnmarshalText([]byte("LOUD")))
	assert.Equal(t, "INFO", logging.INFO.String())
}

func TestLoggerInjector(t *testing.T) {
	h := logging.NewMemoryLogHandler()

	instance, err := logging.NewLoggerInjector(typeOf[*logging.Logger[service]](), h)
	require.NoError(t, err)

	logger := instance.(*logging.Logger[service]).Get(func(data *logging.LogData) {
		data.Name = "svc"
	})
	logger.Infof("hello %d", 42)

	records := h.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "svc", records[0].Name)
	assert.True(t, strings.HasSuffix(records[0].Path, "/service"), "logger path ends with the type name, got %s", records[0].Path)
	assert.Equal(t, "hello 42", records[0].Message())

	_, err = logging.NewLoggerInjector(typeOf[*service](), h)
	assert.Error(t, err, "only *Logger[T] can be injected")
}

func TestFormatter(t *testing.T) {
	data := &logging.LogData{
		Time:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:   logging.WARN,
		Name:    "Container",
		Message: func() string { return "message" },
	}

	line := logging.DefaultLogFormatter(data)
	assert.True(t, strings.HasPrefix(line, "2024/01/02 03:04:05.00  WARN"), line)
	assert.True(t, strings.HasSuffix(line, " message"), line)

	colored := logging.ColorLogFormatter(data)
	assert.True(t, strings.HasSuffix(colored, "\x1b[0m"), "color formatter resets the terminal color")

	repo := logging.NewLogFormatterRepository()
	repo.AddFormatter("Default", logging.DefaultLogFormatter)
	assert.NotNil(t, repo.GetFormatter("Default"))
	assert.Nil(t, repo.GetFormatter("Missing"))
}
