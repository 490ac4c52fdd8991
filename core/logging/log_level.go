package logging

import (
	"fmt"
	"strings"
)

type Level int

const (
	NONE Level = iota
	TRACE
	DEBUG
	INFO
	WARN
	ERROR
	FATAL
)

func (l Level) String() string {
	if l <= NONE || int(l) >= len(l2info) {
		return "NONE"
	}
	return strings.TrimSpace(l2info[l].str)
}

// UnmarshalText accepts both level names and their numeric values.
func (l *Level) UnmarshalText(text []byte) error {
	s := strings.ToUpper(strings.TrimSpace(string(text)))
	for lv := TRACE; lv <= FATAL; lv++ {
		if lv.String() == s {
			*l = lv
			return nil
		}
	}

	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < int(NONE) || n > int(FATAL) {
		return fmt.Errorf("invalid log level: %q", string(text))
	}
	*l = Level(n)
	return nil
}
