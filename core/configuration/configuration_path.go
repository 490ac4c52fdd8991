package configuration

import (
	"strings"
)

const KeyDelimiter = ":"

func pathCombine(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if len(s) > 0 {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, KeyDelimiter)
}

func pathSectionKey(path string) string {
	idx := strings.LastIndexByte(path, ':')
	if idx == -1 {
		return path
	}

	return path[idx+1:]
}
