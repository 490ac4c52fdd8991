package sources

import (
	"fmt"
	"strconv"
	"time"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/configuration"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
)

func joinKey(head, key string) string {
	if len(head) == 0 {
		return key
	}
	return head + configuration.KeyDelimiter + key
}

// flatten writes a decoded json or yaml document as configuration keys.
func flatten(m container.Map[string, string], key string, value any) error {
	switch v := value.(type) {
	case nil:
		m.Add(key, "")
	case string:
		m.Add(key, v)
	case bool:
		m.Add(key, strconv.FormatBool(v))
	case int:
		m.Add(key, strconv.Itoa(v))
	case int64:
		m.Add(key, strconv.FormatInt(v, 10))
	case uint64:
		m.Add(key, strconv.FormatUint(v, 10))
	case float64:
		if n := int64(v); v == float64(n) {
			m.Add(key, strconv.FormatInt(n, 10))
			return nil
		}
		m.Add(key, strconv.FormatFloat(v, 'f', -1, 64))
	case time.Time:
		m.Add(key, v.Format(time.RFC3339))
	case map[string]any:
		for k, child := range v {
			if err := flatten(m, joinKey(key, k), child); err != nil {
				return err
			}
		}
	case map[any]any:
		for k, child := range v {
			if err := flatten(m, joinKey(key, fmt.Sprint(k)), child); err != nil {
				return err
			}
		}
	case []any:
		for i, child := range v {
			if err := flatten(m, joinKey(key, strconv.Itoa(i)), child); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("invalid type: %T => %v", v, v)
	}
	return nil
}
