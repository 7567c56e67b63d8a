package utils

import (
	"fmt"
	"strconv"
)

// ToString converts various types to string.
// JSON numbers decoded into an any arrive as float64 and are rendered without
// a trailing ".0" so that a bare numeric version such as 3.8 stays "3.8".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
