package xquery

import (
	"net/url"
	"strconv"
)

func ParseInt(query url.Values, name string, defaultValue int) int {
	value := query.Get(name)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}

// ParseInt64Ptr returns nil when the parameter is absent or malformed,
// so optional filters stay unset instead of defaulting to zero.
func ParseInt64Ptr(query url.Values, name string) *int64 {
	value := query.Get(name)
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}

	return &parsed
}
