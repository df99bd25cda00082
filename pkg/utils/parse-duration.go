package utils

import (
	"fmt"
	"time"
)

// ParseDurationString parses a Go duration such as "30s". Negative values are
// rejected since they are only used as limits.
func ParseDurationString(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid time duration '%s' : %s", value, err.Error())
	}
	if d < 0 {
		return time.Duration(0), fmt.Errorf("invalid time duration '%s' : must not be negative", value)
	}
	return d, nil
}
