package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseQueryInt converts a query value to int. An empty value yields defaultValue.
func ParseQueryInt(value string, defaultValue int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue, nil
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", value)
	}
	return result, nil
}
