// Package core holds the domain records and the pure validation rules
// applied before anything is persisted.
package core

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidNumber = errors.New("invalid number")

// ParseDecimal converts user input to a float, accepting both dot (12.5)
// and comma (12,5) decimal separators. Range rules (positivity, capacity)
// are left to the validators; this only rejects non-numeric input.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidNumber
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// ParseOdometer converts user input to a whole kilometer reading.
func ParseOdometer(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidNumber
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return v, nil
}
