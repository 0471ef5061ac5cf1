// Package core holds the sale record model and the aggregation engine.
//
// This file contains parsing helpers for monetary and quantity inputs coming
// from the outer layers as strings.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a decimal string to a non-negative price. Both dot
// (12.34) and comma (12,34) separators are accepted.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}

// ParseQuantity converts a string to a positive integer quantity. Fractional
// or non-numeric input is rejected.
func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	if n <= 0 {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}
