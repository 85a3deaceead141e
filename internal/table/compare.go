package table

import (
	"errors"
	"fmt"
	"time"
)

// ErrIncomparable is returned when two sort keys of a column cannot be
// ordered against each other.
var ErrIncomparable = errors.New("incomparable sort keys")

// compareKeys returns 1 if a > b, -1 if b > a and 0 otherwise. Numbers of
// any width compare with each other; NaN compares equal to everything.
func compareKeys(a, b any) (int, error) {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, mismatch(a, b)
		}
		return order(x > y, y > x), nil
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, mismatch(a, b)
		}
		return order(x.After(y), y.After(x)), nil
	}

	x, ok := toFloat(a)
	if !ok {
		return 0, mismatch(a, b)
	}
	y, ok := toFloat(b)
	if !ok {
		return 0, mismatch(a, b)
	}
	return order(x > y, y > x), nil
}

func order(greater, less bool) int {
	switch {
	case greater:
		return 1
	case less:
		return -1
	default:
		return 0
	}
}

func mismatch(a, b any) error {
	return fmt.Errorf("%w: %T and %T", ErrIncomparable, a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
