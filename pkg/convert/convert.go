package convert

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var errNotNumeric = fmt.Errorf("value is not numeric")
var errNotIntegral = fmt.Errorf("value is not an integer")

// ToFloat64 converts numbers, json.Number and numeric strings to float64.
// Booleans and containers are rejected.
func ToFloat64(data any) (float64, error) {
	switch v := data.(type) {
	case json.Number:
		return parseFloat(string(v))
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		return parseFloat(v)
	default:
		return 0, fmt.Errorf("%w: input type %T", errNotNumeric, data)
	}
}

// ToInt64 converts integral numbers, json.Number and integer strings to int64.
// A float with a fractional part is rejected.
func ToInt64(data any) (int64, error) {
	switch v := data.(type) {
	case json.Number:
		return parseInt(string(v))
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("%w: %v", errNotIntegral, v)
		}
		return int64(v), nil
	case string:
		return parseInt(v)
	default:
		return 0, fmt.Errorf("%w: input type %T", errNotNumeric, data)
	}
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotNumeric, s)
	}
	return f, nil
}

func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("%w: %q", errNotIntegral, s)
	}
	return int64(f), nil
}
