// Package document holds helpers for the semi-structured values the oracle
// compares: nil, bool, numbers, strings, []any and map[string]any.
package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
)

var api = jsoniter.Config{
	UseNumber:              true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number, int, int32, int64, uint, uint64, float32, float64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindUnknown
	}
}

func IsContainer(v any) bool {
	k := KindOf(v)
	return k == KindArray || k == KindObject
}

// Parse decodes JSON keeping number literals as json.Number.
func Parse(data []byte) (any, error) {
	var v any
	if err := api.Unmarshal(data, &v); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDocumentParseError, "invalid JSON document")
	}
	return v, nil
}

func ParseString(s string) (any, error) {
	return Parse([]byte(s))
}

// Marshal encodes v with sorted object keys.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func MarshalIndent(v any) ([]byte, error) {
	return api.MarshalIndent(v, "", "  ")
}

// Text returns the text form of a scalar. Containers yield "".
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// IsIntegral reports a number without a fractional part or exponent.
func IsIntegral(v any) bool {
	switch t := v.(type) {
	case json.Number:
		_, err := strconv.ParseInt(t.String(), 10, 64)
		return err == nil
	case int, int32, int64, uint, uint64:
		return true
	case float32:
		return isWholeInt64(float64(t))
	case float64:
		return isWholeInt64(t)
	default:
		return false
	}
}

// Lookup walks object keys from v. It fails on a missing key or a non-object
// step.
func Lookup(v any, segments ...string) (any, bool) {
	cur := v
	for _, seg := range segments {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// LookupPath resolves a dotted path such as "data.items[0].id".
func LookupPath(v any, path string) (any, bool) {
	cur := v
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, false
		}
		name, indexes, ok := splitIndexes(part)
		if !ok {
			return nil, false
		}
		if name != "" {
			if cur, ok = Lookup(cur, name); !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, isArr := cur.([]any)
			if !isArr || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			cur = arr[idx]
		}
	}
	return cur, true
}

func splitIndexes(part string) (string, []int, bool) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		return part, nil, true
	}
	name := part[:open]
	rest := part[open:]
	var indexes []int
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

// isWholeInt64 reports a finite float without a fractional part that fits in
// an int64. 2^63 itself is out of range.
func isWholeInt64(f float64) bool {
	return math.Trunc(f) == f && f >= math.MinInt64 && f < -math.MinInt64
}
