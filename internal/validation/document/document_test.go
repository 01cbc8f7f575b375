package document

import (
	"encoding/json"
	"math"
	"testing"

	apperrors "github.com/olusolaa/api-contract-oracle/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PreservesNumberLiterals(t *testing.T) {
	doc, err := ParseString(`{"amount": 10.50, "count": 3, "big": 12345678901234567890}`)
	require.NoError(t, err)

	obj := doc.(map[string]any)
	assert.Equal(t, json.Number("10.50"), obj["amount"])
	assert.Equal(t, "10.50", Text(obj["amount"]))
	assert.Equal(t, "12345678901234567890", Text(obj["big"]))
	assert.True(t, IsIntegral(obj["count"]))
	assert.False(t, IsIntegral(obj["amount"]))
}

func TestIsIntegral_Floats(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"whole float", 42.0, true},
		{"fraction", 42.5, false},
		{"negative whole", -7.0, true},
		{"min int64", float64(math.MinInt64), true},
		{"two to the 63", math.Pow(2, 63), false},
		{"beyond int64", 1e20, false},
		{"infinity", math.Inf(1), false},
		{"nan", math.NaN(), false},
		{"float32 whole", float32(3), true},
		{"float32 fraction", float32(3.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIntegral(tt.value))
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := ParseString(`{"a":`)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeDocumentParseError))
}

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"null", nil, "null"},
		{"string", "abc", "abc"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"float", 2.5, "2.5"},
		{"object", map[string]any{"a": 1}, ""},
		{"array", []any{1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.input))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNull, KindOf(nil))
	assert.Equal(t, KindNumber, KindOf(json.Number("1")))
	assert.Equal(t, KindObject, KindOf(map[string]any{}))
	assert.Equal(t, KindArray, KindOf([]any{}))
	assert.Equal(t, KindUnknown, KindOf(struct{}{}))
	assert.True(t, IsContainer([]any{}))
	assert.False(t, IsContainer("x"))
}

func TestLookupPath(t *testing.T) {
	doc, err := ParseString(`{"data":{"addUser":{"users":[{"id":"u-1"},{"id":"u-2"}]}}}`)
	require.NoError(t, err)

	v, ok := LookupPath(doc, "data.addUser.users[1].id")
	require.True(t, ok)
	assert.Equal(t, "u-2", v)

	_, ok = LookupPath(doc, "data.addUser.users[2].id")
	assert.False(t, ok)
	_, ok = LookupPath(doc, "data..users")
	assert.False(t, ok)
	_, ok = LookupPath(doc, "data.addUser.users[x]")
	assert.False(t, ok)
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "a", Child("", "a"))
	assert.Equal(t, "a.b[2].c", Child(Index(Child("a", "b"), 2), "c"))
	assert.Equal(t, "$", Label(""))
	assert.Equal(t, "[0]", Index("", 0))
}
