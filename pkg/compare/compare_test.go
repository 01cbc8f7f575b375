package compare

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_EquivalentDocuments(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		same     bool
	}{
		{"identical maps", map[string]any{"a": json.Number("1")}, map[string]any{"a": json.Number("1")}, true},
		{"nil and empty slice", map[string]any{"l": []any(nil)}, map[string]any{"l": []any{}}, true},
		{"number text differs", json.Number("10.50"), json.Number("10.5"), false},
		{"kind differs", map[string]any{"a": "1"}, map[string]any{"a": json.Number("1")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.same, Diff(tt.expected, tt.actual) == "")
		})
	}
}

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff(map[string]any{"name": "Ada"}, map[string]any{"name": "Ada"}))

	diff := Diff(map[string]any{"name": "Ada"}, map[string]any{"name": "Bob"})
	assert.Contains(t, diff, `"Ada"`)
	assert.Contains(t, diff, `"Bob"`)
}
