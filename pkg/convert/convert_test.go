package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    float64
		wantErr bool
	}{
		{name: "json number", input: json.Number("18.5"), want: 18.5},
		{name: "int", input: 65, want: 65},
		{name: "numeric string", input: " 42 ", want: 42},
		{name: "float", input: 1.25, want: 1.25},
		{name: "bool rejected", input: true, wantErr: true},
		{name: "text rejected", input: "abc", wantErr: true},
		{name: "nil rejected", input: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToFloat64(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, errNotNumeric)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToInt64(t *testing.T) {
	got, err := ToInt64(json.Number("-900"))
	require.NoError(t, err)
	assert.Equal(t, int64(-900), got)

	got, err = ToInt64("2.0")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)

	_, err = ToInt64(json.Number("2.5"))
	assert.ErrorIs(t, err, errNotIntegral)

	_, err = ToInt64(map[string]any{})
	assert.ErrorIs(t, err, errNotNumeric)
}
