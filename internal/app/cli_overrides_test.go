package app

import (
	"testing"

	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseVariables(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{"empty", "", nil},
		{"single", "user_id=u-1", map[string]string{"user_id": "u-1"}},
		{"multiple with spaces", " region = eu ; token=abc=def ;", map[string]string{"region": "eu", "token": "abc=def"}},
		{"invalid pairs dropped", "novalue;=x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseVariables(tt.input))
		})
	}
}

func TestParseSkipOverride(t *testing.T) {
	got := parseSkipOverride("getUser=name, age;addUser=;broken;  ;getTrips=distance")

	assert.Equal(t, []domain.SkipRule{
		{APIName: "getUser", Fields: []string{"name", "age"}},
		{APIName: "getTrips", Fields: []string{"distance"}},
	}, got)
	assert.Nil(t, parseSkipOverride(""))
}
