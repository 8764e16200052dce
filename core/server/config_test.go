package server_test

import (
	"testing"

	"matchup-model/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_FeatureEnabled(t *testing.T) {
	tests := []struct {
		name     string
		features string
		feature  string
		want     bool
	}{
		{"Empty enables all", "", "matches", true},
		{"Listed", "matches", "matches", true},
		{"Listed with spaces", " registry , matches ", "matches", true},
		{"Case insensitive", "Matches", "matches", true},
		{"Not listed", "registry", "matches", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Features: tt.features}
			assert.Equal(t, tt.want, c.FeatureEnabled(tt.feature))
		})
	}
}

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Addr())
	assert.Equal(t, ":9000", server.Config{Port: ":9000"}.Addr())
}
