package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		hours     string
		wantHours int
		wantErr   bool
	}{
		{"default expiration", "signing-secret", "", 24, false},
		{"custom expiration", "signing-secret", "1", 1, false},
		{"long-lived tokens", "signing-secret", "168", 168, false},
		{"missing secret", "", "", 0, true},
		{"zero hours", "signing-secret", "0", 0, true},
		{"negative hours", "signing-secret", "-3", 0, true},
		{"non-numeric hours", "signing-secret", "demain", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.hours)

			cfg, err := NewJWTConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.secret, cfg.Secret)
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
		})
	}
}
