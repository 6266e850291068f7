package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := NewAppConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewAppConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/becandidature")
	t.Setenv("PORT", "")
	t.Setenv("PROXY_MIRRORS", "")
	t.Setenv("RESEND_API_KEY", "")

	cfg, err := NewAppConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Nil(t, cfg.ProxyMirrors)
	assert.False(t, cfg.UseBrowser)
}

func TestNewAppConfig_InvalidPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/becandidature")

	tests := []struct {
		name string
		port string
	}{
		{"not a number", "abc"},
		{"zero", "0"},
		{"too large", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			_, err := NewAppConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewAppConfig_MailFromRequiredWithResendKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/becandidature")
	t.Setenv("PORT", "8080")
	t.Setenv("RESEND_API_KEY", "re_123")
	t.Setenv("MAIL_FROM", "")

	_, err := NewAppConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_FROM")
}

func TestParseMirrors(t *testing.T) {
	assert.Nil(t, parseMirrors(""))
	assert.Equal(t,
		[]string{"https://proxy-a.example/raw?url=", "https://proxy-b.example/?u="},
		parseMirrors("https://proxy-a.example/raw?url=, https://proxy-b.example/?u=,"))
}
