package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"auth": map[string]any{
			"signingSecret":         "x",
			"accessTokenTtlMinutes": 15,
		},
		"postgres": map[string]any{
			"sslMode": "disable",
		},
	}

	tests := []struct {
		rawKey string
		want   string
	}{
		{"AUTH_SIGNINGSECRET", "auth.signingSecret"},
		{"AUTH_ACCESSTOKENTTLMINUTES", "auth.accessTokenTtlMinutes"},
		{"POSTGRES_SSLMODE", "postgres.sslMode"},
		{"UNKNOWN_KEY", "unknown.key"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalizeEnvKey(tt.rawKey, existing), tt.rawKey)
	}
}

func TestAuthConfig_TTLDefaults(t *testing.T) {
	cfg := &AuthConfig{}
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL())
	assert.Equal(t, time.Hour, cfg.PasswordResetTTL())

	cfg = &AuthConfig{AccessTokenTTLMinutes: 15, PasswordResetTTLHours: 2}
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL())
	assert.Equal(t, 2*time.Hour, cfg.PasswordResetTTL())
}
