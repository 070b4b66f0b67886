package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 24, cfg.JWTTTLHours)
	assert.Equal(t, 60, cfg.ResetTokenTTLMinutes)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"username", "phone"}, cfg.SignupRequiredFields)
	assert.False(t, cfg.DebugEndpoints)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "1")
	t.Setenv("SIGNUP_REQUIRED_FIELDS", "username, phone ,gender")
	t.Setenv("DEBUG_ENDPOINTS", "true")

	cfg := Load()

	assert.Equal(t, 1, cfg.JWTTTLHours)
	assert.Equal(t, []string{"username", "phone", "gender"}, cfg.SignupRequiredFields)
	assert.True(t, cfg.DebugEndpoints)
}

func TestGetEnvInt_IgnoresGarbage(t *testing.T) {
	t.Setenv("RESET_TOKEN_TTL_MINUTES", "not-a-number")

	cfg := Load()
	assert.Equal(t, 60, cfg.ResetTokenTTLMinutes)
}
