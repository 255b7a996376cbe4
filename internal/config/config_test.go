package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                 "8460",
		JWTSecret:            "a-test-secret-that-is-long-enough-123456",
		DBHost:               "localhost",
		DBPort:               "5432",
		DBUser:               "user",
		DBPassword:           "password",
		DBName:               "atelier",
		DBSSLMode:            "disable",
		Env:                  "development",
		SuggestionTimeoutSec: 30,
		MediaMaxUploadSizeMB: 10,
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid development config", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive suggestion timeout", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.SuggestionTimeoutSec = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive upload size", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.MediaMaxUploadSizeMB = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_Validate_ProductionStrictness(t *testing.T) {
	t.Parallel()

	production := func() *Config {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.DBPassword = "an-actual-strong-password"
		return cfg
	}

	t.Run("hardened production config passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, production().Validate())
	})

	t.Run("default jwt secret rejected", func(t *testing.T) {
		t.Parallel()
		cfg := production()
		cfg.JWTSecret = "your-secret-key-change-in-production"
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "JWT_SECRET"))
	})

	t.Run("short jwt secret rejected", func(t *testing.T) {
		t.Parallel()
		cfg := production()
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("weak db password rejected", func(t *testing.T) {
		t.Parallel()
		cfg := production()
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})
}
