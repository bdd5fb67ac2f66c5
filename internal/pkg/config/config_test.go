package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "bookstore", cfg.Mongo.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowOrigins)
	assert.Equal(t, 5.0, cfg.HTTP.AuthRateLimit)
	assert.Equal(t, 4, cfg.Audit.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"PORT":               "8081",
		"TOKEN_TTL":          "15m",
		"MONGO_URI":          "mongodb://db:27017",
		"CORS_ALLOW_ORIGINS": "http://a.test,http://b.test",
		"AUTH_RATE_LIMIT":    "0.5",
		"LOG_PRETTY":         "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORSAllowOrigins)
	assert.Equal(t, 0.5, cfg.HTTP.AuthRateLimit)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoadFrom_SecretRequired(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)

	_, err = LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{"JWT_SECRET": "   "}))
	assert.Error(t, err)
}

func TestLoadFrom_RejectsNonPositiveTTL(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"TOKEN_TTL":  "0s",
	}))
	assert.Error(t, err)
}
