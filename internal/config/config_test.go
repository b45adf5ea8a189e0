package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, DriverMySQL, cfg.Store.Driver)
	assert.Equal(t, "root:password@tcp(127.0.0.1:3306)/string_analyzer?charset=utf8mb4&loc=Local&parseTime=true", cfg.DSN)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, defaultCacheTTLSeconds, cfg.Cache.TTLSeconds)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")

	path := writeConfig(t, `
port: 8080
env: Production
store:
  driver: Mongo
mongo:
  uri: mongodb://db:27017
  database: analyzer
redis:
  enable: false
allowed_origins: [" https://a.example ", ""]
rate_limit:
  max: 10
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "analyzer", cfg.Mongo.Database)
	assert.Equal(t, defaultMongoCollection, cfg.Mongo.Collection)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"https://a.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 10, cfg.RateLimit.Max)
	assert.Equal(t, defaultRateLimitWindowSec, cfg.RateLimit.WindowSeconds)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MONGO_URI", "mongodb://env:27017")

	cfg, err := Load(writeConfig(t, "store:\n  driver: mysql\n"))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "mongodb://env:27017", cfg.Mongo.URI)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")

	for name, body := range map[string]string{
		"port":          "port: 70000\n",
		"driver":        "store:\n  driver: sqlite\n",
		"unknown field": "colour: blue\n",
		"rate limit":    "rate_limit:\n  max: -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestDSNValueVerbatim(t *testing.T) {
	c := DatabaseRuntimeConfig{DSN: "u:p@tcp(h:1)/d"}
	assert.Equal(t, "u:p@tcp(h:1)/d", c.DSNValue())
}

func TestRedisURLValue(t *testing.T) {
	assert.Equal(t, "redis://cache:6380", RedisRuntimeConfig{URL: "cache:6380"}.URLValue())
	assert.Equal(t, "rediss://:secret@h:6379/2", RedisRuntimeConfig{Host: "h", Port: 6379, DB: 2, Password: "secret", TLS: true}.URLValue())
}
