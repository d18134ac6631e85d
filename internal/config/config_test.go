package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 123, cfg.Academy.RegistrationOrderCode)
	assert.Equal(t, 10, cfg.Academy.PageSize)
	assert.Equal(t, 3, cfg.Academy.PadawanLimit)
	assert.Equal(t, "log", cfg.Mail.Transport)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9300")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("PADAWAN_LIMIT", "5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("MONGODB_POOL_SIZE", "25")

	cfg := Load()

	assert.Equal(t, "9300", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, 5, cfg.Academy.PadawanLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, uint64(25), cfg.MongoDB.PoolSize)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("PAGE_SIZE", "ten")
	t.Setenv("READ_TIMEOUT", "soon")
	t.Setenv("LOG_JSON", "maybe")
	t.Setenv("PADAWAN_LIMIT", "0")

	cfg := Load()

	assert.Equal(t, 10, cfg.Academy.PageSize)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 3, cfg.Academy.PadawanLimit)
}

func TestNonPositiveSizesFallBack(t *testing.T) {
	t.Setenv("PAGE_SIZE", "0")
	t.Setenv("PADAWAN_LIMIT", "-2")

	cfg := Load()

	assert.Equal(t, 10, cfg.Academy.PageSize)
	assert.Equal(t, 3, cfg.Academy.PadawanLimit)
}
