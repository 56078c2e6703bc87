package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://ledger@localhost/ledger")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RateQuoteTimeout)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, "10-M", cfg.LoginRateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoad_MemoryDriverNeedsNoDatabase(t *testing.T) {
	t.Setenv("PGSQL_URL", "")
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.True(t, cfg.UsesMemoryStore())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"PGSQL_URL": ""}},
		{"unknown driver", map[string]string{"DB_DRIVER": "sqlite"}},
		{"unknown quote source", map[string]string{"RATE_QUOTE_SOURCE": "magic"}},
		{"telegram token without chat", map[string]string{"TELEGRAM_BOT_TOKEN": "123:abc"}},
		{"admin user without hash", map[string]string{"ADMIN_USERNAME": "root"}},
		{"short jwt secret", map[string]string{"JWT_SECRET": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PGSQL_URL", "postgres://ledger@localhost/ledger")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(viper.New())
			assert.Error(t, err)
		})
	}
}
