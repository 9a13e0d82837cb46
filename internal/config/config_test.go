package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := LoadEnv()

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "sessionid", cfg.Session.CookieName)
	assert.Equal(t, 14*24*time.Hour, cfg.Session.TTL)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	cfg := LoadEnv()

	assert.Equal(t, ":9000", cfg.Server.HTTPAddr)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "abc")
	t.Setenv("SESSION_TTL", "forever")

	cfg := LoadEnv()

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 14*24*time.Hour, cfg.Session.TTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{Driver: StorageDriverMemory},
			JWT:     JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, ErrJWTSecretMissing},
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, ErrJWTSecretTooShort},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mysql" }, ErrUnknownStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
