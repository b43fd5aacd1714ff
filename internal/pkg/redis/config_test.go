package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "default config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing addr",
			mutate:  func(c *Config) { c.Addr = "" },
			wantErr: true,
		},
		{
			name:    "db out of range",
			mutate:  func(c *Config) { c.DB = 16 },
			wantErr: true,
		},
		{
			name:    "negative db",
			mutate:  func(c *Config) { c.DB = -1 },
			wantErr: true,
		},
		{
			name:    "zero pool size",
			mutate:  func(c *Config) { c.PoolSize = 0 },
			wantErr: true,
		},
		{
			name:    "min idle exceeds pool",
			mutate:  func(c *Config) { c.MinIdleConns = c.PoolSize + 1 },
			wantErr: true,
		},
		{
			name:    "zero dial timeout",
			mutate:  func(c *Config) { c.DialTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "negative max retries",
			mutate:  func(c *Config) { c.MaxRetries = -1 },
			wantErr: true,
		},
		{
			name: "backoff inverted",
			mutate: func(c *Config) {
				c.MinRetryBackoff = time.Second
				c.MaxRetryBackoff = time.Millisecond
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
