package conf

import (
	"fmt"

	"github.com/acadex/research-scraper/internal/pkg/redis"
	"github.com/acadex/research-scraper/internal/scraper/types"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Cache   CacheConfig
	Sources []types.SourceConfig `mapstructure:"sources"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

type CacheConfig struct {
	// Backend selects the cache implementation: "memory" or "redis".
	Backend string `mapstructure:"backend"`
	// TTLSeconds bounds cached responses. Zero means the backend default.
	TTLSeconds int          `mapstructure:"ttl_seconds"`
	Redis      redis.Config `mapstructure:"redis"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8500
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Backend == "redis" {
		defaults := redis.DefaultConfig()
		if c.Cache.Redis.Addr == "" {
			c.Cache.Redis.Addr = defaults.Addr
		}
		if c.Cache.Redis.PoolSize == 0 {
			c.Cache.Redis.PoolSize = defaults.PoolSize
		}
		if c.Cache.Redis.MinIdleConns == 0 {
			c.Cache.Redis.MinIdleConns = defaults.MinIdleConns
		}
		if c.Cache.Redis.DialTimeout == 0 {
			c.Cache.Redis.DialTimeout = defaults.DialTimeout
		}
		if c.Cache.Redis.ReadTimeout == 0 {
			c.Cache.Redis.ReadTimeout = defaults.ReadTimeout
		}
		if c.Cache.Redis.WriteTimeout == 0 {
			c.Cache.Redis.WriteTimeout = defaults.WriteTimeout
		}
		if c.Cache.Redis.PoolTimeout == 0 {
			c.Cache.Redis.PoolTimeout = defaults.PoolTimeout
		}
		if c.Cache.Redis.MaxRetries == 0 {
			c.Cache.Redis.MaxRetries = defaults.MaxRetries
		}
		if c.Cache.Redis.MinRetryBackoff == 0 {
			c.Cache.Redis.MinRetryBackoff = defaults.MinRetryBackoff
		}
		if c.Cache.Redis.MaxRetryBackoff == 0 {
			c.Cache.Redis.MaxRetryBackoff = defaults.MaxRetryBackoff
		}
	}
	if len(c.Sources) == 0 {
		c.Sources = types.DefaultSourceConfigs()
	}
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
