package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string        `mapstructure:"environment"`
	LogLevel    string        `mapstructure:"log_level"`
	Server      ServerConfig  `mapstructure:"server"`
	Relayer     RelayerConfig `mapstructure:"relayer"`
	Redis       RedisConfig   `mapstructure:"redis"`
	Cache       CacheConfig   `mapstructure:"cache"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RelayerConfig configures the upstream DEX relayer HTTP client.
type RelayerConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig holds TTLs for the token-list cache and the per-endpoint
// response cache. Both caches are read-mostly with short lifetimes; the
// service keeps no durable state.
type CacheConfig struct {
	TokenListTTL string `mapstructure:"token_list_ttl"`
	ResponseTTL  string `mapstructure:"response_ttl"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Environment = strings.ToLower(config.Environment)

	if _, err := time.ParseDuration(config.Cache.TokenListTTL); err != nil {
		return nil, fmt.Errorf("invalid token list TTL: %w", err)
	}
	if _, err := time.ParseDuration(config.Cache.ResponseTTL); err != nil {
		return nil, fmt.Errorf("invalid response TTL: %w", err)
	}

	return &config, nil
}

// TokenListTTL returns the parsed token-list cache TTL.
func (c *Config) TokenListTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.TokenListTTL)
	return d
}

// ResponseTTL returns the parsed response cache TTL.
func (c *Config) ResponseTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.ResponseTTL)
	return d
}

func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"*"})

	viper.SetDefault("relayer.base_url", "https://dex.devnet.tomochain.com")
	viper.SetDefault("relayer.timeout", 30)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("cache.token_list_ttl", "30s")
	viper.SetDefault("cache.response_ttl", "10s")
}
