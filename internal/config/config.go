package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	PostgresURL   string        `mapstructure:"POSTGRES_URL"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	Debug         bool          `mapstructure:"DEBUG"`
	HistoryLimit  int           `mapstructure:"HISTORY_LIMIT"`
	Timezone      string        `mapstructure:"TIMEZONE"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`
	AutoMigrate   bool          `mapstructure:"AUTO_MIGRATE"`
}

func Load() Config {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVER_PORT", ":8080")
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("DEBUG", false)
	v.SetDefault("HISTORY_LIMIT", 50)
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("AUTO_MIGRATE", true)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Location resolves the timezone used to bucket trips into calendar days.
// Empty or unknown zones resolve to UTC.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
