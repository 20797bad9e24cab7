package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env               string        `mapstructure:"ENV"`
	Port              string        `mapstructure:"PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	AdminKey          string        `mapstructure:"ADMIN_KEY"`
	NotifyURL         string        `mapstructure:"NOTIFY_URL"`
	CORSAllowed       string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	DefaultWindowDays int           `mapstructure:"DEFAULT_WINDOW_DAYS"`
	AnomalyThreshold  float64       `mapstructure:"ANOMALY_THRESHOLD"`
	SummaryCacheTTL   time.Duration `mapstructure:"SUMMARY_CACHE_TTL"`
	RecalcTimeout     time.Duration `mapstructure:"RECALC_TIMEOUT"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DEFAULT_WINDOW_DAYS", 30)
	v.SetDefault("ANOMALY_THRESHOLD", 3.0)
	v.SetDefault("SUMMARY_CACHE_TTL", "5m")
	v.SetDefault("RECALC_TIMEOUT", "2m")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
