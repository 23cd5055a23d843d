package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultDBPath = "./dev.db"
	defaultPort   = "8080"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	DBPath        string `mapstructure:"DB_PATH"`
	Port          string `mapstructure:"PORT"`
	Env           string `mapstructure:"APP_ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
}

// Load reads environment variables and returns a populated Config. A local
// .env file is loaded first when present; production should use real env
// injection.
func Load() (Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("DB_PATH", defaultDBPath)
	viper.SetDefault("PORT", defaultPort)
	viper.SetDefault("APP_ENV", "dev")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.AutomaticEnv()

	for _, key := range []string{
		"ADMIN_EMAIL",
		"ADMIN_PASSWORD",
		"SESSION_SECRET",
		"DB_PATH",
		"PORT",
		"APP_ENV",
		"LOG_LEVEL",
		"LOG_FORMAT",
	} {
		_ = viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsDev reports whether the process runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}
