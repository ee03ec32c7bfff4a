package utils

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	TMDB     TMDBConfig
	Sync     SyncConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type TMDBConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	MaxRetries        int
	RetryBaseDelay    time.Duration
	RequestsPerSecond float64
	Burst             int
}

type SyncConfig struct {
	Workers int
}

type AdminConfig struct {
	// Bcrypt hash of the admin token. Empty disables the admin routes.
	TokenHash string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("TMDB_TIMEOUT_SECONDS", 30)
	viper.SetDefault("TMDB_MAX_RETRIES", 4)
	viper.SetDefault("TMDB_RETRY_BASE_MS", 500)
	viper.SetDefault("TMDB_REQUESTS_PER_SECOND", 4.0)
	viper.SetDefault("TMDB_BURST", 8)
	viper.SetDefault("SYNC_WORKERS", 4)

	if err := viper.ReadInConfig(); err != nil {
		// Container deployments run env-only, without a .env file
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		TMDB: TMDBConfig{
			BaseURL:           viper.GetString("TMDB_BASE_URL"),
			APIKey:            viper.GetString("TMDB_API_KEY"),
			Timeout:           time.Duration(viper.GetInt("TMDB_TIMEOUT_SECONDS")) * time.Second,
			MaxRetries:        viper.GetInt("TMDB_MAX_RETRIES"),
			RetryBaseDelay:    time.Duration(viper.GetInt("TMDB_RETRY_BASE_MS")) * time.Millisecond,
			RequestsPerSecond: viper.GetFloat64("TMDB_REQUESTS_PER_SECOND"),
			Burst:             viper.GetInt("TMDB_BURST"),
		},
		Sync: SyncConfig{
			Workers: viper.GetInt("SYNC_WORKERS"),
		},
		Admin: AdminConfig{
			TokenHash: viper.GetString("ADMIN_TOKEN_HASH"),
		},
	}

	return config, nil
}
