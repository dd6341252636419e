package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Booking BookingConfig
	Auth    AuthConfig
}

type AppConfig struct {
	Port           string
	Env            string
	LogLevel       string
	MigrationsPath string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// BookingConfig holds the expiration windows and creation policy of treatment requests.
type BookingConfig struct {
	InSessionWindow   time.Duration
	LunchWindow       time.Duration
	NextOpeningWindow time.Duration
	PersistRefused    bool
	ScheduleCacheTTL  time.Duration
}

// AuthConfig seeds the first admin account on startup when both fields are set.
type AuthConfig struct {
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("BOOKING_PERSIST_REFUSED", false)

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional, plain environment variables are enough
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:           viper.GetString("APP_PORT"),
			Env:            viper.GetString("APP_ENV"),
			LogLevel:       viper.GetString("LOG_LEVEL"),
			MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  durationOrDefault("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: durationOrDefault("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Booking: BookingConfig{
			InSessionWindow:   durationOrDefault("BOOKING_IN_SESSION_WINDOW", 20*time.Minute),
			LunchWindow:       durationOrDefault("BOOKING_LUNCH_WINDOW", 15*time.Minute),
			NextOpeningWindow: durationOrDefault("BOOKING_NEXT_OPENING_WINDOW", 15*time.Minute),
			PersistRefused:    viper.GetBool("BOOKING_PERSIST_REFUSED"),
			ScheduleCacheTTL:  durationOrDefault("SCHEDULE_CACHE_TTL", 10*time.Minute),
		},
		Auth: AuthConfig{
			AdminEmail:    viper.GetString("ADMIN_EMAIL"),
			AdminPassword: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	return config, nil
}

// durationOrDefault parses a duration env value, falling back when empty or malformed.
func durationOrDefault(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
