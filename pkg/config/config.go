package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups every setting the service reads from the environment.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	DB       DBConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Setup    SetupConfig
	LogLevel string
}

type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// IsProduction reports whether cookies must be marked Secure.
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

type HTTPConfig struct {
	Port int
}

// Addr returns the listen address.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DBConfig holds Postgres settings. DatabaseURL wins over the discrete fields.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	TimeZone    string
}

// DSN returns the connection string handed to the Postgres driver.
func (c DBConfig) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

type JWTConfig struct {
	Secret     string
	TTL        time.Duration
	Issuer     string
	CookieName string
}

// RedisConfig is optional; an empty Addr disables session revocation.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// SetupConfig is the super-admin triple accepted by the bootstrap endpoint.
type SetupConfig struct {
	Email    string
	Password string
	PIN      string
}

// Enabled reports whether all three secrets are configured.
func (c SetupConfig) Enabled() bool {
	return c.Email != "" && c.Password != "" && c.PIN != ""
}

// Load reads configuration from env vars, falling back to .env/config.env files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		HTTP: HTTPConfig{
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			TimeZone:    v.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			TTL:        time.Duration(v.GetInt("JWT_TTL_HOURS")) * time.Hour,
			Issuer:     v.GetString("JWT_ISSUER"),
			CookieName: v.GetString("COOKIE_NAME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Setup: SetupConfig{
			Email:    v.GetString("SETUP_EMAIL"),
			Password: v.GetString("SETUP_PASSWORD"),
			PIN:      v.GetString("SETUP_PIN"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("config: JWT_TTL_HOURS must be positive")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "pos-admin")
	v.SetDefault("HTTP_PORT", 3000)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "pos_admin")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("JWT_TTL_HOURS", 7*24)
	v.SetDefault("JWT_ISSUER", "pos-admin")
	v.SetDefault("COOKIE_NAME", "token")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
}
