// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type DatabaseConfig struct {
	URL          string
	User         string
	Password     string
	Host         string
	Port         string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// DSN prefers DATABASE_URL and otherwise assembles a postgres URL from the parts.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string
	File   string
}

type Config struct {
	Env             string
	HTTPAddr        string
	ServiceName     string
	DB              DatabaseConfig
	JWTSecret       string
	JWTTTL          time.Duration
	AMQPURL         string
	EventsQueue     string
	Redis           RedisConfig
	RateLimit       string
	Log             LogConfig
	ShutdownTimeout time.Duration
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

const devJWTSecret = "dev-secret-change-me"

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("SERVICE_NAME", "adreport-backend")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "adreport")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("PROJECT_EVENTS_QUEUE", "project_events")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT", "100-15M")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// .env is optional; the OS environment wins over it
	_ = godotenv.Load()
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:         v.GetString("APP_ENV"),
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		ServiceName: v.GetString("SERVICE_NAME"),
		DB: DatabaseConfig{
			URL:          v.GetString("DATABASE_URL"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			Name:         v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		},
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTTTL:      v.GetDuration("JWT_TTL"),
		AMQPURL:     v.GetString("AMQP_URL"),
		EventsQueue: v.GetString("PROJECT_EVENTS_QUEUE"),
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: v.GetString("RATE_LIMIT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			File:   v.GetString("LOG_FILE"),
		},
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return Config{}, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Env)
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return Config{}, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.JWTTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.JWTTTL)
	}
	return cfg, nil
}
