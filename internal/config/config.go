// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

const defaultJWTSecret = "conspiracy-theory-secret-change-in-production"

// Config holds every setting the service reads, sourced from an optional
// config file overlaid with environment variables.
type Config struct {
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	Port           string `mapstructure:"PORT"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	Env            string `mapstructure:"APP_ENV"`
	CookieSecure   bool   `mapstructure:"COOKIE_SECURE"`
}

var defaults = map[string]any{
	"PORT":            "3001",
	"DB_HOST":         "localhost",
	"DB_PORT":         "5432",
	"DB_USER":         "user",
	"DB_PASSWORD":     "password",
	"DB_NAME":         "tinfoil",
	"DB_SSLMODE":      "disable",
	"REDIS_URL":       "localhost:6379",
	"JWT_SECRET":      defaultJWTSecret,
	"ALLOWED_ORIGINS": "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173",
	"APP_ENV":         "development",
	"COOKIE_SECURE":   false,
}

// LoadConfig reads config.yml (optional), overlays config.<env>.yml when
// APP_ENV names a non-development profile (required then), and lets
// environment variables override both.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base file is optional; APP_ENV may arrive from it or the env.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env != "" && env != "development" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate rejects configurations that cannot work and, in production,
// configurations that would ship development credentials.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	if c.Env != "production" && c.Env != "prod" {
		if len(c.JWTSecret) < 32 {
			log.Println("WARNING: JWT_SECRET is shorter than 32 characters. Consider using a stronger secret for production.")
		}
		return nil
	}

	if c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be changed from the default value in production")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters in production")
	}
	if c.DBPassword == "password" || c.DBPassword == "" {
		return errors.New("a strong DB_PASSWORD is required in production")
	}
	if !c.CookieSecure {
		log.Println("WARNING: COOKIE_SECURE is false in production. Session cookies should only be sent over HTTPS.")
	}
	if c.DBSSLMode == "disable" || c.DBSSLMode == "" {
		log.Println("WARNING: DB_SSLMODE is 'disable' in production. Use SSL for database connections.")
	}
	if c.AllowedOrigins == "*" {
		log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
	}
	return nil
}
