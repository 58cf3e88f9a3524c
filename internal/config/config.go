// Package config loads the process configuration once at startup.
//
// Values come from an optional config.yaml in the working directory with
// environment-variable overrides, e.g. SPLITMATE_SERVER_PORT=9000 or
// SPLITMATE_JWT_SECRET=....
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type NotifyConfig struct {
	// FCMEndpoint is the FCM send URL; FCMServerKey authorizes it.
	// Notifications are disabled when the key is empty.
	FCMEndpoint  string `mapstructure:"fcm_endpoint"`
	FCMServerKey string `mapstructure:"fcm_server_key"`
	QueueSize    int    `mapstructure:"queue_size"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Notify   NotifyConfig   `mapstructure:"notify"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// Load reads configuration from config.yaml (if present) and the
// environment, applying defaults for everything optional.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SPLITMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("database.path", "./data/splitmate.db")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("notify.fcm_endpoint", "https://fcm.googleapis.com/fcm/send")
	v.SetDefault("notify.queue_size", 100)
	v.SetDefault("cors.allowed_origins", []string{"*"})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.JWT.Secret == "" {
		return nil, errors.New("jwt.secret is required (SPLITMATE_JWT_SECRET)")
	}

	return &c, nil
}
