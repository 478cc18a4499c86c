// Package config resolves runtime settings from environment variables, an
// optional codeslabs.yaml file and command-line flags, in that order of
// increasing priority.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"codeslabs/infrastructure/mailer"
)

const (
	KeyAddr          = "APP_ADDR"
	KeySQLitePath    = "SQLITE_PATH"
	KeyAPIBaseURL    = "API_BASE_URL"
	KeyPublicBaseURL = "PUBLIC_BASE_URL"
	KeyAdminKey      = "ADMIN_KEY"
	KeyLogLevel      = "LOG_LEVEL"
	KeyLogFormat     = "LOG_FORMAT"
	KeySMTPAddr      = "SMTP_ADDR"
	KeySMTPUser      = "SMTP_USER"
	KeySMTPPassword  = "SMTP_PASSWORD"
	KeyContactTo     = "CONTACT_TO"
	KeyContactFrom   = "CONTACT_FROM"
	KeySeedFile      = "SEED_FILE"

	DefaultAdminKey = "codes-labs-admin-2024"
)

// Config is the resolved application configuration.
type Config struct {
	Addr          string
	SQLitePath    string
	APIBaseURL    string
	PublicBaseURL string
	AdminKey      string
	LogLevel      string
	LogFormat     string
	SeedFile      string
	Mail          mailer.Config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeySQLitePath, "codeslabs.db")
	v.SetDefault(KeyAPIBaseURL, "")
	v.SetDefault(KeyPublicBaseURL, "http://localhost:8080")
	v.SetDefault(KeyAdminKey, DefaultAdminKey)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeySMTPAddr, "")
	v.SetDefault(KeySMTPUser, "")
	v.SetDefault(KeySMTPPassword, "")
	v.SetDefault(KeyContactTo, "codes.labs.rc@gmail.com")
	v.SetDefault(KeyContactFrom, "no-reply@codes-labs.dev")
	v.SetDefault(KeySeedFile, "content/seed.yaml")
}

// NewViper builds a viper instance with defaults and env binding. When
// configFile is empty an optional codeslabs.yaml in the working directory
// is read.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("codeslabs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load resolves Config from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Addr:          strings.TrimSpace(v.GetString(KeyAddr)),
		SQLitePath:    strings.TrimSpace(v.GetString(KeySQLitePath)),
		APIBaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString(KeyAPIBaseURL)), "/"),
		PublicBaseURL: strings.TrimRight(strings.TrimSpace(v.GetString(KeyPublicBaseURL)), "/"),
		AdminKey:      v.GetString(KeyAdminKey),
		LogLevel:      strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFormat:     strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
		SeedFile:      strings.TrimSpace(v.GetString(KeySeedFile)),
		Mail: mailer.Config{
			Addr:     strings.TrimSpace(v.GetString(KeySMTPAddr)),
			Username: v.GetString(KeySMTPUser),
			Password: v.GetString(KeySMTPPassword),
			From:     strings.TrimSpace(v.GetString(KeyContactFrom)),
			To:       strings.TrimSpace(v.GetString(KeyContactTo)),
		},
	}
	if cfg.Addr == "" {
		return Config{}, errors.New("APP_ADDR must not be empty")
	}
	if cfg.SQLitePath == "" {
		return Config{}, errors.New("SQLITE_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.AdminKey) == "" {
		return Config{}, errors.New("ADMIN_KEY must not be empty")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown LOG_LEVEL %q", level)
}

// NewLogger returns the slog logger described by cfg.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	level, _ := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
