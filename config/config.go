package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Task domain
	Task           TaskConfig
	Memos          MemosConfig
	Telegram       TelegramConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
}

// TaskConfig holds the quick-add defaults.
type TaskConfig struct {
	Timezone        string // IANA name; the "today" used to resolve M/D dates
	DefaultPriority string
	DefaultProject  string
}

// MemosConfig selects the Memos repository when AccessToken is set.
type MemosConfig struct {
	URL         string
	AccessToken string
}

type TelegramConfig struct {
	BotToken      string
	WebhookURL    string
	WebhookSecret string
	NgrokAPIURL   string // Local ngrok API used to discover WebhookURL when it is empty
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string // OAuth desktop token written by scripts/gcal-auth
	CalendarID      string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")

	// Task domain
	cfg.Task.Timezone = viper.GetString("task.timezone")
	cfg.Task.DefaultPriority = viper.GetString("task.default_priority")
	cfg.Task.DefaultProject = viper.GetString("task.default_project")

	cfg.Memos.URL = viper.GetString("memos.url")
	cfg.Memos.AccessToken = viper.GetString("memos.access_token")

	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = viper.GetString("telegram.webhook_secret")
	cfg.Telegram.NgrokAPIURL = viper.GetString("telegram.ngrok_api_url")

	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = viper.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Task.DefaultPriority {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("task.default_priority must be low, medium or high, got %q", cfg.Task.DefaultPriority)
	}
	if cfg.Memos.AccessToken != "" && cfg.Memos.URL == "" {
		return fmt.Errorf("memos.url is required when memos.access_token is set")
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.RequestsPerMin <= 0 {
		return fmt.Errorf("rate_limit.requests_per_min must be positive")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 120)

	viper.SetDefault("task.timezone", "UTC")
	viper.SetDefault("task.default_priority", "medium")
	viper.SetDefault("task.default_project", "inbox")

	viper.SetDefault("memos.url", "http://localhost:5230")
	viper.SetDefault("google_calendar.token_path", "token.json")
	viper.SetDefault("google_calendar.calendar_id", "primary")
}
