package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the process-wide configuration, loaded once at startup.
type Config struct {
	App       AppConfig
	Toast     ToastConfig
	Webhooks  WebhookConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// ToastConfig holds the upstream point-of-sale API credentials and tuning.
type ToastConfig struct {
	BaseURL        string
	AuthURL        string
	ClientID       string
	ClientSecret   string
	RequestTimeout time.Duration
	// RequestsPerMinute throttles paginated fetches client-side.
	RequestsPerMinute int
	MaxRetries        int
}

// WebhookConfig holds outbound notification endpoints. ErrorURL receives
// terminal-failure reports; delivery failures there are logged, never
// retried.
type WebhookConfig struct {
	DefaultResultURL string
	ErrorURL         string
	Timeout          time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// Load reads configuration from .env and the environment.
func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Warnf(".env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "toast-insights")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "5000")
	viper.SetDefault("APP_DEBUG", false)
	viper.SetDefault("TOAST_API_BASE_URL", "https://ws-api.toasttab.com")
	viper.SetDefault("TOAST_AUTH_URL", "https://ws-api.toasttab.com/authentication/v1/authentication/login")
	viper.SetDefault("TOAST_REQUEST_TIMEOUT_SECONDS", 20)
	viper.SetDefault("TOAST_REQUESTS_PER_MINUTE", 10)
	viper.SetDefault("TOAST_MAX_RETRIES", 5)
	viper.SetDefault("WEBHOOK_TIMEOUT_SECONDS", 30)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Toast: ToastConfig{
			BaseURL:           viper.GetString("TOAST_API_BASE_URL"),
			AuthURL:           viper.GetString("TOAST_AUTH_URL"),
			ClientID:          viper.GetString("TOAST_CLIENT_ID"),
			ClientSecret:      viper.GetString("TOAST_CLIENT_SECRET"),
			RequestTimeout:    time.Duration(viper.GetInt("TOAST_REQUEST_TIMEOUT_SECONDS")) * time.Second,
			RequestsPerMinute: viper.GetInt("TOAST_REQUESTS_PER_MINUTE"),
			MaxRetries:        viper.GetInt("TOAST_MAX_RETRIES"),
		},
		Webhooks: WebhookConfig{
			DefaultResultURL: viper.GetString("WEBHOOK_RESULT_URL"),
			ErrorURL:         viper.GetString("WEBHOOK_ERROR_URL"),
			Timeout:          time.Duration(viper.GetInt("WEBHOOK_TIMEOUT_SECONDS")) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

// Validate fails fast on configuration errors before any network call.
func (c *Config) Validate() error {
	if c.Toast.ClientID == "" || c.Toast.ClientSecret == "" {
		return fmt.Errorf("missing required environment variables: TOAST_CLIENT_ID, TOAST_CLIENT_SECRET")
	}
	return nil
}
