package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the client configuration.
type Config struct {
	Environment string        `mapstructure:"environment"`
	LogLevel    string        `mapstructure:"log_level"`
	Webhook     WebhookConfig `mapstructure:"webhook"`
	Metrics     MetricsConfig `mapstructure:"metrics"`
}

// WebhookConfig holds the webhook endpoint configuration. Either URL or
// the ID/Token pair must be supplied.
type WebhookConfig struct {
	ID        string `mapstructure:"id"`
	Token     string `mapstructure:"token"`
	URL       string `mapstructure:"url"`
	RootURL   string `mapstructure:"root_url"`
	Username  string `mapstructure:"username"`
	AvatarURL string `mapstructure:"avatar_url"`
	Timeout   string `mapstructure:"timeout"`
}

// MetricsConfig holds Prometheus exposition configuration.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Environment variables take priority over file values.
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("DISCORD_WEBHOOK")

	v.BindEnv("environment", "DISCORD_WEBHOOK_ENVIRONMENT")
	v.BindEnv("log_level", "DISCORD_WEBHOOK_LOG_LEVEL")

	v.BindEnv("webhook.id", "DISCORD_WEBHOOK_ID")
	v.BindEnv("webhook.token", "DISCORD_WEBHOOK_TOKEN")
	v.BindEnv("webhook.url", "DISCORD_WEBHOOK_URL")
	v.BindEnv("webhook.root_url", "DISCORD_WEBHOOK_ROOT_URL")
	v.BindEnv("webhook.username", "DISCORD_WEBHOOK_USERNAME")
	v.BindEnv("webhook.avatar_url", "DISCORD_WEBHOOK_AVATAR_URL")
	v.BindEnv("webhook.timeout", "DISCORD_WEBHOOK_TIMEOUT")

	v.BindEnv("metrics.enabled", "DISCORD_WEBHOOK_METRICS_ENABLED")
	v.BindEnv("metrics.port", "DISCORD_WEBHOOK_METRICS_PORT")

	// Config file is optional, environment variables can provide everything.
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The client cannot authenticate without credentials.
	if config.Webhook.URL == "" && (config.Webhook.ID == "" || config.Webhook.Token == "") {
		return nil, fmt.Errorf("either DISCORD_WEBHOOK_URL or both DISCORD_WEBHOOK_ID and DISCORD_WEBHOOK_TOKEN must be set")
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")

	v.SetDefault("webhook.root_url", "https://discord.com/api/v10/webhooks")
	v.SetDefault("webhook.timeout", "30s")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
}
