package config

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Source  SourceConfig  `mapstructure:"source"`
	Refresh RefreshConfig `mapstructure:"refresh"`
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Port            string `mapstructure:"port"`
	AllowedOrigins  string `mapstructure:"allowedOrigins"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
}

// SourceConfig selects and configures the upstream data source.
// Mode is "http" (the inventory API) or "file" (JSON fixtures).
type SourceConfig struct {
	Mode           string `mapstructure:"mode"`
	BaseURL        string `mapstructure:"baseUrl"`
	APIKey         string `mapstructure:"apiKey"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
	AlertsFile     string `mapstructure:"alertsFile"`
	RulesFile      string `mapstructure:"rulesFile"`
}

// RefreshConfig drives the background tickers. A zero interval
// disables the corresponding ticker.
type RefreshConfig struct {
	IntervalSeconds    int `mapstructure:"intervalSeconds"`
	SnoozeSweepSeconds int `mapstructure:"snoozeSweepSeconds"`
}

// LoadConfig loads the application configuration from file or environment variables
func LoadConfig(configPath string) (*Config, error) {
	var config Config

	// Set default values
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.allowedOrigins", "*")
	viper.SetDefault("server.shutdownTimeout", 10)
	viper.SetDefault("source.mode", "http")
	viper.SetDefault("source.baseUrl", "http://localhost:9090")
	viper.SetDefault("source.timeoutSeconds", 15)
	viper.SetDefault("refresh.intervalSeconds", 60)
	viper.SetDefault("refresh.snoozeSweepSeconds", 30)

	// Allow environment variables to override config file
	viper.SetEnvPrefix("INVENTORY_ALERT")
	viper.AutomaticEnv()

	// If config file is provided, read it
	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			logrus.Warnf("Error reading config file: %v", err)
		}
	}

	// Unmarshal config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
