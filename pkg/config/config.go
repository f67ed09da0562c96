package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Model      ModelConfig      `mapstructure:"model"`
	Moderation ModerationConfig `mapstructure:"moderation"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	SecretKey   string `mapstructure:"secret_key"`
	// SessionTTL bounds the lifetime of issued session tokens.
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ModelConfig selects and tunes the text-generation provider. Decoding is
// pinned near-deterministic so repeated analyses of the same text converge.
type ModelConfig struct {
	Provider        string        `mapstructure:"provider"`
	Model           string        `mapstructure:"model"`
	APIKey          string        `mapstructure:"api_key"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// ModerationConfig carries the operator-supplied policy description that is
// prepended to every analysis prompt.
type ModerationConfig struct {
	PolicyTemplate string `mapstructure:"policy_template"`
}

var globalConfig Config

func Load(configPath string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaultValues()

	return validate()
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Server.SessionTTL == 0 {
		globalConfig.Server.SessionTTL = 7 * 24 * time.Hour
	}
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Model.Provider == "" {
		globalConfig.Model.Provider = "gemini"
	}
	if globalConfig.Model.Temperature == 0 {
		globalConfig.Model.Temperature = 0.1
	}
	if globalConfig.Model.MaxOutputTokens == 0 {
		globalConfig.Model.MaxOutputTokens = 300
	}
	if globalConfig.Model.Timeout == 0 {
		globalConfig.Model.Timeout = 30 * time.Second
	}
}

func validate() error {
	if globalConfig.Server.SecretKey == "" {
		return errors.New("server.secret_key is required")
	}
	if globalConfig.Moderation.PolicyTemplate == "" {
		return errors.New("moderation.policy_template is required")
	}
	return nil
}

func GetConfig() *Config {
	return &globalConfig
}
