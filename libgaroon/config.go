package libgaroon

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GRSCHED_SUBDOMAIN
const EnvPrefix = "GRSCHED"

// Config represents the application configuration
type Config struct {
	Subdomain  string        `mapstructure:"subdomain" envconfig:"SUBDOMAIN"`
	BasicAuth  string        `mapstructure:"basic_auth" envconfig:"BASIC_AUTH"`
	BaseURL    string        `mapstructure:"base_url" envconfig:"BASE_URL"`
	WindowDays int           `mapstructure:"window_days" envconfig:"WINDOW_DAYS"`
	RateLimit  float64       `mapstructure:"rate_limit" envconfig:"RATE_LIMIT"`
	RetryCount int           `mapstructure:"retry_count" envconfig:"RETRY_COUNT"`
	Timeout    time.Duration `mapstructure:"timeout" envconfig:"TIMEOUT"`
}

// Validate checks that the credentials needed to reach the API are present
func (c *Config) Validate() error {
	if c.Subdomain == "" && c.BaseURL == "" {
		return fmt.Errorf("subdomain is not configured: run 'grsched configure' first")
	}
	if c.BasicAuth == "" {
		return fmt.Errorf("basic auth is not configured: run 'grsched configure' first")
	}
	if _, err := DecodeBasicAuth(c.BasicAuth); err != nil {
		return err
	}
	return nil
}

// ClientOptions derives client options from the configuration
func (c *Config) ClientOptions() ClientOptions {
	return ClientOptions{
		Subdomain:  c.Subdomain,
		BasicAuth:  c.BasicAuth,
		BaseURL:    c.BaseURL,
		RetryCount: c.RetryCount,
		Timeout:    c.Timeout,
		RateLimit:  c.RateLimit,
	}
}

// ConfigManager handles configuration persistence
type ConfigManager struct {
	configPath string
}

// DefaultConfigPath returns ~/.grsched/config.yaml
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".grsched", "config.yaml"), nil
}

// NewConfigManager creates a configuration manager for path, or the default path when empty
func NewConfigManager(path string) (*ConfigManager, error) {
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return nil, err
		}
	}

	return &ConfigManager{configPath: path}, nil
}

// Path returns the configuration file location
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

// Exists reports whether the configuration file has been written
func (cm *ConfigManager) Exists() bool {
	_, err := os.Stat(cm.configPath)
	return err == nil
}

func (cm *ConfigManager) newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigFile(cm.configPath)
	v.SetConfigType("yaml")
	v.SetConfigPermissions(0600)

	v.SetDefault("subdomain", "")
	v.SetDefault("basic_auth", "")
	v.SetDefault("base_url", "")
	v.SetDefault("window_days", DefaultWindowDays)
	v.SetDefault("rate_limit", 5.0)
	v.SetDefault("retry_count", 3)
	v.SetDefault("timeout", 30*time.Second)
	return v
}

// Load reads the configuration file, applies defaults and then environment overrides
func (cm *ConfigManager) Load() (*Config, error) {
	config, err := cm.LoadFile()
	if err != nil {
		return nil, err
	}

	if err := envconfig.Process(EnvPrefix, config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return config, nil
}

// LoadFile reads the configuration file and defaults only. Commands that
// Save must start from it so environment overrides never reach the file.
func (cm *ConfigManager) LoadFile() (*Config, error) {
	v := cm.newViper()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk
func (cm *ConfigManager) Save(config *Config) error {
	if err := os.MkdirAll(filepath.Dir(cm.configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := cm.newViper()
	v.Set("subdomain", config.Subdomain)
	v.Set("basic_auth", config.BasicAuth)
	v.Set("base_url", config.BaseURL)
	v.Set("window_days", config.WindowDays)
	v.Set("rate_limit", config.RateLimit)
	v.Set("retry_count", config.RetryCount)
	v.Set("timeout", config.Timeout.String())

	if err := v.WriteConfigAs(cm.configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	// WriteConfigAs only applies the permissions when it creates the file.
	if err := os.Chmod(cm.configPath, 0600); err != nil {
		return fmt.Errorf("failed to restrict config permissions: %w", err)
	}

	return nil
}
