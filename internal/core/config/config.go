package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Mode selects the transport implementation at startup.
const (
	ModeMock = "mock"
	ModeLive = "live"
)

// Config holds the global configuration
type Config struct {
	Mode   string       `mapstructure:"mode"` // "mock" or "live"
	API    APIConfig    `mapstructure:"api"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Mock   MockConfig   `mapstructure:"mock_data"`
	Log    LogConfig    `mapstructure:"log"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Export ExportConfig `mapstructure:"export"`
}

// APIConfig governs the live HTTP transport.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second, 0 disables
	RateBurst int           `mapstructure:"rate_burst"`
	LoginURL  string        `mapstructure:"login_url"` // where the UI sends the user on session expiry
}

// CacheConfig holds per-resource-kind freshness windows.
type CacheConfig struct {
	ListTTL      time.Duration `mapstructure:"list_ttl"`
	DetailTTL    time.Duration `mapstructure:"detail_ttl"`
	AnalyticsTTL time.Duration `mapstructure:"analytics_ttl"`
}

// MockConfig controls the in-memory mock backend.
type MockConfig struct {
	UserCount   int           `mapstructure:"user_count"`
	Seed        int64         `mapstructure:"seed"`
	FixturePath string        `mapstructure:"fixture_path"` // optional YAML dataset overriding the generator
	Latency     time.Duration `mapstructure:"latency"`      // simulated per-call delay
}

// AuthConfig locates the stored bearer credential.
type AuthConfig struct {
	TokenFile string `mapstructure:"token_file"`
}

// ExportConfig controls CSV export output.
type ExportConfig struct {
	Dir      string `mapstructure:"dir"`
	Compress string `mapstructure:"compress"` // "", "gzip" or "snappy"
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// Validate rejects configurations the core cannot start with.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeMock, ModeLive:
	default:
		return fmt.Errorf("invalid mode %q: must be %q or %q", c.Mode, ModeMock, ModeLive)
	}
	if c.Mode == ModeLive && c.API.BaseURL == "" {
		return errors.New("api.base_url is required in live mode")
	}
	if c.Cache.ListTTL <= 0 || c.Cache.DetailTTL <= 0 || c.Cache.AnalyticsTTL <= 0 {
		return errors.New("cache TTLs must be positive")
	}
	switch c.Export.Compress {
	case "", "gzip", "snappy":
	default:
		return fmt.Errorf("invalid export.compress %q", c.Export.Compress)
	}
	return nil
}

// Manager defines the configuration manager interface
type Manager interface {
	Load() error
	GetConfig() *Config
	Watch(onChange func(newConfig *Config))
}

type viperManager struct {
	v      *viper.Viper
	config *Config
	mu     sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configPath string) Manager {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("souqadmin")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("SOUQADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("mode", ModeMock)
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.rate_limit", 0)
	v.SetDefault("api.rate_burst", 1)
	v.SetDefault("api.login_url", "/login")
	v.SetDefault("cache.list_ttl", 5*time.Minute)
	v.SetDefault("cache.detail_ttl", 5*time.Minute)
	v.SetDefault("cache.analytics_ttl", 10*time.Minute)
	v.SetDefault("mock_data.user_count", 100)
	v.SetDefault("mock_data.seed", 1)
	v.SetDefault("mock_data.latency", 0)
	v.SetDefault("auth.token_file", "")
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.compress", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")

	return &viperManager{
		v:      v,
		config: &Config{},
	}
}

func (m *viperManager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.v.ReadInConfig(); err != nil {
		// If config file not found, we can proceed with defaults/env
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := m.v.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return m.config.Validate()
}

func (m *viperManager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *viperManager) Watch(onChange func(newConfig *Config)) {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		m.mu.Lock()
		if err := m.v.Unmarshal(m.config); err == nil {
			if onChange != nil {
				// Execute callback in a separate goroutine to avoid blocking
				go onChange(m.config)
			}
		}
		m.mu.Unlock()
	})
	m.v.WatchConfig()
}
