package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Version    int        `toml:"version"`
	API        APIConfig  `toml:"api"`
	Bookmarks  Bookmarks  `toml:"bookmarks"`
	UISettings UISettings `toml:"ui"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL        string        `toml:"base_url"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	RequestsPerSec int           `toml:"requests_per_sec"`
}

// Bookmarks configures where the persisted bookmark set lives.
// Backend is "file" (JSON file) or "sqlite".
type Bookmarks struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// UISettings represents UI-related configuration.
type UISettings struct {
	PageSize      int    `toml:"page_size"`
	TrendingLimit int    `toml:"trending_limit"`
	MaxCategories int    `toml:"max_categories"`
	LogFile       string `toml:"log_file"`
}

// Service handles configuration management.
type Service interface {
	Load() (*Config, error)
	Save(cfg *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(cfg *Config, path string) error
}

type service struct {
	filePath string
}

// NewService creates a config service storing its file under the user
// config directory.
func NewService() Service {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	appDir := filepath.Join(configDir, "polyscope")
	os.MkdirAll(appDir, 0755)

	return &service{
		filePath: filepath.Join(appDir, "config.toml"),
	}
}

// Load loads the configuration, returning defaults when no file exists.
func (s *service) Load() (*Config, error) {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return Default(), nil
	}
	return s.LoadFromPath(s.filePath)
}

// Save saves the configuration to the default location.
func (s *service) Save(cfg *Config) error {
	return s.SaveToPath(cfg, s.filePath)
}

// LoadFromPath loads configuration from a specific path.
func (s *service) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path.
func (s *service) SaveToPath(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyDefaults fills in zero-valued fields so a sparse config file
// still yields a usable configuration.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.RequestTimeout == 0 {
		cfg.API.RequestTimeout = def.API.RequestTimeout
	}
	if cfg.API.RequestsPerSec == 0 {
		cfg.API.RequestsPerSec = def.API.RequestsPerSec
	}
	if cfg.Bookmarks.Backend == "" {
		cfg.Bookmarks.Backend = def.Bookmarks.Backend
	}
	if cfg.Bookmarks.Path == "" {
		cfg.Bookmarks.Path = def.Bookmarks.Path
	}
	if cfg.UISettings.PageSize == 0 {
		cfg.UISettings.PageSize = def.UISettings.PageSize
	}
	if cfg.UISettings.TrendingLimit == 0 {
		cfg.UISettings.TrendingLimit = def.UISettings.TrendingLimit
	}
	if cfg.UISettings.MaxCategories == 0 {
		cfg.UISettings.MaxCategories = def.UISettings.MaxCategories
	}
	if cfg.UISettings.LogFile == "" {
		cfg.UISettings.LogFile = def.UISettings.LogFile
	}
}

// Default returns the default configuration.
func Default() *Config {
	dataDir, err := os.UserConfigDir()
	if err != nil {
		dataDir = "."
	}

	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL:        "https://polyscope.onrender.com/api",
			RequestTimeout: 30 * time.Second,
			RequestsPerSec: 5,
		},
		Bookmarks: Bookmarks{
			Backend: "file",
			Path:    filepath.Join(dataDir, "polyscope", "bookmarks.json"),
		},
		UISettings: UISettings{
			PageSize:      15,
			TrendingLimit: 50,
			MaxCategories: 5,
			LogFile:       "polyscope.log",
		},
	}
}
