package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dragsort/internal/eventbus"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file looked up in the working directory
const FileName = "dragsort.toml"

// ErrInvalidConfig is returned when a loaded config fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version    int               `toml:"version"`
	Items      []string          `toml:"items"`
	Selector   string            `toml:"selector"`
	Ignore     string            `toml:"ignore,omitempty"`
	Handle     string            `toml:"handle,omitempty"`
	Horizontal bool              `toml:"horizontal"`
	Delta      float64           `toml:"delta"`
	Hold       string            `toml:"hold,omitempty"` // Go duration, e.g. "150ms"
	Animation  AnimationSettings `toml:"animation"`
	UISettings UISettings        `toml:"ui"`
	LogFile    string            `toml:"log_file"`
}

// AnimationSettings tunes the spring used for sliding items
type AnimationSettings struct {
	FPS       int     `toml:"fps"`
	Frequency float64 `toml:"frequency"`
	Damping   float64 `toml:"damping"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowHelp bool `toml:"show_help"`
	Handles  bool `toml:"handles"` // draw a grip and only drag from it
}

// HoldDuration parses Hold. An empty value disables hold promotion.
func (c *Config) HoldDuration() (time.Duration, error) {
	if strings.TrimSpace(c.Hold) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Hold)
	if err != nil {
		return 0, fmt.Errorf("%w: hold %q: %v", ErrInvalidConfig, c.Hold, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: hold must not be negative", ErrInvalidConfig)
	}
	return d, nil
}

// Validate checks the values the engine would reject
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Selector) == "" {
		return fmt.Errorf("%w: selector is required", ErrInvalidConfig)
	}
	if c.Delta < 0 {
		return fmt.Errorf("%w: delta must not be negative, got %v", ErrInvalidConfig, c.Delta)
	}
	if c.Animation.FPS < 0 {
		return fmt.Errorf("%w: animation fps must not be negative", ErrInvalidConfig)
	}
	_, err := c.HoldDuration()
	return err
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service reading the user config file
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "dragsort", FileName),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// NewConfigServiceAt creates a config service whose Load and Save use path
func NewConfigServiceAt(bus eventbus.EventBus, path string) ConfigService {
	return &configService{bus: bus, filePath: path}
}

// Load loads the configuration from file. A missing file yields the
// default configuration.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded(cs.filePath, cfg)
		return cfg, nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Unset fields keep
// their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Items = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cs.publishLoaded(path, cfg)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}
	return nil
}

func (cs *configService) publishLoaded(path string, cfg *Config) {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path, Items: len(cfg.Items)})
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Items:    []string{"alpha", "bravo", "charlie", "delta", "echo"},
		Selector: "li",
		Delta:    0.5,
		Animation: AnimationSettings{
			FPS:       60,
			Frequency: 8,
			Damping:   1,
		},
		UISettings: UISettings{
			ShowHelp: true,
		},
		LogFile: "dragsort.log",
	}
}
