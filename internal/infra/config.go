package infra

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"order_book/internal/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting of the order book process.
// LoadConfig fills it from YAML, then lets ORDERBOOK_* environment variables
// override individual fields.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Logging LoggingConfig `yaml:"logging"`

	Engine struct {
		InboxSize int    `yaml:"inbox_size"`
		DumpFile  string `yaml:"dump_file"`
	} `yaml:"engine"`

	Book struct {
		DepthLevels int            `yaml:"depth_levels"`
		SeedOrders  []domain.Order `yaml:"seed_orders"`
	} `yaml:"book"`
}

// LoggingConfig controls the level and rotation of the log file.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig returns the settings used for any field the file leaves out.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.App.Name = "order-book"
	cfg.App.Version = "dev"
	cfg.Logging = LoggingConfig{
		Level:      "info",
		Dir:        "logs",
		File:       "app.log",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
		Compress:   true,
	}
	cfg.Engine.InboxSize = 1024
	cfg.Engine.DumpFile = "panic_dump.json"
	cfg.Book.DepthLevels = 5
	return cfg
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, err
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ParseConfig decodes YAML on top of DefaultConfig without validating.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return domain.NewConfigError("logging.level", fmt.Errorf("unknown level %q", c.Logging.Level))
	}

	if c.Logging.File == "" {
		return domain.NewConfigError("logging.file", errors.New("must not be empty"))
	}

	if c.Engine.InboxSize <= 0 {
		return domain.NewConfigError("engine.inbox_size", errors.New("must be positive"))
	}

	if c.Book.DepthLevels < 0 {
		return domain.NewConfigError("book.depth_levels", errors.New("must not be negative"))
	}

	seen := make(map[uint64]bool, len(c.Book.SeedOrders))
	for i, o := range c.Book.SeedOrders {
		field := fmt.Sprintf("book.seed_orders[%d]", i)
		if err := o.Validate(); err != nil {
			return domain.NewConfigError(field, err)
		}
		if seen[o.ID] {
			return domain.NewConfigError(field, fmt.Errorf("duplicate order id %d", o.ID))
		}
		seen[o.ID] = true
	}

	return nil
}

// overrideWithEnv replaces config values with ORDERBOOK_* environment
// variables when they are set.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("ORDERBOOK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ORDERBOOK_LOG_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
	if v := os.Getenv("ORDERBOOK_INBOX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.InboxSize = n
		}
	}
	if v := os.Getenv("ORDERBOOK_DEPTH_LEVELS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Book.DepthLevels = n
		}
	}
}
