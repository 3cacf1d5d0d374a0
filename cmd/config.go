package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"tabula/internal/pagination"
	"tabula/internal/util"
)

// ErrInvalidPageSize is returned for a non-positive page size.
var ErrInvalidPageSize = errors.New("page size must be positive")

// Config holds CLI configuration. Flags override environment variables, which
// override the config file.
type Config struct {
	PageSize        int    `yaml:"page_size"`
	PageSizeOptions []int  `yaml:"page_size_options,omitempty"`
	SiblingCount    int    `yaml:"sibling_count"`
	DateFormat      string `yaml:"date_format"`
	LogLevel        string `yaml:"log_level"`
	LogFile         string `yaml:"log_file,omitempty"`
	DBPath          string `yaml:"db,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		PageSize:        pagination.DefaultPageSize,
		PageSizeOptions: append([]int(nil), pagination.DefaultPageSizeOptions...),
		SiblingCount:    pagination.DefaultSiblings,
		DateFormat:      util.DefaultDateLayout,
		LogLevel:        "info",
	}
}

// configDir returns $TABULA_HOME or ~/.tabula.
func configDir() (string, error) {
	if dir := os.Getenv("TABULA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tabula"), nil
}

// DefaultConfigPath is the config file used when --config is not given.
func DefaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads path on top of the defaults and then applies environment
// overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TABULA_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TABULA_PAGE_SIZE %q: %w", v, err)
		}
		c.PageSize = n
	}
	if v := os.Getenv("TABULA_SIBLINGS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TABULA_SIBLINGS %q: %w", v, err)
		}
		c.SiblingCount = n
	}
	if v := os.Getenv("TABULA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TABULA_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("TABULA_DB"); v != "" {
		c.DBPath = v
	}
	return nil
}

// Validate checks value ranges. Negative sibling counts are clamped rather
// than rejected.
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidPageSize, c.PageSize)
	}
	for _, o := range c.PageSizeOptions {
		if o <= 0 {
			return fmt.Errorf("%w in page_size_options, got %d", ErrInvalidPageSize, o)
		}
	}
	if c.SiblingCount < 0 {
		c.SiblingCount = 0
	}
	if c.DateFormat == "" {
		c.DateFormat = util.DefaultDateLayout
	}
	return nil
}

// SaveConfig writes cfg to path, creating the directory if needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
