package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-quote2pdf/internal/dateutil"
	"github.com/alnah/go-quote2pdf/internal/fileutil"
	"github.com/alnah/go-quote2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTemplateLength = 20   // "branded", "plain"
	MaxPrefixLength   = 10   // "R ", "$", "EUR "
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxPaths          = 16
)

// Config holds user overrides for quotation rendering. Zero values mean
// "use the template default".
type Config struct {
	Template string         `yaml:"template"`
	Currency CurrencyConfig `yaml:"currency"`
	Tax      TaxConfig      `yaml:"tax"`
	Dates    DatesConfig    `yaml:"dates"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// CurrencyConfig defines money formatting.
type CurrencyConfig struct {
	Prefix         string `yaml:"prefix"`         // Printed before every amount, e.g. "R "
	GroupThousands *bool  `yaml:"groupThousands"` // nil = template default
}

// TaxConfig defines the tax rate applied when a record omits one.
type TaxConfig struct {
	DefaultRate *float64 `yaml:"defaultRate"` // percent, 0-100
}

// DatesConfig defines how record dates are printed.
type DatesConfig struct {
	Format string `yaml:"format"` // tokens like DD/MM/YYYY, or a preset name
}

// AssetsConfig defines extra asset search locations, searched before the
// built-in directories.
type AssetsConfig struct {
	FontDirs []string `yaml:"fontDirs"`
	LogoDirs []string `yaml:"logoDirs"`
}

// Validate checks lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("template", c.Template, MaxTemplateLength); err != nil {
		return err
	}
	if c.Template != "" {
		switch strings.ToLower(c.Template) {
		case "branded", "plain":
		default:
			return fmt.Errorf("%w: template %q (must be branded or plain)", ErrInvalidValue, c.Template)
		}
	}

	if err := validateFieldLength("currency.prefix", c.Currency.Prefix, MaxPrefixLength); err != nil {
		return err
	}

	if r := c.Tax.DefaultRate; r != nil && (*r < 0 || *r > 100) {
		return fmt.Errorf("%w: tax.defaultRate must be between 0 and 100, got %.2f", ErrInvalidValue, *r)
	}

	if c.Dates.Format != "" {
		if _, err := dateutil.ParseDateFormat(c.Dates.Format); err != nil {
			return fmt.Errorf("dates.format: %w", err)
		}
	}

	if err := validatePaths("assets.fontDirs", c.Assets.FontDirs); err != nil {
		return err
	}
	return validatePaths("assets.logoDirs", c.Assets.LogoDirs)
}

func validatePaths(field string, paths []string) error {
	if len(paths) > MaxPaths {
		return fmt.Errorf("%w: %s has %d entries (max %d)", ErrInvalidValue, field, len(paths), MaxPaths)
	}
	for i, p := range paths {
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", field, i), p, MaxPathLength); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths returns where a config name is looked up, in order.
// Tries extensions .yaml then .yml, in the current directory and then in
// ~/.config/go-quote2pdf/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-quote2pdf", name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
