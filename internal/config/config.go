package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config file looked up when --config is not given.
const DefaultConfigPath = "fundlookup.yaml"

// Config holds all fundlookup configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Where the reporting-funds dataset comes from
	Dataset DatasetConfig `yaml:"dataset"`

	// Key column and projected fields
	Lookup LookupConfig `yaml:"lookup"`

	// Terminal form presentation
	UI UIConfig `yaml:"ui"`

	// HTTP form
	Server ServerConfig `yaml:"server"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetConfig configures the dataset loader.
type DatasetConfig struct {
	Source       string `yaml:"source"`        // file path or http(s) URL
	Delimiter    string `yaml:"delimiter"`     // single character, default ","
	FetchTimeout string `yaml:"fetch_timeout"` // applies to http(s) sources only
}

// LookupConfig configures the key column and the projection shown on a match.
type LookupConfig struct {
	KeyColumn       string   `yaml:"key_column"`
	Projection      []string `yaml:"projection"`
	Placeholder     string   `yaml:"placeholder"`
	NotFoundMessage string   `yaml:"not_found_message"`
}

// ServerConfig configures `fundlookup serve`.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "fundlookup",
		Version: "0.3.0",

		Dataset: DatasetConfig{
			Source:       "funds.csv",
			Delimiter:    ",",
			FetchTimeout: "30s",
		},

		Lookup: LookupConfig{
			KeyColumn:       "ISIN No",
			Projection:      []string{"Parent Fund", "Sub Fund Name"},
			Placeholder:     "N/A",
			NotFoundMessage: "No fund found",
		},

		UI: *DefaultUIConfig(),

		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  "10s",
			WriteTimeout: "10s",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "file",
			Dir:    filepath.Join(".fundlookup", "logs"),
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if src := os.Getenv("FUNDLOOKUP_SOURCE"); src != "" {
		c.Dataset.Source = src
	}
	if col := os.Getenv("FUNDLOOKUP_KEY_COLUMN"); col != "" {
		c.Lookup.KeyColumn = col
	}
	if addr := os.Getenv("FUNDLOOKUP_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if lvl := os.Getenv("FUNDLOOKUP_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if os.Getenv("FUNDLOOKUP_DARK_MODE") == "1" {
		c.UI.Theme = "dark"
	}
}

// GetFetchTimeout returns the dataset fetch timeout as a duration.
func (c *Config) GetFetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Dataset.FetchTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetReadTimeout returns the HTTP server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ReadTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetWriteTimeout returns the HTTP server write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.WriteTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// DelimiterRune returns the configured delimiter, falling back to a comma.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Dataset.Delimiter {
		return r
	}
	return ','
}

// ValidThemes lists the supported terminal themes.
var ValidThemes = []string{"light", "dark", "auto"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Dataset.Source == "" {
		return fmt.Errorf("dataset source not configured (set dataset.source or FUNDLOOKUP_SOURCE)")
	}
	if err := validateDelimiter(c.Dataset.Delimiter); err != nil {
		return err
	}
	if c.Lookup.KeyColumn == "" {
		return fmt.Errorf("lookup key column not configured")
	}
	if len(c.Lookup.Projection) == 0 {
		return fmt.Errorf("lookup projection must name at least one column")
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return fmt.Errorf("invalid theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}

	return nil
}

// validateDelimiter applies the encoding/csv rules for a field delimiter.
// An empty delimiter means the default comma.
func validateDelimiter(d string) error {
	if d == "" {
		return nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return fmt.Errorf("invalid delimiter %q: must be a single character", d)
	}
	r, _ := utf8.DecodeRuneInString(d)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError || !utf8.ValidRune(r) {
		return fmt.Errorf("invalid delimiter %q: quote, CR, LF and invalid characters are not allowed", d)
	}
	return nil
}
