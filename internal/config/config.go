package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for dutyrep, stored in
// ~/.dutyrep/config.yaml.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Report  ReportConfig  `yaml:"report"`
	Import  ImportConfig  `yaml:"import"`
	Outlook OutlookConfig `yaml:"outlook"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "console" or "json".
	Format string `yaml:"format"`
}

// ReportConfig selects the category-specific views of reports.
type ReportConfig struct {
	HighlightCategory string `yaml:"highlight_category"`
	PersonnelCategory string `yaml:"personnel_category"`
	PersonnelPrefix   string `yaml:"personnel_prefix"`
}

// ImportConfig holds import task settings.
type ImportConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	SimulatedDelay time.Duration `yaml:"simulated_delay"`
	SimulatedCount int           `yaml:"simulated_count"`
	// Parallel bounds concurrent file imports. 0 means unbounded.
	Parallel int `yaml:"parallel"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar import settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `yaml:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `yaml:"client_id"`
	// Category is assigned to imported events whose subject names no known category.
	Category string `yaml:"category"`
	// Timezone is the IANA timezone for event times (e.g. "America/Sao_Paulo"). Empty = UTC.
	Timezone string `yaml:"timezone"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant.
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID. It supports
	// device code flow without a client secret.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultOutlookCategory is used for events that match no known category.
	DefaultOutlookCategory = "Serviço Interno"
)

// HomeEnv overrides the base directory when set.
const HomeEnv = "DUTYREP_HOME"

// Default returns a Config pre-filled with built-in defaults.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "warn", Format: "console"},
		Report: ReportConfig{
			HighlightCategory: "Sentinela",
			PersonnelCategory: "Escala Alunos",
			PersonnelPrefix:   "AL SD ",
		},
		Import: ImportConfig{
			Timeout:        30 * time.Second,
			SimulatedDelay: 1500 * time.Millisecond,
			SimulatedCount: 5,
			Parallel:       4,
		},
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
			Category: DefaultOutlookCategory,
		},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `# dutyrep configuration - ~/.dutyrep/config.yaml
#
# All settings are optional; the defaults below work out of the box.

# Diagnostics written to stderr.
log:
  # debug, info, warn or error
  level: warn
  # console or json
  format: console

# Category-specific report views.
report:
  # Category whose hour total is shown next to the summary counters.
  highlight_category: Sentinela
  # Category broken down per person, and the rank prefix trimmed from names.
  personnel_category: Escala Alunos
  personnel_prefix: "AL SD "

# Background imports.
import:
  # Upper bound for one import (file read, calendar fetch).
  timeout: 30s
  # Delay and record count of "dutyrep import --simulate".
  simulated_delay: 1.5s
  simulated_count: 5
  # Concurrent file imports; 0 = unbounded.
  parallel: 4

# Microsoft Graph / Outlook calendar import.
outlook:
  # "common" for personal and multi-tenant accounts, or your tenant GUID.
  tenant_id: common
  # Public Azure CLI app; replace with your own app registration if needed.
  client_id: 04b07795-8542-4c4a-95af-30b2c573d5ab
  # Category for events whose subject names no known category.
  category: Serviço Interno
  # IANA timezone for event times, e.g. America/Sao_Paulo. Empty = UTC.
  timezone: ""
`

// BaseDir returns the root data directory, ~/.dutyrep unless DUTYREP_HOME
// is set.
func BaseDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".dutyrep"), nil
}

// FilePath returns the path to config.yaml.
func FilePath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads config.yaml, creating it with annotated defaults on first run.
// Fields missing from the file keep their defaults.
func Load() (Config, error) {
	path, err := FilePath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	// Decoding over the defaults leaves absent keys untouched.
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	if cfg.Import.Timeout <= 0 {
		cfg.Import.Timeout = Default().Import.Timeout
	}
	if cfg.Import.SimulatedCount < 0 {
		cfg.Import.SimulatedCount = 0
	}
	if cfg.Import.Parallel < 0 {
		cfg.Import.Parallel = 0
	}
	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = DefaultTenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = DefaultClientID
	}
	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
