package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "json"
	envPrefix  = "MALPLAN"
)

// Config holds all application configuration
type Config struct {
	User    string        `mapstructure:"user"`
	Store   StoreConfig   `mapstructure:"store"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Browser BrowserConfig `mapstructure:"browser"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StoreConfig holds local persistence configuration
type StoreConfig struct {
	Backend string `mapstructure:"backend"` // json or bolt
	Dir     string `mapstructure:"dir"`     // cache + ledger directory
}

// HTTPConfig holds remote list client configuration
type HTTPConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"` // 0 disables pacing
}

// BrowserConfig selects the program item pages are opened with
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // empty for the system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// configKeys lists every key that may be overridden from the environment
var configKeys = []string{
	"user",
	"store.backend",
	"store.dir",
	"http.base_url",
	"http.timeout",
	"http.rate_per_second",
	"browser.command",
	"logging.file",
	"logging.level",
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: "json",
			Dir:     defaultDataPath(),
		},
		HTTP: HTTPConfig{
			BaseURL:       "https://myanimelist.net",
			Timeout:       30 * time.Second,
			RatePerSecond: 2,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "malplan.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default cache/ledger directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "malplan")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "malplan")
	}
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "malplan")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "malplan")
	}
}

// Loader reads and writes the config file in a single directory
type Loader struct {
	dir string
	v   *viper.Viper
}

// NewLoader creates a loader for configDir. An empty dir uses DefaultConfigPath.
func NewLoader(configDir string) *Loader {
	if configDir == "" {
		configDir = DefaultConfigPath()
	}
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return &Loader{dir: configDir, v: v}
}

// File returns the path of the config file
func (l *Loader) File() string {
	return filepath.Join(l.dir, configName+"."+configType)
}

// Load builds the configuration from defaults, the config file and the
// environment (MALPLAN_*, optionally seeded from a .env file next to the config).
// With skipFile the config file is not read. Read problems never fail the load;
// they are returned as warnings and the defaults are kept.
func (l *Loader) Load(skipFile bool) (*Config, []error) {
	cfg := DefaultConfig()
	var warnings []error

	if err := godotenv.Load(filepath.Join(l.dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		warnings = append(warnings, fmt.Errorf("error reading .env file: %w", err))
	}

	for _, key := range configKeys {
		_ = l.v.BindEnv(key)
	}

	if !skipFile {
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				warnings = append(warnings, fmt.Errorf("error reading config file: %w", err))
			}
			// Config file not found is OK, use defaults
		}
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		warnings = append(warnings, fmt.Errorf("error parsing config: %w", err))
		return DefaultConfig(), warnings
	}

	return cfg, warnings
}

// SaveUser stores user in the config file, keeping any other keys the file had.
// The file is re-read on its own, so environment overrides and a skipped
// load never leak into what is written.
func (l *Loader) SaveUser(user string) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(l.File())
	v.SetConfigType(configType)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	v.Set("user", user)

	if err := v.WriteConfigAs(l.File()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
