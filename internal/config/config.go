package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`

	// Watch settings
	LogPath      string        `mapstructure:"log_path"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Headless     bool          `mapstructure:"headless"`
	MetricsAddr  string        `mapstructure:"metrics_addr"`

	Actuator ActuatorConfig `mapstructure:"actuator"`
}

// ActuatorConfig describes the serial link to the indicator
type ActuatorConfig struct {
	Port     string        `mapstructure:"port"`
	BaudRate int           `mapstructure:"baud_rate"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:       "text",
		LogPath:      DefaultLogPath(),
		PollInterval: 100 * time.Millisecond,
		Actuator: ActuatorConfig{
			BaudRate: 115200,
			Timeout:  time.Second,
		},
	}
}

// DefaultLogPath is where the Teams desktop client writes its log:
// <user config dir>/Microsoft/Teams/logs.txt
func DefaultLogPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("Microsoft", "Teams", "logs.txt")
	}
	return filepath.Join(dir, "Microsoft", "Teams", "logs.txt")
}

// Load loads configuration from files and environment
// Config file search order (highest precedence first):
// 1. ./.deskbell.yaml or ./.deskbell.yml
// 2. ~/.deskbell.yaml or ~/.deskbell.yml
// 3. $XDG_CONFIG_HOME/deskbell/config.yaml (or ~/.config/deskbell/config.yaml)
// 4. /etc/deskbell/config.yaml
func Load() (*Config, error) {
	cfg := Default()

	configFile := findConfigFile()
	if configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".deskbell.yaml", ".deskbell.yml", "deskbell.yaml", "deskbell.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string

	// 1. Current directory
	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}

	// 2. Home directory
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}

	// 3. Config directory (e.g., ~/.config/deskbell/)
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "deskbell"))
	}

	// 4. System config
	searchPaths = append(searchPaths, "/etc/deskbell")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DESKBELL_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("DESKBELL_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("DESKBELL_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("DESKBELL_PORT"); v != "" {
		cfg.Actuator.Port = v
	}
	if v := os.Getenv("DESKBELL_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.LogPath = ExpandHome(cfg.LogPath)

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
