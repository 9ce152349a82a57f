package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultPackagerScript is the launcher shipped with react-native, relative
// to the project root
const DefaultPackagerScript = "node_modules/react-native/scripts/launchPackager.command"

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	Project   ProjectConfig   `mapstructure:"project"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Packager  PackagerConfig  `mapstructure:"packager"`
	Terminal  TerminalConfig  `mapstructure:"terminal"`
}

// ProjectConfig locates and builds the Xcode project
type ProjectConfig struct {
	Path          string `mapstructure:"path"`
	Scheme        string `mapstructure:"scheme"`
	Configuration string `mapstructure:"configuration"`
	PlistReader   string `mapstructure:"plist_reader"`
}

// SimulatorConfig selects and boots the simulator
type SimulatorConfig struct {
	Name       string `mapstructure:"name"`
	ListFormat string `mapstructure:"list_format"`
	BootWith   string `mapstructure:"boot_with"`
}

// PackagerConfig describes the development server
type PackagerConfig struct {
	Port     int    `mapstructure:"port"`
	Script   string `mapstructure:"script"`
	Disabled bool   `mapstructure:"disabled"`
	Wait     string `mapstructure:"wait"`
}

// TerminalConfig picks the window the packager is opened in
type TerminalConfig struct {
	App        string `mapstructure:"app"`
	PreferTmux bool   `mapstructure:"prefer_tmux"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format: "text",
		Project: ProjectConfig{
			Path:          "ios",
			Configuration: "Debug",
			PlistReader:   "auto",
		},
		Simulator: SimulatorConfig{
			Name:       "iPhone 6",
			ListFormat: "text",
			BootWith:   "instruments",
		},
		Packager: PackagerConfig{
			Port:   8081,
			Script: DefaultPackagerScript,
		},
	}
}

// Load loads configuration from files and environment.
// A .env file in the working directory is loaded first; variables already
// set in the environment win over it.
// Config file search order (highest precedence first):
// 1. ./.runios.yaml or ./.runios.yml
// 2. ~/.runios.yaml or ~/.runios.yml
// 3. $XDG_CONFIG_HOME/runios/config.yaml (or ~/.config/runios/config.yaml)
// 4. /etc/runios/config.yaml
func Load() (*Config, error) {
	if _, err := LoadDotEnv("."); err != nil {
		return nil, err
	}

	cfg := Default()
	if configFile := findConfigFile(); configFile != "" {
		loaded, err := LoadFromFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadDotEnv loads dir/.env into the process environment without
// overriding variables that are already set. It returns the loaded path, or
// "" when there is no .env file.
func LoadDotEnv(dir string) (string, error) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err := godotenv.Load(path); err != nil {
		return "", err
	}
	return path, nil
}

// findConfigFile searches for config file in standard locations
func findConfigFile() string {
	names := []string{".runios.yaml", ".runios.yml"}

	home, homeErr := os.UserHomeDir()
	configDir, configDirErr := os.UserConfigDir()

	var searchPaths []string

	if cwd, err := os.Getwd(); err == nil {
		searchPaths = append(searchPaths, cwd)
	}
	if homeErr == nil {
		searchPaths = append(searchPaths, home)
	}
	if configDirErr == nil {
		searchPaths = append(searchPaths, filepath.Join(configDir, "runios"))
	}
	searchPaths = append(searchPaths, "/etc/runios")

	for _, dir := range searchPaths {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		// Also check for config.yaml in subdirs
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RUNIOS_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("RUNIOS_QUIET"); v == "true" || v == "1" {
		cfg.Quiet = true
	}
	if v := os.Getenv("RUNIOS_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("RUNIOS_SIMULATOR"); v != "" {
		cfg.Simulator.Name = v
	}
	if v := os.Getenv("RUNIOS_SCHEME"); v != "" {
		cfg.Project.Scheme = v
	}
	if v := os.Getenv("RUNIOS_PROJECT_PATH"); v != "" {
		cfg.Project.Path = v
	}
	if v := os.Getenv("RUNIOS_CONFIGURATION"); v != "" {
		cfg.Project.Configuration = v
	}
	if v := os.Getenv("RCT_METRO_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Packager.Port = port
		}
	}
	if v := os.Getenv("REACT_TERMINAL"); v != "" {
		cfg.Terminal.App = v
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

	return cfg, nil
}

// ConfigFile returns the path to the config file that would be loaded
func ConfigFile() string {
	return findConfigFile()
}
