/*
Package config manages the TOML config of hprompt: the start URL, completion
limits, the IPC server, the interactive shell and extra header values.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/hprompt/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Session      SessionConfig       `toml:"session"`
	Completer    CompleterConfig     `toml:"completer"`
	Server       ServerConfig        `toml:"server"`
	CLI          CliConfig           `toml:"cli"`
	HeaderValues map[string][]string `toml:"header_values"`
}

// SessionConfig sets where a session starts.
type SessionConfig struct {
	URL string `toml:"url"`
	// Spec is an OpenAPI document used to seed the URL tree.
	Spec string `toml:"spec"`
}

// CompleterConfig has completion options.
type CompleterConfig struct {
	MaxSuggestions int `toml:"max_suggestions"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxText int `toml:"max_text"`
}

// CliConfig holds interactive shell options.
type CliConfig struct {
	Highlight  bool   `toml:"highlight"`
	Style      string `toml:"style"`
	MenuHeight int    `toml:"menu_height"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/ (or the platform equivalent)
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	return utils.ResolveConfigDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, utils.ConfigFileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/hprompt/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			URL: "http://localhost:8000",
		},
		Completer: CompleterConfig{
			MaxSuggestions: 24,
		},
		Server: ServerConfig{
			MaxText: 4096,
		},
		CLI: CliConfig{
			Highlight:  true,
			Style:      "monokai",
			MenuHeight: 8,
		},
		HeaderValues: map[string][]string{},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureParentDir(configPath); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every value that still has the right type and
// falls back to defaults for the rest
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "session"); ok {
		extractSessionConfig(section, &config.Session)
	}
	if section, ok := utils.ExtractSection(tempConfig, "completer"); ok {
		if val, ok := utils.ExtractInt64(section, "max_suggestions"); ok {
			config.Completer.MaxSuggestions = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		if val, ok := utils.ExtractInt64(section, "max_text"); ok {
			config.Server.MaxText = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(tempConfig, "header_values"); ok {
		for name := range section {
			if values, ok := utils.ExtractStringSlice(section, name); ok {
				config.HeaderValues[name] = values
			}
		}
	}
	return config, nil
}

func extractSessionConfig(data map[string]any, session *SessionConfig) {
	if val, ok := utils.ExtractString(data, "url"); ok {
		session.URL = val
	}
	if val, ok := utils.ExtractString(data, "spec"); ok {
		session.Spec = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractBool(data, "highlight"); ok {
		cli.Highlight = val
	}
	if val, ok := utils.ExtractString(data, "style"); ok {
		cli.Style = val
	}
	if val, ok := utils.ExtractInt64(data, "menu_height"); ok {
		cli.MenuHeight = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	return defaultPath, utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the config values and saves to file. Nil arguments are left as is.
func (c *Config) Update(configPath string, url *string, maxSuggestions *int, style *string) error {
	if url != nil {
		c.Session.URL = *url
	}
	if maxSuggestions != nil {
		c.Completer.MaxSuggestions = *maxSuggestions
	}
	if style != nil {
		c.CLI.Style = *style
	}
	return SaveConfig(c, configPath)
}
