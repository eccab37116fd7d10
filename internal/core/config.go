// Package core holds client configuration and filesystem paths.
package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Environment names a backend the client can point at.
type Environment string

const (
	EnvLocal      Environment = "local"
	EnvProduction Environment = "production"
)

var environmentURLs = map[Environment]string{
	EnvLocal:      "http://localhost:3000",
	EnvProduction: "https://app-cultural-606100971917.southamerica-east1.run.app",
}

// GlobalConfig is the client's persisted configuration.
type GlobalConfig struct {
	Version     int         `json:"version"`
	Environment Environment `json:"environment"`
	BaseURL     string      `json:"base_url,omitempty"`
}

// DefaultConfig returns the configuration used before the user changes
// anything.
func DefaultConfig() GlobalConfig {
	return GlobalConfig{Version: 1, Environment: EnvProduction}
}

// ResolveBaseURL picks the backend URL: an explicit override wins, otherwise
// the URL for the selected environment.
func (c GlobalConfig) ResolveBaseURL() (string, error) {
	if c.BaseURL != "" {
		return c.BaseURL, nil
	}
	url, ok := environmentURLs[c.Environment]
	if !ok {
		return "", fmt.Errorf("unknown environment: %s", c.Environment)
	}
	return url, nil
}

// KnownEnvironments lists the selectable environments.
func KnownEnvironments() []Environment {
	return []Environment{EnvLocal, EnvProduction}
}

func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mq", "mq-config.json"), nil
}

func ensureConfigDir() (string, error) {
	path, err := globalConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// ReadGlobalConfig reads the config file, falling back to defaults when it
// does not exist yet.
func ReadGlobalConfig() (GlobalConfig, error) {
	path, err := globalConfigPath()
	if err != nil {
		return GlobalConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return GlobalConfig{}, err
	}
	var config GlobalConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return GlobalConfig{}, err
	}
	if config.Version == 0 {
		config.Version = 1
	}
	if config.Environment == "" {
		config.Environment = EnvProduction
	}
	return config, nil
}

// WriteGlobalConfig writes the config to disk.
func WriteGlobalConfig(config GlobalConfig) error {
	path, err := ensureConfigDir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// DataDir resolves the directory holding the device key-value store,
// honoring XDG_DATA_HOME.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mq"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "mq"), nil
}
