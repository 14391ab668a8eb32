// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config represents the MCP server configuration structure.
//
// The configuration can be loaded from a JSON or YAML file specified by the
// VCERT_MCP_CONFIG_FILE environment variable, with defaults applied for any
// missing values. Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Defaults: Default settings for chain inspection operations
	Defaults struct {
		// CABundle: Trust bundle consulted when a chain needs completion.
		// Empty means the system bundle.
		CABundle string `json:"caBundle,omitempty" yaml:"caBundle,omitempty"`
		// Timeout: Default timeout in seconds for AIA fetches
		Timeout int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	} `json:"defaults" yaml:"defaults"`
}

// detectConfigFormat determines the configuration file format based on file
// extension, case-insensitively.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// defaultConfig returns the configuration used when no file is supplied.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Defaults.Timeout = 10
	return cfg
}

// loadConfig loads the server configuration from configPath, falling back to
// defaults when the path is empty.
func loadConfig(configPath string) (*Config, error) {
	cfg := defaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}

	switch detectConfigFormat(configPath) {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}

	if cfg.Defaults.Timeout <= 0 {
		cfg.Defaults.Timeout = 10
	}
	return cfg, nil
}
