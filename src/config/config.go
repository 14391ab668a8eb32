// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCredential indicates a credential file that does not hold a
// single username:password line.
var ErrInvalidCredential = errors.New("config: credential file must contain username:password on one line")

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// File is the optional configuration file of the rotation tool. Every field
// has a matching CLI flag; flags win over file values. Credentials are never
// stored here, only the path to the credential file.
type File struct {
	Host         string `json:"host" yaml:"host"`
	Credentials  string `json:"credentials" yaml:"credentials"`
	Cert         string `json:"cert" yaml:"cert"`
	Key          string `json:"key" yaml:"key"`
	Chain        string `json:"chain,omitempty" yaml:"chain,omitempty"`
	CABundle     string `json:"caBundle,omitempty" yaml:"caBundle,omitempty"`
	Insecure     bool   `json:"insecure,omitempty" yaml:"insecure,omitempty"`
	FetchMissing bool   `json:"fetchMissing,omitempty" yaml:"fetchMissing,omitempty"`
	// TimeoutSeconds bounds each API call. Zero keeps the client default.
	TimeoutSeconds int    `json:"timeoutSeconds,omitempty" yaml:"timeoutSeconds,omitempty"`
	LogFile        string `json:"logFile,omitempty" yaml:"logFile,omitempty"`
}

// detectConfigFormat determines the configuration file format based on file
// extension, case-insensitively. Anything that is not .yaml/.yml is treated
// as JSON.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// Load reads and decodes a configuration file in YAML or JSON format.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg File
	switch detectConfigFormat(path) {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	return &cfg, nil
}

// Credential is a username/password pair for the management endpoint.
type Credential struct {
	Username string
	Password string
}

// LoadCredential reads a credential file holding `username:password` on its
// first line. The password may itself contain colons; only the first colon
// splits.
func LoadCredential(path string) (*Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read credential file: %w", err)
	}

	line, _, _ := strings.Cut(strings.TrimLeft(string(data), "\r\n"), "\n")
	line = strings.TrimRight(line, "\r")

	username, password, found := strings.Cut(line, ":")
	if !found || username == "" || password == "" {
		return nil, ErrInvalidCredential
	}

	return &Credential{Username: username, Password: password}, nil
}
