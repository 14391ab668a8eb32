// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the optional YAML/JSON configuration file and the
// credential file of vcenter-cert-rotate. Flag values always override file
// values; merging happens in the CLI layer.
package config
