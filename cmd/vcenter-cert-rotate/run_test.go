// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"testing"

	verpkg "github.com/opsforge-io/vcenter-cert-rotate/src/version"
)

func TestVersionInit(t *testing.T) {
	// Test that version is initialized
	if version == "" {
		t.Error("version should not be empty after init")
	}

	if version != verpkg.Version {
		// If they differ, it means version was set by ldflags, which is also valid
		t.Logf("version set by ldflags: %s (package version: %s)", version, verpkg.Version)
	}
}
