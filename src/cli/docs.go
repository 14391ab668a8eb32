// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli implements the command-line surface of vcenter-cert-rotate.
// It owns all file and credential reading and hands raw PEM bytes and
// credential strings to the rotation core.
package cli
