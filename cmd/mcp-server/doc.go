// Copyright (c) 2026 OpsForge Labs All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// vcert-mcp-server is a Model Context Protocol (MCP) server that exposes
// trust-chain inspection and rotation planning to AI assistants and
// automation clients over stdio.
//
// Every tool is read-only: the server never opens a session against a live
// endpoint, so a connected client can inspect and plan a certificate
// rotation but never perform one. Rotation itself always goes through the
// vcenter-cert-rotate CLI.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/opsforge-io/vcenter-cert-rotate/cmd/mcp-server@latest
//
// # Environment Variables
//
//	VCERT_MCP_CONFIG_FILE  Path to a JSON or YAML configuration file (optional)
//
// # MCP Tools
//
//   - build_cert_chain: Assemble an ordered trust chain from a leaf and
//     supplied intermediates, completing it from a CA bundle when needed
//   - inspect_cert_chain: Render an assembled chain as a markdown table or
//     ASCII tree
//   - plan_rotation: Describe the API sequence a rotation run would drive,
//     without contacting any endpoint
//
// # Configuration
//
// The optional configuration file sets defaults for chain assembly:
//
//	defaults:
//	  caBundle: /etc/ssl/certs/ca-certificates.crt
//	  timeoutSeconds: 10
//
// The server shuts down cleanly on SIGINT or SIGTERM.
package main
