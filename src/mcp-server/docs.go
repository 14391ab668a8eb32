// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes the chain-assembly core over the Model Context
// Protocol: building and inspecting trust chains and describing the API
// sequence a rotation run would drive. All tools are read-only; rotating a
// certificate always requires the CLI.
package mcpserver
