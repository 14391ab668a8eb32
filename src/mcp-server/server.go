// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/opsforge-io/vcenter-cert-rotate/src/version"
)

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server.
func GetVersion() string {
	return appVersion
}

// buildServer assembles the MCP server with every tool registered against
// the given configuration.
func buildServer(ver string, config *Config) *server.MCPServer {
	s := server.NewMCPServer(
		"vcenter-cert-rotate",
		ver,
		server.WithToolCapabilities(true),
	)

	for _, def := range createTools() {
		handler := def.Handler
		s.AddTool(def.Tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler(ctx, request, config)
		})
	}

	return s
}

// Run starts the MCP server exposing chain-inspection and rotation-planning
// tools over stdio. No tool contacts a live endpoint: the server is a safe
// read-only companion to the rotation CLI.
//
// Configuration is loaded from the file named by the VCERT_MCP_CONFIG_FILE
// environment variable, with defaults applied when unset. The server shuts
// down on SIGINT/SIGTERM.
func Run(ver string) error {
	// Set the version for GetVersion
	appVersion = ver

	config, err := loadConfig(os.Getenv("VCERT_MCP_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	s := buildServer(ver, config)

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- server.ServeStdio(s)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
