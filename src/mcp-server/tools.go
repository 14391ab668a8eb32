// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolHandler defines the signature for tool handlers that matches MCP
// server expectations.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolHandlerWithConfig defines tool handlers that require access to the
// server configuration.
type ToolHandlerWithConfig func(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error)

// ToolDefinition pairs an MCP tool with its configured handler.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithConfig
}

// createTools creates and returns all MCP tool definitions.
//
// The server deliberately exposes inspection and planning only: no tool ever
// opens a session against a live endpoint, so an MCP client can never rotate
// a certificate by accident.
func createTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool("build_cert_chain",
				mcp.WithDescription("Assemble an ordered trust chain from a leaf certificate and supplied intermediates, completing it from a CA bundle when needed"),
				mcp.WithString("leaf",
					mcp.Required(),
					mcp.Description("Leaf certificate file path or base64-encoded certificate data"),
				),
				mcp.WithString("intermediates",
					mcp.Description("Intermediate chain file path or base64-encoded PEM data (optional)"),
				),
				mcp.WithString("ca_bundle",
					mcp.Description("CA bundle file path for chain completion (default: system bundle)"),
				),
				mcp.WithBoolean("fetch_missing",
					mcp.Description("Fetch missing issuers via AIA URLs before falling back to the bundle (default: false)"),
					mcp.DefaultBool(false),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'pem' or 'json' (default: pem)"),
					mcp.DefaultString("pem"),
				),
			),
			Handler: handleBuildCertChain,
		},
		{
			Tool: mcp.NewTool("inspect_cert_chain",
				mcp.WithDescription("Render an assembled trust chain as a markdown table or ASCII tree"),
				mcp.WithString("leaf",
					mcp.Required(),
					mcp.Description("Leaf certificate file path or base64-encoded certificate data"),
				),
				mcp.WithString("intermediates",
					mcp.Description("Intermediate chain file path or base64-encoded PEM data (optional)"),
				),
				mcp.WithString("ca_bundle",
					mcp.Description("CA bundle file path for chain completion (default: system bundle)"),
				),
				mcp.WithString("style",
					mcp.Description("Rendering style: 'table' or 'tree' (default: table)"),
					mcp.DefaultString("table"),
				),
			),
			Handler: handleInspectCertChain,
		},
		{
			Tool: mcp.NewTool("plan_rotation",
				mcp.WithDescription("Describe the rotation a run would perform: trust anchors imported in order, then the TLS identity installed"),
				mcp.WithString("leaf",
					mcp.Required(),
					mcp.Description("Leaf certificate file path or base64-encoded certificate data"),
				),
				mcp.WithString("intermediates",
					mcp.Description("Intermediate chain file path or base64-encoded PEM data (optional)"),
				),
				mcp.WithString("ca_bundle",
					mcp.Description("CA bundle file path for chain completion (default: system bundle)"),
				),
				mcp.WithString("host",
					mcp.Description("Target endpoint, for the plan text only (never contacted)"),
				),
			),
			Handler: handlePlanRotation,
		},
	}
}
