// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	x509certs "github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/certs"
	x509chain "github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/chain"
)

// readInput resolves a tool argument that may be a file path or
// base64-encoded data.
func readInput(input string) ([]byte, error) {
	if fileData, err := os.ReadFile(input); err == nil {
		return fileData, nil
	}
	if decoded, err := base64.StdEncoding.DecodeString(input); err == nil {
		return decoded, nil
	}
	return nil, fmt.Errorf("not a valid file path or base64 data")
}

// resolveChain assembles the chain described by the common leaf /
// intermediates / ca_bundle arguments shared by every tool.
func resolveChain(ctx context.Context, request mcp.CallToolRequest, config *Config) (*x509chain.Chain, error) {
	leafInput, err := request.RequireString("leaf")
	if err != nil {
		return nil, fmt.Errorf("leaf parameter required: %w", err)
	}

	leafData, err := readInput(leafInput)
	if err != nil {
		return nil, fmt.Errorf("failed to read leaf certificate: %w", err)
	}

	decoder := x509certs.New()
	leaf, err := decoder.Decode(leafData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode leaf certificate: %w", err)
	}

	var intermediates []byte
	if input := request.GetString("intermediates", ""); input != "" {
		if intermediates, err = readInput(input); err != nil {
			return nil, fmt.Errorf("failed to read intermediates: %w", err)
		}
	}
	supplied, err := decoder.DecodeMultiple(intermediates)
	if err != nil {
		return nil, fmt.Errorf("failed to decode intermediates: %w", err)
	}

	var bundle *x509chain.Bundle
	bundlePath := request.GetString("ca_bundle", config.Defaults.CABundle)
	if bundlePath != "" {
		if bundle, err = x509chain.LoadBundle(bundlePath); err != nil {
			return nil, err
		}
	} else if bundle, err = x509chain.LoadSystemBundle(); err != nil {
		// A missing system bundle only matters when the chain needs it.
		bundle = nil
	}

	chain := x509chain.New(leaf, GetVersion())
	chain.AIAFallback = request.GetBool("fetch_missing", false)
	chain.HTTPConfig.Timeout = time.Duration(config.Defaults.Timeout) * time.Second

	if err := chain.Resolve(ctx, supplied, bundle); err != nil {
		return nil, err
	}
	return chain, nil
}

// handleBuildCertChain assembles a trust chain and returns it as PEM or JSON.
func handleBuildCertChain(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error) {
	chain, err := resolveChain(ctx, request, config)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var output string
	switch request.GetString("format", "pem") {
	case "json":
		data, err := chain.ToJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode chain: %v", err)), nil
		}
		output = string(data)
	default: // pem
		output = string(chain.EncodeMultiplePEM(chain.Certs))
	}

	var info strings.Builder
	info.WriteString("Certificate chain assembled successfully:\n")
	for i, c := range chain.Certs {
		fmt.Fprintf(&info, "%d: %s\n", i+1, c.Subject.CommonName)
	}
	fmt.Fprintf(&info, "\nTotal: %d certificate(s)\n\n", len(chain.Certs))
	info.WriteString(output)

	return mcp.NewToolResultText(info.String()), nil
}

// handleInspectCertChain renders an assembled chain as a table or tree.
func handleInspectCertChain(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error) {
	chain, err := resolveChain(ctx, request, config)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch request.GetString("style", "table") {
	case "tree":
		return mcp.NewToolResultText(chain.RenderASCIITree()), nil
	default:
		return mcp.NewToolResultText(chain.RenderTable()), nil
	}
}

// handlePlanRotation describes the API sequence a rotation run would drive
// for the assembled chain, without contacting any endpoint.
func handlePlanRotation(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error) {
	chain, err := resolveChain(ctx, request, config)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	host := request.GetString("host", "<endpoint>")

	var plan strings.Builder
	fmt.Fprintf(&plan, "Rotation plan for %s:\n", host)
	plan.WriteString("1. login (basic auth, session token issued)\n")
	step := 2
	for _, anchor := range chain.TrustAnchors() {
		fmt.Fprintf(&plan, "%d. import trusted root %q\n", step, anchor.Subject.CommonName)
		step++
	}
	fmt.Fprintf(&plan, "%d. install TLS identity %q with %d-certificate trust chain\n",
		step, chain.Leaf().Subject.CommonName, len(chain.TrustAnchors()))
	fmt.Fprintf(&plan, "%d. logout (attempted on every exit path)\n", step+1)

	return mcp.NewToolResultText(plan.String()), nil
}
