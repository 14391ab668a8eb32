// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/mark3labs/mcp-go/server"

	"github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/certtest"
)

func TestMCPTools(t *testing.T) {
	config, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	root := certtest.SelfSigned(t, "MCP Root CA")
	inter := certtest.IssueCA(t, "MCP Intermediate CA", root)
	leaf := certtest.IssueLeaf(t, "mcp.example.com", inter)

	leafB64 := base64.StdEncoding.EncodeToString(certtest.CertPEM(t, leaf.Cert))
	chainB64 := base64.StdEncoding.EncodeToString(certtest.ChainPEM(t, inter.Cert, root.Cert))

	bundlePath := filepath.Join(t.TempDir(), "bundle.pem")
	if err := os.WriteFile(bundlePath, certtest.CertPEM(t, root.Cert), 0o600); err != nil {
		t.Fatal(err)
	}

	// Create test server
	srv := mcptest.NewUnstartedServer(t)

	var tools []server.ServerTool
	for _, def := range createTools() {
		handler := def.Handler
		tools = append(tools, server.ServerTool{
			Tool: def.Tool,
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handler(ctx, request, config)
			},
		})
	}
	srv.AddTools(tools...)

	if err := srv.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	client := srv.Client()

	tests := []struct {
		name           string
		toolName       string
		args           map[string]interface{}
		expectContains []string
	}{
		{
			name:     "build_cert_chain with base64 data",
			toolName: "build_cert_chain",
			args: map[string]interface{}{
				"leaf":          leafB64,
				"intermediates": chainB64,
				"format":        "pem",
			},
			expectContains: []string{"Certificate chain assembled successfully", "Total: 3 certificate(s)", "BEGIN CERTIFICATE"},
		},
		{
			name:     "build_cert_chain json output",
			toolName: "build_cert_chain",
			args: map[string]interface{}{
				"leaf":          leafB64,
				"intermediates": chainB64,
				"format":        "json",
			},
			expectContains: []string{`"chainLength": 3`, `"role"`},
		},
		{
			name:     "build_cert_chain completes from bundle",
			toolName: "build_cert_chain",
			args: map[string]interface{}{
				"leaf":          leafB64,
				"intermediates": base64.StdEncoding.EncodeToString(certtest.CertPEM(t, inter.Cert)),
				"ca_bundle":     bundlePath,
			},
			expectContains: []string{"Total: 3 certificate(s)", "MCP Root CA"},
		},
		{
			name:     "inspect_cert_chain table",
			toolName: "inspect_cert_chain",
			args: map[string]interface{}{
				"leaf":          leafB64,
				"intermediates": chainB64,
			},
			expectContains: []string{"mcp.example.com", "Root CA Certificate"},
		},
		{
			name:     "inspect_cert_chain tree",
			toolName: "inspect_cert_chain",
			args: map[string]interface{}{
				"leaf":          leafB64,
				"intermediates": chainB64,
				"style":         "tree",
			},
			expectContains: []string{"└── MCP Root CA"},
		},
		{
			name:     "plan_rotation",
			toolName: "plan_rotation",
			args: map[string]interface{}{
				"leaf":          leafB64,
				"intermediates": chainB64,
				"host":          "vcsa.example.com",
			},
			expectContains: []string{
				"Rotation plan for vcsa.example.com",
				"1. login",
				`import trusted root "MCP Intermediate CA"`,
				`import trusted root "MCP Root CA"`,
				"logout (attempted on every exit path)",
			},
		},
		{
			name:     "build_cert_chain broken chain reports error",
			toolName: "build_cert_chain",
			args: map[string]interface{}{
				"leaf":          leafB64,
				"intermediates": base64.StdEncoding.EncodeToString(certtest.CertPEM(t, root.Cert)),
				"ca_bundle":     bundlePath,
			},
			expectContains: []string{"out of order or missing a link"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := mcp.CallToolRequest{
				Params: mcp.CallToolParams{
					Name:      tt.toolName,
					Arguments: tt.args,
				},
			}

			result, err := client.CallTool(context.Background(), req)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if result == nil {
				t.Errorf("expected result but got nil")
				return
			}

			content := ""
			for _, c := range result.Content {
				if tc, ok := c.(mcp.TextContent); ok {
					content += tc.Text
				}
			}

			for _, expected := range tt.expectContains {
				if !strings.Contains(content, expected) {
					t.Errorf("expected result to contain %q, but it didn't. Result: %s", expected, content)
				}
			}
		})
	}
}

func TestReadInput(t *testing.T) {
	leaf := certtest.SelfSigned(t, "read-input")
	pemData := certtest.CertPEM(t, leaf.Cert)

	path := filepath.Join(t.TempDir(), "leaf.pem")
	if err := os.WriteFile(path, pemData, 0o600); err != nil {
		t.Fatal(err)
	}

	fromFile, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput(file) error: %v", err)
	}
	if string(fromFile) != string(pemData) {
		t.Error("file input does not round-trip")
	}

	fromB64, err := readInput(base64.StdEncoding.EncodeToString(pemData))
	if err != nil {
		t.Fatalf("readInput(base64) error: %v", err)
	}
	if string(fromB64) != string(pemData) {
		t.Error("base64 input does not round-trip")
	}

	if _, err := readInput("!!! neither a path nor base64 !!!"); err == nil {
		t.Error("expected error for unusable input")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := loadConfig("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Defaults.Timeout != 10 {
			t.Errorf("expected default timeout 10, got %d", cfg.Defaults.Timeout)
		}
	})

	t.Run("YAML File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mcp.yaml")
		content := "defaults:\n  caBundle: /tmp/bundle.pem\n  timeoutSeconds: 42\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Defaults.CABundle != "/tmp/bundle.pem" {
			t.Errorf("unexpected caBundle: %q", cfg.Defaults.CABundle)
		}
		if cfg.Defaults.Timeout != 42 {
			t.Errorf("unexpected timeout: %d", cfg.Defaults.Timeout)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := loadConfig("/nonexistent/mcp-config.json"); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestRun_InvalidConfig(t *testing.T) {
	os.Setenv("VCERT_MCP_CONFIG_FILE", "/nonexistent/config.json")
	defer os.Unsetenv("VCERT_MCP_CONFIG_FILE")

	err := Run("test-version")
	if err == nil {
		t.Error("expected Run() to return an error with invalid config file")
	}
	if err != nil && !strings.Contains(err.Error(), "failed to load config") {
		t.Errorf("expected config load error, got: %v", err)
	}
}
