// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package vcapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/opsforge-io/vcenter-cert-rotate/src/internal/helper/gc"
)

const (
	// basePath is the fixed prefix of the certificate-management REST API.
	basePath = "/rest"

	// sessionHeader carries the opaque session token on every call after login.
	sessionHeader = "vmware-api-session-id"
)

// APIError reports a non-success response from the remote API. The response
// body is carried verbatim so the operator sees exactly what the endpoint
// said.
type APIError struct {
	Op         string // which operation failed: login, import trusted root, ...
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("vcapi: %s failed: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("vcapi: %s failed: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Config holds the settings for a Client.
type Config struct {
	// Host is the management endpoint, host or host:port, without scheme.
	Host string

	// Insecure disables TLS verification on the initial connection. Needed
	// when rotating away from an expired or untrusted certificate; marked
	// insecure on the CLI surface.
	Insecure bool

	// Timeout bounds each individual API call. Zero means 30 seconds.
	Timeout time.Duration

	// Version is the application version used for the User-Agent header.
	Version string
}

// Client talks to the certificate-management REST API of a single host.
// It performs no retries: every non-2xx response is surfaced immediately
// as an [*APIError].
type Client struct {
	baseURL  string
	insecure bool
	version  string
	http     *http.Client
}

// New creates a Client for the configured host.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.Insecure},
	}

	return &Client{
		baseURL:  "https://" + cfg.Host + basePath,
		insecure: cfg.Insecure,
		version:  cfg.Version,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// Insecure reports whether TLS verification is disabled for this client.
func (c *Client) Insecure() bool { return c.insecure }

// do issues one API call and returns the status code and response body.
// A nil body sends no payload; otherwise body is marshaled as JSON.
// Transport failures are returned as errors; non-2xx statuses are the
// caller's to map into an [*APIError], since only the caller knows the
// operation name.
func (c *Client) do(ctx context.Context, method, path, token string, body any, modify func(*http.Request)) (int, []byte, error) {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("vcapi: marshal request body: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return 0, nil, fmt.Errorf("vcapi: build request: %w", err)
	}

	req.Header.Set("User-Agent", fmt.Sprintf("vcenter-cert-rotate/%s", c.version))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(sessionHeader, token)
	}
	if modify != nil {
		modify(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("vcapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	// Get a buffer from the pool
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("vcapi: read response body: %w", err)
	}

	return resp.StatusCode, append([]byte(nil), buf.Bytes()...), nil
}

// success reports whether an HTTP status code counts as a successful call.
func success(status int) bool {
	return status >= 200 && status < 300
}
