// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/opsforge-io/vcenter-cert-rotate/src/internal/helper/gc"
)

// HTTPConfig holds HTTP client configuration for AIA certificate fetches.
type HTTPConfig struct {
	Timeout   time.Duration // HTTP request timeout
	Version   string        // Application version for User-Agent
	UserAgent string        // Custom User-Agent string, if empty will be constructed from Version

	mu     sync.Mutex
	client *http.Client
}

// NewHTTPConfig creates a new HTTP configuration with a default timeout of
// 10 seconds and the provided application version.
func NewHTTPConfig(version string) *HTTPConfig {
	return &HTTPConfig{
		Timeout:   10 * time.Second,
		Version:   version,
		UserAgent: "",
	}
}

// GetUserAgent returns the User-Agent string, constructing it if not set.
func (c *HTTPConfig) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return fmt.Sprintf("vcenter-cert-rotate/%s (+https://github.com/opsforge-io/vcenter-cert-rotate)", c.Version)
}

// Client returns an HTTP client configured with the current timeout.
//
// Thread Safety: Safe for concurrent use.
func (c *HTTPConfig) Client() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		c.client = &http.Client{Timeout: c.Timeout}
		return c.client
	}

	if c.client.Timeout != c.Timeout {
		c.client.Timeout = c.Timeout
	}

	return c.client
}

// fetchMissing iteratively downloads issuing certificates via the AIA
// (Authority Information Access) extension until the chain reaches a
// self-signed root, the last certificate carries no AIA URL, or the fetched
// certificate does not structurally match the expected issuer. It reports
// whether the chain is complete.
func (ch *Chain) fetchMissing(ctx context.Context) (bool, error) {
	for {
		last := ch.Root()
		if ch.IsSelfSigned(last) {
			return true, nil
		}
		if len(last.IssuingCertificateURL) == 0 {
			return false, nil
		}
		parentURL := last.IssuingCertificateURL[0]

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, parentURL, nil)
		if err != nil {
			return false, err
		}
		req.Header.Set("User-Agent", ch.HTTPConfig.GetUserAgent())

		resp, err := ch.HTTPConfig.Client().Do(req)
		if err != nil {
			return false, err
		}

		// Get a buffer from the pool
		buf := gc.Default.Get()
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			resp.Body.Close()
			buf.Reset()
			gc.Default.Put(buf)
			return false, err
		}
		resp.Body.Close()

		data := append([]byte(nil), buf.Bytes()...)
		buf.Reset()
		gc.Default.Put(buf)

		cert, err := ch.Certificate.Decode(data)
		if err != nil {
			return false, err
		}

		// A fetched certificate that is not the expected issuer ends the
		// fetch; the trust bundle phase decides whether the chain fails.
		if !issuedBy(last, cert) {
			return false, nil
		}

		ch.Certs = append(ch.Certs, cert)
		if ch.IsSelfSigned(cert) {
			return true, nil
		}
	}
}
