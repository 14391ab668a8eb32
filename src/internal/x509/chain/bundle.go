// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"fmt"
	"os"

	"github.com/opsforge-io/vcenter-cert-rotate/src/internal/helper/gc"
	x509certs "github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/certs"
)

// bundlePaths are well-known locations of the system CA bundle, probed in
// order when no explicit bundle path is configured. Mirrors the lists used
// by the Go runtime for root pools.
var bundlePaths = []string{
	"/etc/ssl/certs/ca-certificates.crt", // Debian/Ubuntu
	"/etc/pki/tls/certs/ca-bundle.crt",   // RHEL/Fedora
	"/etc/ssl/ca-bundle.pem",             // SUSE
	"/etc/ssl/cert.pem",                  // Alpine, macOS
}

// Bundle is a read-only set of trusted CA certificates loaded from a
// concatenated PEM file, indexed by raw subject for issuer lookups.
type Bundle struct {
	Path string

	bySubject map[string]*x509.Certificate
}

// LoadBundle reads a concatenated PEM bundle from path. Non-certificate PEM
// blocks and unparsable entries are skipped. An empty bundle is an error:
// a fallback store with nothing in it can never complete a chain.
func LoadBundle(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("x509chain: open trust bundle: %w", err)
	}
	defer f.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("x509chain: read trust bundle %s: %w", path, err)
	}

	certs := x509certs.New().DecodeBundle(buf.Bytes())
	if len(certs) == 0 {
		return nil, fmt.Errorf("x509chain: trust bundle %s contains no certificates", path)
	}

	b := &Bundle{
		Path:      path,
		bySubject: make(map[string]*x509.Certificate, len(certs)),
	}
	for _, cert := range certs {
		// First entry wins on duplicate subjects, matching file order.
		if _, ok := b.bySubject[string(cert.RawSubject)]; !ok {
			b.bySubject[string(cert.RawSubject)] = cert
		}
	}

	return b, nil
}

// LoadSystemBundle loads the first system CA bundle found among the
// well-known locations.
func LoadSystemBundle() (*Bundle, error) {
	for _, path := range bundlePaths {
		if _, err := os.Stat(path); err == nil {
			return LoadBundle(path)
		}
	}
	return nil, fmt.Errorf("x509chain: no system trust bundle found (tried %d locations)", len(bundlePaths))
}

// FindIssuer returns the bundle certificate whose subject matches cert's
// issuer, or nil when the bundle holds no such certificate.
func (b *Bundle) FindIssuer(cert *x509.Certificate) *x509.Certificate {
	return b.bySubject[string(cert.RawIssuer)]
}

// Len returns the number of distinct subjects in the bundle.
func (b *Bundle) Len() int { return len(b.bySubject) }
