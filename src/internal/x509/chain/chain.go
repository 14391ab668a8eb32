// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"bytes"
	"context"
	"crypto/x509"
	"fmt"

	x509certs "github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/certs"
)

// ChainError reports a structural failure while assembling a trust chain:
// an issuer/subject mismatch in the supplied intermediates, or an issuer for
// which no root could be located. It always carries the distinguished names
// involved so the operator can diagnose without re-running.
type ChainError struct {
	Reason  string // short machine-ish description of the failure
	Subject string // subject DN of the certificate that broke the chain
	Issuer  string // issuer DN the chain expected at that position
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("x509chain: %s (wanted issuer %q)", e.Reason, e.Issuer)
	}
	return fmt.Sprintf("x509chain: %s (subject %q, wanted %q)", e.Reason, e.Subject, e.Issuer)
}

// Chain assembles and holds an ordered [X.509] trust chain: index 0 is the
// leaf, the last element is a self-signed root or a root located in a trust
// bundle. Adjacent certificates always satisfy issuer(c[i]) == subject(c[i+1]).
//
// Linkage here is purely structural (distinguished-name matching); signature
// verification is the remote endpoint's job at install time.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Chain struct {
	Certs []*x509.Certificate
	*x509certs.Certificate

	// HTTPConfig configures the client used for AIA completion.
	HTTPConfig *HTTPConfig

	// AIAFallback enables fetching missing issuers from their AIA URLs
	// before consulting the local trust bundle.
	AIAFallback bool
}

// New creates a new Chain seeded with the leaf certificate.
//
// Parameters:
//   - leaf: Starting certificate (the endpoint's new identity)
//   - version: Application version for HTTP configuration
func New(leaf *x509.Certificate, version string) *Chain {
	return &Chain{
		Certs:       []*x509.Certificate{leaf},
		Certificate: x509certs.New(),
		HTTPConfig:  NewHTTPConfig(version),
	}
}

// Leaf returns the end-entity certificate the chain was seeded with.
func (ch *Chain) Leaf() *x509.Certificate { return ch.Certs[0] }

// Root returns the last certificate in the chain.
func (ch *Chain) Root() *x509.Certificate { return ch.Certs[len(ch.Certs)-1] }

// TrustAnchors returns every certificate above the leaf, in chain order.
// These are the members the remote endpoint must be told to trust directly.
func (ch *Chain) TrustAnchors() []*x509.Certificate {
	if len(ch.Certs) <= 1 {
		return nil
	}
	return ch.Certs[1:]
}

// IsSelfSigned checks if a certificate terminates a chain, that is, its
// subject and issuer distinguished names are identical.
func (ch *Chain) IsSelfSigned(cert *x509.Certificate) bool {
	return bytes.Equal(cert.RawSubject, cert.RawIssuer)
}

// issuedBy reports whether parent's subject matches child's issuer.
func issuedBy(child, parent *x509.Certificate) bool {
	return bytes.Equal(child.RawIssuer, parent.RawSubject)
}

// Resolve extends the chain from the supplied intermediates and, when they do
// not reach a self-signed root, completes it from the trust bundle. The two
// phases are explicit:
//
//  1. Each supplied intermediate must be the issuer of the previous
//     certificate, in order. A mismatch fails with a [*ChainError] naming the
//     offending pair. A self-signed intermediate completes the chain early;
//     any certificates after it are ignored.
//  2. If the supplied material is exhausted without reaching a root, the
//     bundle is searched for a certificate whose subject matches the last
//     issuer. Exactly one certificate is appended on success; absence fails
//     with a [*ChainError] naming the unmatched issuer.
//
// With AIAFallback enabled, missing issuers are fetched from their AIA URLs
// between the two phases.
//
// Resolve never reorders supplied intermediates and never verifies
// signatures, validity periods, or key usage.
func (ch *Chain) Resolve(ctx context.Context, intermediates []*x509.Certificate, bundle *Bundle) error {
	complete, err := ch.extendFromSupplied(intermediates)
	if err != nil {
		return err
	}
	if complete {
		return nil
	}

	if ch.AIAFallback {
		if complete, err = ch.fetchMissing(ctx); err != nil {
			return err
		}
		if complete {
			return nil
		}
	}

	return ch.completeFromBundle(bundle)
}

// extendFromSupplied appends the supplied intermediates in order, enforcing
// the issuer-to-subject invariant at every step. It reports whether the chain
// reached a self-signed root.
func (ch *Chain) extendFromSupplied(intermediates []*x509.Certificate) (bool, error) {
	last := ch.Root()
	if ch.IsSelfSigned(last) {
		// A self-signed leaf is a complete chain of length one.
		return true, nil
	}

	for _, cert := range intermediates {
		if !issuedBy(last, cert) {
			return false, &ChainError{
				Reason:  "supplied intermediates out of order or missing a link",
				Subject: cert.Subject.String(),
				Issuer:  last.Issuer.String(),
			}
		}

		ch.Certs = append(ch.Certs, cert)
		last = cert

		if ch.IsSelfSigned(cert) {
			return true, nil
		}
	}

	return false, nil
}

// completeFromBundle appends the bundle certificate matching the last
// issuer, or fails when the bundle has no such entry.
func (ch *Chain) completeFromBundle(bundle *Bundle) error {
	last := ch.Root()

	if bundle != nil {
		if root := bundle.FindIssuer(last); root != nil {
			ch.Certs = append(ch.Certs, root)
			return nil
		}
	}

	return &ChainError{
		Reason: "no trusted root found for chain",
		Issuer: last.Issuer.String(),
	}
}
