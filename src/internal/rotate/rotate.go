// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package rotate

import (
	"context"
	"fmt"
	"time"

	"github.com/opsforge-io/vcenter-cert-rotate/src/internal/vcapi"
	x509certs "github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/certs"
	x509chain "github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/chain"
	"github.com/opsforge-io/vcenter-cert-rotate/src/logger"
)

// Options carries everything one rotation run needs. The caller (CLI) owns
// reading files and credentials; this package only sees raw PEM bytes and
// strings.
type Options struct {
	Host     string
	Username string
	Password string

	LeafPEM          []byte
	KeyPEM           []byte
	IntermediatesPEM []byte // optional, may be empty

	// Bundle is the local trust store consulted when the supplied chain does
	// not terminate in a self-signed root. Required unless DryRun chains are
	// guaranteed complete.
	Bundle *x509chain.Bundle

	Insecure     bool
	FetchMissing bool
	DryRun       bool
	Timeout      time.Duration
	Version      string
}

// Report summarizes what a run did (or, for a dry run, would do).
type Report struct {
	Chain     *x509chain.Chain
	Imported  int  // trust anchors imported
	Installed bool // TLS identity replaced
	DryRun    bool
}

// Run performs one certificate rotation: assemble the trust chain, then
// drive the remote API through login, trust-anchor import, certificate
// installation, and logout. The session is always released once login
// succeeded, whatever happens in between.
//
// A dry run stops after chain assembly and reports the plan without opening
// a session.
func Run(ctx context.Context, opts Options, log logger.Logger) (*Report, error) {
	decoder := x509certs.New()

	if err := decoder.ValidatePrivateKeyPEM(opts.KeyPEM); err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}

	leaf, err := decoder.Decode(opts.LeafPEM)
	if err != nil {
		return nil, fmt.Errorf("leaf certificate: %w", err)
	}

	supplied, err := decoder.DecodeMultiple(opts.IntermediatesPEM)
	if err != nil {
		return nil, fmt.Errorf("intermediate certificates: %w", err)
	}

	chain := x509chain.New(leaf, opts.Version)
	chain.AIAFallback = opts.FetchMissing
	if err := chain.Resolve(ctx, supplied, opts.Bundle); err != nil {
		return nil, err
	}

	log.Printf("resolved trust chain with %d certificate(s), root %q",
		len(chain.Certs), chain.Root().Subject.CommonName)

	report := &Report{Chain: chain, DryRun: opts.DryRun}
	if opts.DryRun {
		return report, nil
	}

	client := vcapi.New(vcapi.Config{
		Host:     opts.Host,
		Insecure: opts.Insecure,
		Timeout:  opts.Timeout,
		Version:  opts.Version,
	})

	err = client.WithSession(ctx, opts.Username, opts.Password, func(ctx context.Context, s *vcapi.Session) error {
		for _, anchor := range chain.TrustAnchors() {
			log.Printf("importing trust anchor %q", anchor.Subject.CommonName)
			if err := s.ImportTrustedRoot(ctx, string(chain.EncodePEM(anchor))); err != nil {
				return err
			}
			report.Imported++
		}

		log.Printf("installing TLS identity %q on %s", leaf.Subject.CommonName, opts.Host)
		rootChain := string(chain.EncodeMultiplePEM(chain.TrustAnchors()))
		if err := s.InstallTLS(ctx, string(chain.EncodePEM(leaf)), string(opts.KeyPEM), rootChain); err != nil {
			return err
		}
		report.Installed = true
		return nil
	})
	if err != nil {
		return report, err
	}

	return report, nil
}
