// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package vcapi

import (
	"context"
	"net/http"
)

const (
	trustedRootsPath = "/vcenter/certificate-management/vcenter/trusted-root-chains"
	tlsPath          = "/vcenter/certificate-management/vcenter/tls"
)

// trustedRootSpec is the request body for trusted-root import.
type trustedRootSpec struct {
	Spec struct {
		CertChain struct {
			CertChain []string `json:"cert_chain"`
		} `json:"cert_chain"`
	} `json:"spec"`
}

// tlsSpec is the request body for TLS identity replacement.
type tlsSpec struct {
	Spec struct {
		Cert     string `json:"cert"`
		Key      string `json:"key"`
		RootCert string `json:"root_cert,omitempty"`
	} `json:"spec"`
}

// ImportTrustedRoot adds one PEM-encoded certificate to the endpoint's
// trusted-root store. Non-2xx responses fail with an [*APIError].
func (s *Session) ImportTrustedRoot(ctx context.Context, certPEM string) error {
	if s.closed {
		return ErrSessionClosed
	}

	var body trustedRootSpec
	body.Spec.CertChain.CertChain = []string{certPEM}

	status, respBody, err := s.c.do(ctx, http.MethodPost, trustedRootsPath, s.token, body, nil)
	if err != nil {
		return err
	}
	if !success(status) {
		return &APIError{Op: "import trusted root", StatusCode: status, Body: string(respBody)}
	}
	return nil
}

// InstallTLS replaces the endpoint's TLS identity with the given leaf
// certificate, private key, and concatenated trust chain. The change takes
// effect remotely as soon as the endpoint accepts it; there is no rollback
// other than re-running with the previous material.
func (s *Session) InstallTLS(ctx context.Context, certPEM, keyPEM, rootChainPEM string) error {
	if s.closed {
		return ErrSessionClosed
	}

	var body tlsSpec
	body.Spec.Cert = certPEM
	body.Spec.Key = keyPEM
	body.Spec.RootCert = rootChainPEM

	status, respBody, err := s.c.do(ctx, http.MethodPut, tlsPath, s.token, body, nil)
	if err != nil {
		return err
	}
	if !success(status) {
		return &APIError{Op: "install certificate", StatusCode: status, Body: string(respBody)}
	}
	return nil
}
