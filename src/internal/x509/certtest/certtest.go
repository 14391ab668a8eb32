// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package certtest generates throwaway certificate hierarchies for tests.
// All material is created in memory per test run; nothing here is suitable
// for production use.
package certtest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"
)

// KeyPair bundles a parsed certificate with its private key.
type KeyPair struct {
	Cert *x509.Certificate
	Key  *ecdsa.PrivateKey
}

// SelfSigned creates a self-signed CA certificate with the given common name.
func SelfSigned(t *testing.T, commonName string) KeyPair {
	t.Helper()
	return newCert(t, commonName, KeyPair{}, true)
}

// IssueCA creates an intermediate CA certificate signed by parent.
func IssueCA(t *testing.T, commonName string, parent KeyPair) KeyPair {
	t.Helper()
	return newCert(t, commonName, parent, true)
}

// IssueLeaf creates an end-entity certificate signed by parent.
func IssueLeaf(t *testing.T, commonName string, parent KeyPair) KeyPair {
	t.Helper()
	return newCert(t, commonName, parent, false)
}

// IssueLeafWithAIA creates an end-entity certificate signed by parent that
// advertises issuerURL in its Authority Information Access extension.
func IssueLeafWithAIA(t *testing.T, commonName string, parent KeyPair, issuerURL string) KeyPair {
	t.Helper()
	return newCertAIA(t, commonName, parent, false, issuerURL)
}

// CertPEM returns the PEM encoding of a certificate.
func CertPEM(t *testing.T, cert *x509.Certificate) []byte {
	t.Helper()
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
}

// KeyPEM returns the PKCS8 PEM encoding of a private key.
func KeyPEM(t *testing.T, key *ecdsa.PrivateKey) []byte {
	t.Helper()

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal private key: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

// ChainPEM concatenates the PEM encodings of certs in order.
func ChainPEM(t *testing.T, certs ...*x509.Certificate) []byte {
	t.Helper()

	var out []byte
	for _, cert := range certs {
		out = append(out, CertPEM(t, cert)...)
	}
	return out
}

func newCert(t *testing.T, commonName string, parent KeyPair, isCA bool) KeyPair {
	t.Helper()
	return newCertAIA(t, commonName, parent, isCA, "")
}

func newCertAIA(t *testing.T, commonName string, parent KeyPair, isCA bool, issuerURL string) KeyPair {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 120))
	if err != nil {
		t.Fatalf("failed to generate serial: %v", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: commonName, Organization: []string{"certtest"}},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		BasicConstraintsValid: true,
		IsCA:                  isCA,
	}
	if isCA {
		tmpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	} else {
		tmpl.KeyUsage = x509.KeyUsageDigitalSignature
		tmpl.ExtKeyUsage = []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}
		tmpl.DNSNames = []string{commonName}
	}
	if issuerURL != "" {
		tmpl.IssuingCertificateURL = []string{issuerURL}
	}

	parentCert := tmpl
	signerKey := key
	if parent.Cert != nil {
		parentCert = parent.Cert
		signerKey = parent.Key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parentCert, &key.PublicKey, signerKey)
	if err != nil {
		t.Fatalf("failed to create certificate: %v", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("failed to reparse certificate: %v", err)
	}

	return KeyPair{Cert: cert, Key: key}
}
