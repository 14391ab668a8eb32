// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs_test

import (
	"crypto/x509"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509certs "github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/certs"
	"github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/certtest"
)

func TestCertificateOperations(t *testing.T) {
	root := certtest.SelfSigned(t, "Test Root CA")
	inter := certtest.IssueCA(t, "Test Intermediate CA", root)
	leaf := certtest.IssueLeaf(t, "vcsa.example.com", inter)

	leafPEM := certtest.CertPEM(t, leaf.Cert)
	chainPEM := certtest.ChainPEM(t, leaf.Cert, inter.Cert, root.Cert)

	tests := []struct {
		name     string
		testFunc func(t *testing.T, decoder *x509certs.Certificate)
	}{
		{
			name: "Decode Single Certificate",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				cert, err := decoder.Decode(leafPEM)
				require.NoError(t, err, "Decode() error")

				assert.Equal(t, "vcsa.example.com", cert.Subject.CommonName, "expected CommonName vcsa.example.com")
			},
		},
		{
			name: "Decode Single Certificate from DER",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				cert, err := decoder.Decode(leaf.Cert.Raw)
				require.NoError(t, err, "Decode() error")

				assert.True(t, cert.Equal(leaf.Cert), "original and decoded certificates are not equal")
			},
		},
		{
			name: "Decode Multiple Certificates Preserves Order",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				certs, err := decoder.DecodeMultiple(chainPEM)
				require.NoError(t, err, "DecodeMultiple() error")
				require.Len(t, certs, 3, "expected 3 certificates")

				assert.Equal(t, "vcsa.example.com", certs[0].Subject.CommonName)
				assert.Equal(t, "Test Intermediate CA", certs[1].Subject.CommonName)
				assert.Equal(t, "Test Root CA", certs[2].Subject.CommonName)
			},
		},
		{
			name: "Decode Multiple Skips Text Between Blocks",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				var input []byte
				input = append(input, []byte("Subject: CN=vcsa.example.com\n")...)
				input = append(input, leafPEM...)
				input = append(input, []byte("Subject: CN=Test Intermediate CA\n")...)
				input = append(input, certtest.CertPEM(t, inter.Cert)...)

				certs, err := decoder.DecodeMultiple(input)
				require.NoError(t, err, "DecodeMultiple() error")

				assert.Len(t, certs, 2, "expected 2 certificates")
			},
		},
		{
			name: "Decode Multiple of Empty Input",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				certs, err := decoder.DecodeMultiple([]byte("\n"))
				require.Error(t, err, "expected parse error on non-PEM garbage")
				assert.Nil(t, certs)
			},
		},
		{
			name: "Decode Multiple Rejects Wrong Block Type",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				keyPEM := certtest.KeyPEM(t, leaf.Key)

				_, err := decoder.DecodeMultiple(keyPEM)
				assert.ErrorIs(t, err, x509certs.ErrInvalidBlockType)
			},
		},
		{
			name: "Decode Bundle Tolerates Junk Entries",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				bad := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("not a certificate")})

				var input []byte
				input = append(input, certtest.CertPEM(t, root.Cert)...)
				input = append(input, bad...)
				input = append(input, certtest.KeyPEM(t, root.Key)...)
				input = append(input, certtest.CertPEM(t, inter.Cert)...)

				certs := decoder.DecodeBundle(input)
				require.Len(t, certs, 2, "expected 2 parsable certificates")

				assert.Equal(t, "Test Root CA", certs[0].Subject.CommonName)
				assert.Equal(t, "Test Intermediate CA", certs[1].Subject.CommonName)
			},
		},
		{
			name: "Encode Single Certificate to PEM",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				encoded := decoder.EncodePEM(leaf.Cert)
				require.NotEmpty(t, encoded, "EncodePEM() returned empty result")

				decodedBlock, _ := pem.Decode(encoded)
				require.NotNil(t, decodedBlock, "failed to decode encoded certificate PEM")

				decodedCert, err := x509.ParseCertificate(decodedBlock.Bytes)
				require.NoError(t, err, "ParseCertificate() error")

				assert.True(t, leaf.Cert.Equal(decodedCert), "original and decoded certificates are not equal")
			},
		},
		{
			name: "Encode Multiple Certificates to PEM",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				encoded := decoder.EncodeMultiplePEM([]*x509.Certificate{leaf.Cert, inter.Cert})
				require.NotEmpty(t, encoded, "EncodeMultiplePEM() returned empty result")

				certs, err := decoder.DecodeMultiple(encoded)
				require.NoError(t, err, "DecodeMultiple() error")

				require.Len(t, certs, 2, "expected 2 certificates")
				assert.True(t, leaf.Cert.Equal(certs[0]))
				assert.True(t, inter.Cert.Equal(certs[1]))
			},
		},
		{
			name: "Reject Invalid PEM Block",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				_, err := decoder.Decode([]byte("-----BEGIN CERTIFICATE-----\ninvalid\n-----END CERTIFICATE-----"))
				assert.Error(t, err, "expected error for invalid certificate data")
			},
		},
		{
			name: "Reject Wrong Block Type",
			testFunc: func(t *testing.T, decoder *x509certs.Certificate) {
				keyPEM := certtest.KeyPEM(t, leaf.Key)

				_, err := decoder.Decode(keyPEM)
				assert.ErrorIs(t, err, x509certs.ErrInvalidBlockType)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t, x509certs.New())
		})
	}
}

func TestIsPEM(t *testing.T) {
	decoder := x509certs.New()
	leaf := certtest.SelfSigned(t, "pem-check")

	assert.True(t, decoder.IsPEM(certtest.CertPEM(t, leaf.Cert)), "PEM input not recognized")
	assert.False(t, decoder.IsPEM(leaf.Cert.Raw), "DER input misdetected as PEM")
	assert.False(t, decoder.IsPEM([]byte("plain text")), "plain text misdetected as PEM")
}

func TestValidatePrivateKeyPEM(t *testing.T) {
	decoder := x509certs.New()
	kp := certtest.SelfSigned(t, "key-check")

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name: "PKCS8 Private Key",
			data: certtest.KeyPEM(t, kp.Key),
		},
		{
			name: "EC Private Key Block Type",
			data: pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: []byte{0x30, 0x00}}),
		},
		{
			name: "RSA Private Key Block Type",
			data: pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: []byte{0x30, 0x00}}),
		},
		{
			name:    "Certificate Instead of Key",
			data:    certtest.CertPEM(t, kp.Cert),
			wantErr: x509certs.ErrInvalidPrivateKeyPEM,
		},
		{
			name:    "Not PEM At All",
			data:    []byte("definitely not a key"),
			wantErr: x509certs.ErrInvalidPrivateKeyPEM,
		},
		{
			name:    "Empty Input",
			data:    nil,
			wantErr: x509certs.ErrInvalidPrivateKeyPEM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decoder.ValidatePrivateKeyPEM(tt.data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
