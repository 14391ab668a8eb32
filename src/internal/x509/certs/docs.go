// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs handles decoding and encoding of X.509 certificates in
// PEM, DER, and PKCS7 formats, plus structural validation of private key PEM
// envelopes. It is the single place the rest of the tool goes through to turn
// raw bytes into [crypto/x509.Certificate] values.
package x509certs
