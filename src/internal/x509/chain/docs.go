// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain assembles ordered X.509 trust chains from a leaf
// certificate and supplied intermediates, completing incomplete chains
// from a local trust bundle or, optionally, via AIA fetches. Chain order
// is enforced structurally by issuer/subject distinguished-name matching;
// cryptographic verification is deliberately out of scope and left to the
// endpoint receiving the chain.
package x509chain
