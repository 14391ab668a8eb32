// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package vcapi is a session-oriented client for the vCenter-style
// certificate-management REST API. A [Client] is bound to one host; a
// [Session] is acquired by login, authorizes trusted-root import and TLS
// identity installation, and must be released by logout.
// [Client.WithSession] enforces that discipline on every exit path.
//
// The client is fully synchronous and retry-free: a run either completes
// or fails fast with an [*APIError] carrying the endpoint's response.
package vcapi
