// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package rotate orchestrates a single certificate rotation run: trust
// chain assembly via [x509chain] followed by the session-scoped API
// sequence via [vcapi]. Each run is stateless and one-shot; re-running the
// tool is the only retry and the only rollback.
package rotate
