// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package gc provides pooled byte buffers for reducing allocation overhead
// in I/O heavy paths (API response reads, certificate bundle loading).
//
// The package wraps [github.com/valyala/bytebufferpool] behind small
// interfaces so callers never depend on the pool implementation directly.
package gc
