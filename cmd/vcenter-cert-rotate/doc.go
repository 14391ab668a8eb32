// Copyright (c) 2026 OpsForge Labs All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// vcenter-cert-rotate is a command-line tool that rotates the TLS
// certificate of a vCenter-style management endpoint.
//
// It assembles an ordered trust chain from a leaf certificate and supplied
// intermediates, completing the chain from a local CA bundle when the
// supplied material does not terminate in a self-signed root, then drives
// the endpoint's session-authenticated certificate-management API:
// authenticate, import every non-leaf chain member as a trusted root,
// install the new leaf/key/chain, and terminate the session on every exit
// path.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/opsforge-io/vcenter-cert-rotate/cmd/vcenter-cert-rotate@latest
//
// # Usage
//
//	vcenter-cert-rotate --host HOST --credentials CRED_FILE \
//	  --cert LEAF_PEM --key KEY_PEM [FLAGS]
//
// # Flags
//
//	    --host           Management endpoint, host or host:port [required]
//	    --credentials    File containing username:password on one line [required]
//	    --cert           Leaf certificate PEM file [required]
//	    --key            Private key PEM file matching the leaf [required]
//	    --chain          Intermediate chain PEM file (optional)
//	    --ca-bundle      Trusted CA bundle for chain completion (default: system bundle)
//	-k, --insecure       Disable TLS verification on the initial connection (insecure)
//	    --fetch-missing  Fetch missing issuers via AIA before using the CA bundle
//	    --dry-run        Assemble and print the chain without touching the endpoint
//	    --timeout        Per-call API timeout in seconds (default 30)
//	-t, --tree           Print the resolved chain as an ASCII tree
//	    --table          Print the resolved chain as a markdown table
//	    --log-file       Append structured JSON log entries to this file
//	    --config         YAML or JSON configuration file
//
// # Examples
//
// Rotate with a full chain supplied:
//
//	vcenter-cert-rotate --host vc01.example.net --credentials /etc/vcert/cred \
//	  --cert leaf.pem --key leaf.key --chain intermediates.pem
//
// Rotate away from an expired certificate, completing the chain from the
// system bundle:
//
//	vcenter-cert-rotate --host vc01.example.net --credentials /etc/vcert/cred \
//	  --cert leaf.pem --key leaf.key -k
//
// Preview what a run would do:
//
//	vcenter-cert-rotate --cert leaf.pem --key leaf.key --chain intermediates.pem \
//	  --dry-run --table
//
// The exit status is zero on full success and non-zero when chain
// construction or any API call fails. The tool keeps no state between runs;
// a periodic renewal job simply re-invokes it.
package main
