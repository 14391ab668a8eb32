// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/certtest"
	x509chain "github.com/opsforge-io/vcenter-cert-rotate/src/internal/x509/chain"
)

func TestAIAFallback(t *testing.T) {
	root := certtest.SelfSigned(t, "AIA Root CA")
	inter := certtest.IssueCA(t, "AIA Intermediate CA", root)

	// The handler serves whatever DER body the test installs; the leaf is
	// issued afterwards pointing at the server.
	var issuerDER []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pkix-cert")
		w.Write(issuerDER)
	}))
	defer srv.Close()

	t.Run("Fetches Missing Intermediate", func(t *testing.T) {
		issuerDER = inter.Cert.Raw
		leaf := certtest.IssueLeafWithAIA(t, "aia.example.com", inter, srv.URL+"/inter.der")

		bundle := writeBundle(t, root.Cert)

		chain := x509chain.New(leaf.Cert, "test")
		chain.AIAFallback = true
		require.NoError(t, chain.Resolve(context.Background(), nil, bundle))

		require.Len(t, chain.Certs, 3)
		assert.True(t, chain.Certs[1].Equal(inter.Cert), "intermediate must come from the AIA fetch")
		assert.True(t, chain.Root().Equal(root.Cert), "root must come from the bundle")
	})

	t.Run("Disabled By Default", func(t *testing.T) {
		issuerDER = inter.Cert.Raw
		leaf := certtest.IssueLeafWithAIA(t, "aia-off.example.com", inter, srv.URL+"/inter.der")

		chain := x509chain.New(leaf.Cert, "test")
		err := chain.Resolve(context.Background(), nil, nil)

		var chainErr *x509chain.ChainError
		require.ErrorAs(t, err, &chainErr, "without the fallback the incomplete chain must fail")
	})

	t.Run("Mismatched Fetch Falls Through To Bundle", func(t *testing.T) {
		stranger := certtest.SelfSigned(t, "Stranger CA")
		issuerDER = stranger.Cert.Raw
		leaf := certtest.IssueLeafWithAIA(t, "aia-mismatch.example.com", root, srv.URL+"/wrong.der")

		bundle := writeBundle(t, root.Cert)

		chain := x509chain.New(leaf.Cert, "test")
		chain.AIAFallback = true
		require.NoError(t, chain.Resolve(context.Background(), nil, bundle))

		require.Len(t, chain.Certs, 2)
		assert.True(t, chain.Root().Equal(root.Cert), "the bundle, not the mismatched fetch, closes the chain")
	})
}

func TestHTTPConfigUserAgent(t *testing.T) {
	cfg := x509chain.NewHTTPConfig("9.9.9")
	assert.Contains(t, cfg.GetUserAgent(), "9.9.9")

	cfg.UserAgent = "custom-agent/1.0"
	assert.Equal(t, "custom-agent/1.0", cfg.GetUserAgent())
}
