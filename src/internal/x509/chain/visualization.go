// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders the certificate chain as an ASCII tree diagram,
// leaf first, with connectors showing the issuing relationships.
func (ch *Chain) RenderASCIITree() string {
	if len(ch.Certs) == 0 {
		return "No certificates in chain"
	}

	var result strings.Builder
	for i, cert := range ch.Certs {
		connector := "├── "
		if i == len(ch.Certs)-1 {
			connector = "└── "
		}

		certInfo := cert.Subject.CommonName
		if role := ch.getCertificateRole(i); role != "" {
			certInfo += fmt.Sprintf(" (%s)", role)
		}

		result.WriteString(connector + certInfo + "\n")
	}

	return result.String()
}

// RenderTable renders the certificate chain as a markdown table with role,
// subject, issuer, expiry, and key size per chain member.
func (ch *Chain) RenderTable() string {
	if len(ch.Certs) == 0 {
		return "No certificates to display"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key"})

	var rows [][]string
	for i, cert := range ch.Certs {
		keySize := "unknown"
		if rsaKey, ok := cert.PublicKey.(*rsa.PublicKey); ok {
			keySize = fmt.Sprintf("%d-bit RSA", rsaKey.Size()*8)
		} else if ecdsaKey, ok := cert.PublicKey.(*ecdsa.PublicKey); ok {
			keySize = fmt.Sprintf("%d-bit ECDSA", ecdsaKey.Curve.Params().BitSize)
		}

		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			ch.getCertificateRole(i),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			keySize,
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToJSON converts the certificate chain to a structured JSON document for
// external tooling: one record per member plus the issuing relationships.
func (ch *Chain) ToJSON() ([]byte, error) {
	type certData struct {
		Index        int       `json:"index"`
		Role         string    `json:"role"`
		Subject      string    `json:"subject"`
		Issuer       string    `json:"issuer"`
		SerialNumber string    `json:"serialNumber"`
		NotBefore    time.Time `json:"notBefore"`
		NotAfter     time.Time `json:"notAfter"`
		IsCA         bool      `json:"isCA"`
		PEM          string    `json:"pem"`
	}

	type chainData struct {
		Timestamp    string     `json:"timestamp"`
		ChainLength  int        `json:"chainLength"`
		Certificates []certData `json:"certificates"`
	}

	data := chainData{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		ChainLength:  len(ch.Certs),
		Certificates: make([]certData, len(ch.Certs)),
	}

	for i, cert := range ch.Certs {
		data.Certificates[i] = certData{
			Index:        i,
			Role:         ch.getCertificateRole(i),
			Subject:      cert.Subject.String(),
			Issuer:       cert.Issuer.String(),
			SerialNumber: cert.SerialNumber.String(),
			NotBefore:    cert.NotBefore,
			NotAfter:     cert.NotAfter,
			IsCA:         cert.IsCA,
			PEM:          string(ch.EncodePEM(cert)),
		}
	}

	return json.MarshalIndent(data, "", "  ")
}

// getCertificateRole describes a certificate's position in the chain.
func (ch *Chain) getCertificateRole(index int) string {
	total := len(ch.Certs)
	switch {
	case total == 1:
		return "Self-Signed Certificate"
	case index == 0:
		return "End-Entity (Server/Leaf) Certificate"
	case index == total-1:
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}
