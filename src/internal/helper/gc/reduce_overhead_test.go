// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc_test

import (
	"strings"
	"testing"

	"github.com/opsforge-io/vcenter-cert-rotate/src/internal/helper/gc"
)

func TestPoolReuse(t *testing.T) {
	buf := gc.Default.Get()
	if _, err := buf.WriteString("-----BEGIN CERTIFICATE-----"); err != nil {
		t.Fatalf("WriteString() error = %v", err)
	}
	if got := string(buf.Bytes()); got != "-----BEGIN CERTIFICATE-----" {
		t.Errorf("unexpected buffer contents: %q", got)
	}

	buf.Reset()
	gc.Default.Put(buf)

	// A fresh buffer from the pool must never leak previous contents.
	buf = gc.Default.Get()
	if len(buf.Bytes()) != 0 {
		t.Errorf("expected empty buffer after reset, got %d bytes", len(buf.Bytes()))
	}
	buf.Reset()
	gc.Default.Put(buf)
}

func TestBufferReadFrom(t *testing.T) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	payload := strings.Repeat("a", 4096)
	n, err := buf.ReadFrom(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}
	if n != int64(len(payload)) {
		t.Errorf("expected %d bytes read, got %d", len(payload), n)
	}
}
