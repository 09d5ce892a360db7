// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"net/netip"
	"testing"
)

func TestTextString(t *testing.T) {
	c := Text()

	data, err := c.Marshal("hello world")
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "hello world\n" {
		t.Errorf("Marshal = %q, want %q", data, "hello world\n")
	}

	var decoded string
	if err := c.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != "hello world" {
		t.Errorf("Unmarshal = %q, want %q", decoded, "hello world")
	}
}

func TestTextScalars(t *testing.T) {
	c := Text()

	t.Run("int", func(t *testing.T) {
		data, err := c.Marshal(123)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var decoded int
		if err := c.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if decoded != 123 {
			t.Errorf("roundtrip = %d, want 123", decoded)
		}
	})

	t.Run("bool", func(t *testing.T) {
		data, err := c.Marshal(true)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var decoded bool
		if err := c.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if !decoded {
			t.Error("roundtrip = false, want true")
		}
	})

	t.Run("float64", func(t *testing.T) {
		data, err := c.Marshal(0.5)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var decoded float64
		if err := c.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if decoded != 0.5 {
			t.Errorf("roundtrip = %v, want 0.5", decoded)
		}
	})
}

func TestTextMarshalerRoundtrip(t *testing.T) {
	c := Text()
	address := netip.MustParseAddr("192.168.1.10")

	data, err := c.Marshal(address)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "192.168.1.10\n" {
		t.Errorf("Marshal = %q, want %q", data, "192.168.1.10\n")
	}

	var decoded netip.Addr
	if err := c.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != address {
		t.Errorf("roundtrip = %v, want %v", decoded, address)
	}
}

func TestTextUnsupportedTypes(t *testing.T) {
	c := Text()

	if _, err := c.Marshal(struct{ X int }{}); err == nil {
		t.Error("Marshal(struct) succeeded, want error")
	}

	var target struct{ X int }
	if err := c.Unmarshal([]byte("x\n"), &target); err == nil {
		t.Error("Unmarshal(struct target) succeeded, want error")
	}
}
