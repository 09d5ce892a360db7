// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"strings"
	"testing"
)

// document is a representative persisted value exercising nested
// structure, the three scalar kinds, and a slice.
type document struct {
	Title   string   `json:"title" yaml:"title" toml:"title" msgpack:"title"`
	Count   int      `json:"count" yaml:"count" toml:"count" msgpack:"count"`
	Ratio   float64  `json:"ratio" yaml:"ratio" toml:"ratio" msgpack:"ratio"`
	Tags    []string `json:"tags" yaml:"tags" toml:"tags" msgpack:"tags"`
	Nested  child    `json:"nested" yaml:"nested" toml:"nested" msgpack:"nested"`
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled" msgpack:"enabled"`
}

type child struct {
	Name string `json:"name" yaml:"name" toml:"name" msgpack:"name"`
}

func sampleDocument() document {
	return document{
		Title:   "quarterly state",
		Count:   42,
		Ratio:   0.75,
		Tags:    []string{"alpha", "beta"},
		Nested:  child{Name: "inner"},
		Enabled: true,
	}
}

func TestRoundtrip(t *testing.T) {
	codecs := []Codec{JSON(), JSONC(), YAML(), TOML(), CBOR(), Gob(), MessagePack()}

	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			original := sampleDocument()

			data, err := c.Marshal(original)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if len(data) == 0 {
				t.Fatal("Marshal produced empty output")
			}

			var decoded document
			if err := c.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}

			if decoded.Title != original.Title ||
				decoded.Count != original.Count ||
				decoded.Ratio != original.Ratio ||
				decoded.Nested != original.Nested ||
				decoded.Enabled != original.Enabled ||
				len(decoded.Tags) != len(original.Tags) {
				t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
			}
		})
	}
}

func TestCBORDeterministic(t *testing.T) {
	c := CBOR()
	value := sampleDocument()

	first, err := c.Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := c.Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Error("CBOR encoding is not deterministic for the same value")
	}
}

func TestJSONOutputIndented(t *testing.T) {
	data, err := JSON().Marshal(sampleDocument())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "\n  \"title\"") {
		t.Errorf("JSON output not two-space indented:\n%s", text)
	}
	if !strings.HasSuffix(text, "\n") {
		t.Error("JSON output missing trailing newline")
	}
}

func TestJSONCToleratesComments(t *testing.T) {
	input := `{
  // the display title
  "title": "commented",
  "count": 7, /* trailing comma next */
  "tags": ["a",],
}`

	var decoded document
	if err := JSONC().Unmarshal([]byte(input), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Title != "commented" || decoded.Count != 7 {
		t.Errorf("decoded %+v, want title=commented count=7", decoded)
	}

	// Plain JSON must reject the same input.
	if err := JSON().Unmarshal([]byte(input), &decoded); err == nil {
		t.Error("JSON().Unmarshal accepted commented input, want error")
	}
}

func TestErrorsCarryCodecName(t *testing.T) {
	// A channel is unmarshalable in every format.
	unencodable := struct{ C chan int }{}

	for _, c := range []Codec{JSON(), YAML(), CBOR(), Gob()} {
		_, err := c.Marshal(unencodable)
		if err == nil {
			t.Errorf("%s: Marshal(chan) succeeded, want error", c.Name())
			continue
		}
		if !strings.HasPrefix(err.Error(), c.Name()+": encode: ") {
			t.Errorf("%s: error %q missing codec prefix", c.Name(), err)
		}
	}

	var target document
	err := JSON().Unmarshal([]byte("{not json"), &target)
	if err == nil || !strings.HasPrefix(err.Error(), "json: decode: ") {
		t.Errorf("decode error %v missing codec prefix", err)
	}
}
