// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/json"

	"github.com/tidwall/jsonc"
)

// JSON returns the JSON codec. Output is two-space indented with a
// trailing newline, so saved files diff cleanly and open readably in
// an editor.
func JSON() Codec {
	return jsonCodec{name: "json"}
}

// JSONC returns the JSON-with-comments codec. It writes the same
// pretty JSON as [JSON], but tolerates // and /* */ comments and
// trailing commas on read, for files users hand-edit.
func JSONC() Codec {
	return jsonCodec{name: "jsonc", comments: true}
}

type jsonCodec struct {
	name     string
	comments bool
}

func (c jsonCodec) Name() string { return c.name }
func (c jsonCodec) Ext() string  { return "json" }

func (c jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, encodeError(c.name, err)
	}
	return append(data, '\n'), nil
}

func (c jsonCodec) Unmarshal(data []byte, v any) error {
	if c.comments {
		data = jsonc.ToJSON(data)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return decodeError(c.name, err)
	}
	return nil
}
