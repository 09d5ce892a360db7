// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "github.com/pelletier/go-toml/v2"

// TOML returns the TOML codec.
func TOML() Codec {
	return tomlCodec{}
}

type tomlCodec struct{}

func (tomlCodec) Name() string { return "toml" }
func (tomlCodec) Ext() string  { return "toml" }

func (tomlCodec) Marshal(v any) ([]byte, error) {
	data, err := toml.Marshal(v)
	if err != nil {
		return nil, encodeError("toml", err)
	}
	return data, nil
}

func (tomlCodec) Unmarshal(data []byte, v any) error {
	if err := toml.Unmarshal(data, v); err != nil {
		return decodeError("toml", err)
	}
	return nil
}
