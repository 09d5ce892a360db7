// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "gopkg.in/yaml.v3"

// YAML returns the YAML codec.
func YAML() Codec {
	return yamlCodec{}
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }
func (yamlCodec) Ext() string  { return "yml" }

func (yamlCodec) Marshal(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, encodeError("yaml", err)
	}
	return data, nil
}

func (yamlCodec) Unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return decodeError("yaml", err)
	}
	return nil
}
