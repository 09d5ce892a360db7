// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/gob"
)

// Gob returns the gob codec, Go's native binary format. Useful for
// Go-only persistence of types that CBOR handles poorly; the standard
// library is the only provider of this format, so there is no
// third-party adapter to wrap.
func Gob() Codec {
	return gobCodec{}
}

type gobCodec struct{}

func (gobCodec) Name() string { return "gob" }
func (gobCodec) Ext() string  { return "gob" }

func (gobCodec) Marshal(v any) ([]byte, error) {
	var buffer bytes.Buffer
	if err := gob.NewEncoder(&buffer).Encode(v); err != nil {
		return nil, encodeError("gob", err)
	}
	return buffer.Bytes(), nil
}

func (gobCodec) Unmarshal(data []byte, v any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return decodeError("gob", err)
	}
	return nil
}
