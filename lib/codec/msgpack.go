// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "github.com/vmihailenco/msgpack/v5"

// MessagePack returns the MessagePack codec, a compact binary format
// with wide cross-language support.
func MessagePack() Codec {
	return msgpackCodec{}
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }
func (msgpackCodec) Ext() string  { return "msgpack" }

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, encodeError("msgpack", err)
	}
	return data, nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return decodeError("msgpack", err)
	}
	return nil
}
