// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "fmt"

// Codec converts values to and from one serialization format.
// Implementations are immutable: all encoder configuration happens in
// the constructor, never per call.
type Codec interface {
	// Name identifies the format in errors and logs, e.g. "json".
	Name() string

	// Ext is the conventional file extension without the dot, e.g.
	// "json". Empty means files of this format carry no extension.
	Ext() string

	// Marshal encodes v to the format's byte representation.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v, which must be a pointer.
	Unmarshal(data []byte, v any) error
}

// encodeError wraps a library encode failure with the codec name.
func encodeError(name string, err error) error {
	return fmt.Errorf("%s: encode: %w", name, err)
}

// decodeError wraps a library decode failure with the codec name.
func decodeError(name string, err error) error {
	return fmt.Errorf("%s: decode: %w", name, err)
}
