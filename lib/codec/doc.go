// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the pluggable serialization adapters the
// persistence engine writes and reads files with.
//
// Each adapter is a thin, immutable wrapper over one serialization
// library, constructed once and reused. The engine only sees the
// [Codec] interface: marshal a value to bytes, unmarshal bytes into a
// value, plus a name for diagnostics and a default file extension.
// Adapter errors wrap the underlying library error with the codec
// name and operation, so a failure reads as "json: encode: ..."
// wherever it surfaces.
//
// Text formats (JSON, YAML, TOML) produce human-editable files.
// Binary formats (CBOR, gob, MessagePack) are the ones callers
// typically pair with a frame.Frame for on-disk schema identity and
// versioning; framing is the caller's choice, not the codec's.
package codec
