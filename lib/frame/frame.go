// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

// Package frame defines the 25-byte header+version prefix carried by
// binary-encoded files.
//
// Every framed payload on disk is laid out as:
//
//	bytes 0..23   Header — a fixed 24-byte schema-identity magic
//	byte  24      Version — the payload's schema revision (0-255)
//	bytes 25..    codec-encoded payload
//
// The header answers "is this file mine at all"; the version answers
// "which revision of my schema wrote it". Validation checks length,
// then header, then version, in that order, so a truncated file is
// reported as truncated rather than tripping an out-of-bounds read.
//
// Compression wraps the entire framed buffer, header included: a
// gzipped file must be decompressed before its frame can be inspected.
package frame

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
)

const (
	// HeaderSize is the length of the schema-identity magic.
	HeaderSize = 24

	// Size is the full prefix length: header plus the version byte.
	Size = HeaderSize + 1
)

// Validation errors, in check order. Each carries enough identity in
// errors.Is form for callers to distinguish "not my file" (header
// mismatch) from "my file, wrong revision" (version mismatch).
var (
	ErrTooShort        = errors.New("frame: data shorter than the 25-byte frame")
	ErrHeaderMismatch  = errors.New("frame: header bytes do not match")
	ErrVersionMismatch = errors.New("frame: version byte does not match")
)

// Frame is the immutable (header, version) pair for one schema. The
// header is fixed for the lifetime of a file format; the version
// increments when the payload schema changes.
type Frame struct {
	Header  [HeaderSize]byte
	Version byte
}

// New returns the frame for the given header and version.
func New(header [HeaderSize]byte, version byte) *Frame {
	return &Frame{Header: header, Version: version}
}

// DeriveHeader produces a deterministic 24-byte header from a
// schema-identity string using BLAKE3 key derivation. It spares
// callers hand-picking magic bytes while keeping distinct identity
// strings collision-resistant. Any 24 bytes remain a legal header;
// this is a convenience, not a requirement.
func DeriveHeader(context string) [HeaderSize]byte {
	var derived [32]byte
	blake3.DeriveKey(context, nil, derived[:])

	var header [HeaderSize]byte
	copy(header[:], derived[:HeaderSize])
	return header
}

// Bytes returns the full 25-byte prefix: header followed by version.
func (f *Frame) Bytes() [Size]byte {
	var full [Size]byte
	copy(full[:HeaderSize], f.Header[:])
	full[HeaderSize] = f.Version
	return full
}

// Prepend returns a fresh buffer holding the 25-byte prefix followed
// by payload. The payload slice is not modified.
func (f *Frame) Prepend(payload []byte) []byte {
	framed := make([]byte, 0, Size+len(payload))
	prefix := f.Bytes()
	framed = append(framed, prefix[:]...)
	return append(framed, payload...)
}

// Validate checks that data begins with this frame's 25-byte prefix.
// Checks run in order — length, header, version — and the first
// failure is returned wrapping the matching sentinel.
func (f *Frame) Validate(data []byte) error {
	if len(data) < Size {
		return fmt.Errorf("%w: have %d bytes", ErrTooShort, len(data))
	}
	if !bytes.Equal(data[:HeaderSize], f.Header[:]) {
		return fmt.Errorf("%w: expected %v, found %v",
			ErrHeaderMismatch, f.Header[:], data[:HeaderSize])
	}
	if data[HeaderSize] != f.Version {
		return fmt.Errorf("%w: expected %d, found %d",
			ErrVersionMismatch, f.Version, data[HeaderSize])
	}
	return nil
}

// Strip validates data and returns the payload after the prefix. The
// returned slice aliases data.
func (f *Frame) Strip(data []byte) ([]byte, error) {
	if err := f.Validate(data); err != nil {
		return nil, err
	}
	return data[Size:], nil
}

// PeekVersion checks length and header only and returns the version
// byte as found, whatever its value. This is the entry point for
// version-directed loading, where the on-disk version is expected to
// differ from the current one.
func (f *Frame) PeekVersion(data []byte) (byte, error) {
	if len(data) < Size {
		return 0, fmt.Errorf("%w: have %d bytes", ErrTooShort, len(data))
	}
	if !bytes.Equal(data[:HeaderSize], f.Header[:]) {
		return 0, fmt.Errorf("%w: expected %v, found %v",
			ErrHeaderMismatch, f.Header[:], data[:HeaderSize])
	}
	return data[HeaderSize], nil
}
