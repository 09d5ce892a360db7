// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package store

import (
	"errors"
	"fmt"
)

// The memory-mapped variants are implemented only on unix platforms.
// Elsewhere they fail with errors.ErrUnsupported; the buffered
// operations cover the same functionality everywhere.

func errMmapUnsupported() error {
	return fmt.Errorf("memory-mapped I/O: %w", errors.ErrUnsupported)
}

func (e *Entry) ReadBytesMmap() ([]byte, error)     { return nil, errMmapUnsupported() }
func (e *Entry) ReadBytesGzipMmap() ([]byte, error) { return nil, errMmapUnsupported() }

func (e *Entry) ReadRangeMmap(start, end int64) ([]byte, error) {
	return nil, errMmapUnsupported()
}

func (e *Entry) WriteBytesMmap(data []byte) (Metadata, error) {
	return Metadata{}, errMmapUnsupported()
}

func (e *Entry) WriteBytesGzipMmap(data []byte) (Metadata, error) {
	return Metadata{}, errMmapUnsupported()
}

func (e *Entry) WriteBytesAtomicMmap(data []byte) (Metadata, error) {
	return Metadata{}, errMmapUnsupported()
}

func (e *Entry) WriteBytesAtomicGzipMmap(data []byte) (Metadata, error) {
	return Metadata{}, errMmapUnsupported()
}
