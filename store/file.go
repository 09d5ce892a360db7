// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"io"
	"os"

	"github.com/shelf-foundation/shelf/lib/codec"
	"github.com/shelf-foundation/shelf/lib/frame"
)

// Config describes a typed file: where it lives (EntryConfig), how
// its values serialize (Codec), and optionally the binary frame its
// payloads carry on disk.
type Config struct {
	EntryConfig

	// Codec serializes and deserializes values. Required.
	Codec codec.Codec

	// Frame, when non-nil, is prepended to every encoded payload and
	// validated and stripped on every load. Binary formats use this
	// for on-disk schema identity and versioning; text formats
	// normally leave it nil.
	Frame *frame.Frame
}

// File binds an Entry to a codec and an optional frame, providing
// typed save and load operations for values of type T.
type File[T any] struct {
	*Entry

	codec codec.Codec
	frame *frame.Frame
}

// New validates the configuration and constructs the typed file.
// When cfg.Ext is empty, the codec's conventional extension is used.
func New[T any](cfg Config) (*File[T], error) {
	if cfg.Codec == nil {
		return nil, fmt.Errorf("store: Codec is required")
	}
	if cfg.Ext == "" {
		cfg.Ext = cfg.Codec.Ext()
	}

	entry, err := NewEntry(cfg.EntryConfig)
	if err != nil {
		return nil, err
	}
	return &File[T]{Entry: entry, codec: cfg.Codec, frame: cfg.Frame}, nil
}

// Encode produces the exact bytes a save would write, before any
// compression: the codec encoding, frame-prefixed when the file is
// framed. Exposed for callers that move bytes themselves.
func (f *File[T]) Encode(v T) ([]byte, error) {
	data, err := f.codec.Marshal(v)
	if err != nil {
		return nil, err
	}
	if f.frame != nil {
		data = f.frame.Prepend(data)
	}
	return data, nil
}

// Decode reconstructs a value from bytes produced by Encode (or read
// from an uncompressed saved file). For framed files the frame is
// validated and stripped before the codec runs; a missing or
// mismatching frame fails here, never inside the codec.
func (f *File[T]) Decode(data []byte) (T, error) {
	var value T
	if f.frame != nil {
		payload, err := f.frame.Strip(data)
		if err != nil {
			return value, err
		}
		data = payload
	}
	if err := f.codec.Unmarshal(data, &value); err != nil {
		return value, err
	}
	return value, nil
}

// Save encodes v and writes it directly — the fast path with no
// interruption safety.
func (f *File[T]) Save(v T) (Metadata, error) {
	return f.write(v, (*Entry).WriteBytes)
}

// SaveAtomic encodes v and writes it via the temp-then-rename
// sequence; the canonical path never holds a torn write.
func (f *File[T]) SaveAtomic(v T) (Metadata, error) {
	return f.write(v, (*Entry).WriteBytesAtomic)
}

// SaveGzip encodes v and writes it gzip-compressed to the gzip file.
// Compression wraps the entire encoded buffer, frame included.
func (f *File[T]) SaveGzip(v T) (Metadata, error) {
	return f.write(v, (*Entry).WriteBytesGzip)
}

// SaveAtomicGzip combines SaveGzip's compression with SaveAtomic's
// temp-then-rename sequence.
func (f *File[T]) SaveAtomicGzip(v T) (Metadata, error) {
	return f.write(v, (*Entry).WriteBytesAtomicGzip)
}

// SaveMmap is Save through a memory mapping. Unix only.
func (f *File[T]) SaveMmap(v T) (Metadata, error) {
	return f.write(v, (*Entry).WriteBytesMmap)
}

// SaveGzipMmap is SaveGzip through a memory mapping. Unix only.
func (f *File[T]) SaveGzipMmap(v T) (Metadata, error) {
	return f.write(v, (*Entry).WriteBytesGzipMmap)
}

// SaveAtomicMmap is SaveAtomic through a memory mapping. Unix only.
func (f *File[T]) SaveAtomicMmap(v T) (Metadata, error) {
	return f.write(v, (*Entry).WriteBytesAtomicMmap)
}

// SaveAtomicGzipMmap is SaveAtomicGzip through a memory mapping.
// Unix only.
func (f *File[T]) SaveAtomicGzipMmap(v T) (Metadata, error) {
	return f.write(v, (*Entry).WriteBytesAtomicGzipMmap)
}

func (f *File[T]) write(v T, op func(*Entry, []byte) (Metadata, error)) (Metadata, error) {
	data, err := f.Encode(v)
	if err != nil {
		return Metadata{}, err
	}
	return op(f.Entry, data)
}

// Load reads and decodes the canonical file.
func (f *File[T]) Load() (T, error) {
	return f.read((*Entry).ReadBytes)
}

// LoadGzip reads, decompresses, and decodes the gzip file. The frame,
// when present, is validated after decompression — it sits inside the
// compressed stream.
func (f *File[T]) LoadGzip() (T, error) {
	return f.read((*Entry).ReadBytesGzip)
}

// LoadMmap is Load through a memory mapping. Unix only.
func (f *File[T]) LoadMmap() (T, error) {
	return f.read((*Entry).ReadBytesMmap)
}

// LoadGzipMmap is LoadGzip through a memory mapping. Unix only.
func (f *File[T]) LoadGzipMmap() (T, error) {
	return f.read((*Entry).ReadBytesGzipMmap)
}

func (f *File[T]) read(op func(*Entry) ([]byte, error)) (T, error) {
	data, err := op(f.Entry)
	if err != nil {
		var zero T
		return zero, err
	}
	return f.Decode(data)
}

// FileVersion reads the version byte of the on-disk file: the first
// 25 bytes are read, the header is required to match, and byte 24 is
// returned whatever its value. Only meaningful on the uncompressed
// canonical file — a gzip file must be fully decompressed before its
// frame is visible, which this deliberately does not do.
func (f *File[T]) FileVersion() (byte, error) {
	if f.frame == nil {
		return 0, ErrNotFramed
	}
	path, err := f.Path()
	if err != nil {
		return 0, err
	}
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	prefix := make([]byte, frame.Size)
	if _, err := io.ReadFull(file, prefix); err != nil {
		return 0, fmt.Errorf("reading frame of %s: %w", path, err)
	}
	return f.frame.PeekVersion(prefix)
}

// HeaderText reads the first 24 on-disk bytes as a string, for
// schemas whose header is chosen to be printable ASCII.
func (f *File[T]) HeaderText() (string, error) {
	data, err := f.ReadRange(0, frame.HeaderSize)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// VersionLoader pairs an on-disk version byte with the loader that
// understands that revision's payload. The loader typically decodes
// the historical schema into its own type and upgrades it to T.
type VersionLoader[T any] struct {
	Version byte
	Load    func() (T, error)
}

// LoadVersions reads the on-disk version via FileVersion and invokes
// the first loader in list order whose Version matches, returning its
// value and the matched version. Duplicate version tags are not
// rejected; the first entry wins. No match fails with an error
// wrapping ErrNoVersionMatch.
func (f *File[T]) LoadVersions(loaders []VersionLoader[T]) (T, byte, error) {
	var zero T

	version, err := f.FileVersion()
	if err != nil {
		return zero, 0, err
	}
	for _, loader := range loaders {
		if loader.Version != version {
			continue
		}
		value, err := loader.Load()
		if err != nil {
			return zero, version, fmt.Errorf("loading version %d: %w", version, err)
		}
		return value, version, nil
	}
	return zero, version, fmt.Errorf("%w: on-disk version %d", ErrNoVersionMatch, version)
}
