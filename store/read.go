// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// ReadBytes reads the whole canonical file. A missing file is an
// error, never an empty result.
func (e *Entry) ReadBytes() ([]byte, error) {
	path, err := e.Path()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// ReadBytesGzip reads the gzip file and returns the decompressed
// bytes. The file is streamed through the decoder rather than
// decompressed from a full in-memory copy.
func (e *Entry) ReadBytesGzip() ([]byte, error) {
	path, err := e.PathGzip()
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	reader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("reading gzip header of %s: %w", path, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	return data, nil
}

// ReadString reads the whole canonical file as a string.
func (e *Entry) ReadString() (string, error) {
	data, err := e.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadRange reads the byte range [start, end) of the canonical file.
// start > end fails with ErrInvalidRange. start == end reads one
// byte, not zero — a long-standing quirk callers depend on, kept
// deliberately (an empty read would be the consistent behavior).
func (e *Entry) ReadRange(start, end int64) ([]byte, error) {
	if start < 0 || start > end {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, start, end)
	}
	length := end - start
	if length == 0 {
		length = 1
	}

	path, err := e.Path()
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	buffer := make([]byte, length)
	if _, err := file.ReadAt(buffer, start); err != nil {
		return nil, fmt.Errorf("reading %s bytes [%d, %d): %w", path, start, start+length, err)
	}
	return buffer, nil
}

// Exists reports whether the canonical file exists. Absence is a
// false result, not an error; an error means existence could not be
// determined at all (for example, permission denied on a parent).
func (e *Entry) Exists() (bool, error) {
	path, err := e.Path()
	if err != nil {
		return false, err
	}
	return exists(path)
}

// ExistsGzip reports whether the gzip file exists, with the same
// absence-versus-error split as Exists.
func (e *Entry) ExistsGzip() (bool, error) {
	path, err := e.PathGzip()
	if err != nil {
		return false, err
	}
	return exists(path)
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
}

// Size returns the canonical file's size. A missing file is an error.
func (e *Entry) Size() (Metadata, error) {
	path, err := e.Path()
	if err != nil {
		return Metadata{}, err
	}
	return statSize(path)
}

// SizeGzip returns the gzip file's on-disk (compressed) size.
func (e *Entry) SizeGzip() (Metadata, error) {
	path, err := e.PathGzip()
	if err != nil {
		return Metadata{}, err
	}
	return statSize(path)
}

// SubSize returns the directory-entry size of the first
// sub-directory (or the project directory when the entry has none).
func (e *Entry) SubSize() (Metadata, error) {
	path, err := e.SubRoot()
	if err != nil {
		return Metadata{}, err
	}
	return statSize(path)
}

// ProjectSize returns the directory-entry size of the project
// directory.
func (e *Entry) ProjectSize() (Metadata, error) {
	path, err := e.ProjectDir()
	if err != nil {
		return Metadata{}, err
	}
	return statSize(path)
}

func statSize(path string) (Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("sizing %s: %w", path, err)
	}
	return Metadata{Size: info.Size(), Path: path}, nil
}
