// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package store

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sys/unix"
)

// The memory-mapped variants perform the same logical operations as
// their buffered counterparts through a mapped view of the file.
// They carry an enforced-nowhere precondition: no other process may
// truncate or remap the file while the mapping is live. A concurrent
// truncation turns an ordinary read into a fault at the memory-access
// level, which the engine cannot intercept.

// ReadBytesMmap reads the whole canonical file through a read-only
// mapping.
func (e *Entry) ReadBytesMmap() ([]byte, error) {
	path, err := e.Path()
	if err != nil {
		return nil, err
	}
	return mmapReadAll(path)
}

// ReadBytesGzipMmap maps the gzip file read-only and returns the
// decompressed bytes.
func (e *Entry) ReadBytesGzipMmap() ([]byte, error) {
	path, err := e.PathGzip()
	if err != nil {
		return nil, err
	}
	compressed, err := mmapReadAll(path)
	if err != nil {
		return nil, err
	}
	reader, err := gzip.NewReader(bytes.NewReader(compressed))
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

// ReadRangeMmap reads the byte range [start, end) of the canonical
// file through a read-only mapping. Same range semantics as
// ReadRange, including the one-byte read when start == end; a range
// reaching past the mapped length fails with ErrInvalidRange rather
// than faulting.
func (e *Entry) ReadRangeMmap(start, end int64) ([]byte, error) {
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
	mapped, unmap, err := mmapFile(path)
	if err != nil {
		return nil, err
	}
	defer unmap()

	if start+length > int64(len(mapped)) {
		return nil, fmt.Errorf("%w: [%d, %d) exceeds file length %d",
			ErrInvalidRange, start, start+length, len(mapped))
	}
	buffer := make([]byte, length)
	copy(buffer, mapped[start:start+length])
	return buffer, nil
}

// WriteBytesMmap writes data to the canonical file through a mapping,
// flushing asynchronously. Like WriteBytes, this is the fast path
// with no interruption safety.
func (e *Entry) WriteBytesMmap(data []byte) (Metadata, error) {
	return e.mmapDirectWrite(data, e.name)
}

// WriteBytesGzipMmap gzip-compresses data and writes it to the gzip
// file through a mapping, flushing asynchronously.
func (e *Entry) WriteBytesGzipMmap(data []byte) (Metadata, error) {
	compressed, err := gzipCompress(data)
	if err != nil {
		return Metadata{}, err
	}
	return e.mmapDirectWrite(compressed, e.nameGzip)
}

// WriteBytesAtomicMmap writes data to the temp file through a
// mapping, flushes synchronously, and renames it over the canonical
// file. The synchronous flush before rename keeps the atomic
// guarantee meaningful: the bytes the rename publishes are the bytes
// that were mapped.
func (e *Entry) WriteBytesAtomicMmap(data []byte) (Metadata, error) {
	return e.mmapAtomicWrite(data, e.nameTmp, e.name)
}

// WriteBytesAtomicGzipMmap gzip-compresses data and writes it
// atomically to the gzip file through a mapping.
func (e *Entry) WriteBytesAtomicGzipMmap(data []byte) (Metadata, error) {
	compressed, err := gzipCompress(data)
	if err != nil {
		return Metadata{}, err
	}
	return e.mmapAtomicWrite(compressed, e.nameGzipTmp, e.nameGzip)
}

func (e *Entry) mmapDirectWrite(data []byte, fileName string) (Metadata, error) {
	base, err := e.Mkdir()
	if err != nil {
		return Metadata{}, err
	}
	path := filepath.Join(base, fileName)

	if err := mmapWriteFile(path, data, unix.MS_ASYNC); err != nil {
		return Metadata{}, err
	}

	e.logger.Debug("wrote file via mmap", "path", path, "bytes", len(data))
	return Metadata{Size: int64(len(data)), Path: path}, nil
}

func (e *Entry) mmapAtomicWrite(data []byte, tmpName, finalName string) (Metadata, error) {
	base, err := e.Mkdir()
	if err != nil {
		return Metadata{}, err
	}
	tmpPath := filepath.Join(base, tmpName)
	finalPath := filepath.Join(base, finalName)

	if err := mmapWriteFile(tmpPath, data, unix.MS_SYNC); err != nil {
		return Metadata{}, e.cleanupTmp(tmpPath, err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		renameErr := fmt.Errorf("renaming %s into place: %w", tmpPath, err)
		return Metadata{}, e.cleanupTmp(tmpPath, renameErr)
	}

	e.logger.Debug("wrote file atomically via mmap", "path", finalPath, "bytes", len(data))
	return Metadata{Size: int64(len(data)), Path: finalPath}, nil
}

// mmapWriteFile sizes the file to the buffer, maps it read-write,
// copies, and flushes with the given mode (MS_ASYNC for plain saves,
// MS_SYNC before an atomic rename). A zero-length buffer skips the
// mapping: mmap of length zero is an error on every platform, and
// the truncate already produced the correct file.
func mmapWriteFile(path string, data []byte, flushFlags int) error {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if len(data) == 0 {
		return nil
	}
	if err := file.Truncate(int64(len(data))); err != nil {
		return fmt.Errorf("sizing %s to %d bytes: %w", path, len(data), err)
	}

	mapped, err := unix.Mmap(int(file.Fd()), 0, len(data),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("mapping %s: %w", path, err)
	}

	copy(mapped, data)

	if err := unix.Msync(mapped, flushFlags); err != nil {
		unix.Munmap(mapped)
		return fmt.Errorf("flushing mapping of %s: %w", path, err)
	}
	if err := unix.Munmap(mapped); err != nil {
		return fmt.Errorf("unmapping %s: %w", path, err)
	}
	return nil
}

func mmapReadAll(path string) ([]byte, error) {
	mapped, unmap, err := mmapFile(path)
	if err != nil {
		return nil, err
	}
	defer unmap()

	data := make([]byte, len(mapped))
	copy(data, mapped)
	return data, nil
}

// mmapFile maps the whole file read-only. An empty file yields an
// empty slice and a no-op unmap, since zero-length mappings are
// invalid.
func mmapFile(path string) ([]byte, func(), error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("sizing %s: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, func() {}, nil
	}

	mapped, err := unix.Mmap(int(file.Fd()), 0, int(info.Size()),
		unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, fmt.Errorf("mapping %s: %w", path, err)
	}
	return mapped, func() { unix.Munmap(mapped) }, nil
}
