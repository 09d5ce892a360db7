// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// WriteBytes writes data to the canonical file directly, truncating
// or creating it as needed. This is the fast, unsafe path: an
// interruption mid-write leaves a torn file at the final path. Use
// WriteBytesAtomic when that matters.
func (e *Entry) WriteBytes(data []byte) (Metadata, error) {
	return e.directWrite(data, e.name)
}

// WriteBytesGzip gzip-compresses data and writes it to the gzip file
// directly, with the same torn-write hazard as WriteBytes. The
// returned Metadata reports the compressed size.
func (e *Entry) WriteBytesGzip(data []byte) (Metadata, error) {
	compressed, err := gzipCompress(data)
	if err != nil {
		return Metadata{}, err
	}
	return e.directWrite(compressed, e.nameGzip)
}

// WriteBytesAtomic writes data to the temp file and renames it over
// the canonical file. The canonical path always holds either the
// previous complete file or the new complete file — never a torn
// write — provided the filesystem's rename is atomic. No fsync is
// issued before the rename: a crash in the window loses this update
// but never corrupts the prior state.
func (e *Entry) WriteBytesAtomic(data []byte) (Metadata, error) {
	return e.atomicWrite(data, e.nameTmp, e.name)
}

// WriteBytesAtomicGzip gzip-compresses data and writes it atomically
// to the gzip file via the gzip temp name. The returned Metadata
// reports the compressed size.
func (e *Entry) WriteBytesAtomicGzip(data []byte) (Metadata, error) {
	compressed, err := gzipCompress(data)
	if err != nil {
		return Metadata{}, err
	}
	return e.atomicWrite(compressed, e.nameGzipTmp, e.nameGzip)
}

// directWrite is the shared fast path: ensure the directory, write
// the file in place.
func (e *Entry) directWrite(data []byte, fileName string) (Metadata, error) {
	base, err := e.Mkdir()
	if err != nil {
		return Metadata{}, err
	}
	path := filepath.Join(base, fileName)

	if err := writeFile(path, data); err != nil {
		return Metadata{}, err
	}

	e.logger.Debug("wrote file", "path", path, "bytes", len(data))
	return Metadata{Size: int64(len(data)), Path: path}, nil
}

// atomicWrite is the shared crash-safe path: write the full buffer to
// the temp name, then rename it over the final name. On any failure
// the temp file is removed before the error is reported; if that
// removal itself fails, the removal error is what propagates and the
// original failure is logged instead (a leftover temp file is the
// state RemoveTmp exists to clean, so failing to clean it is the more
// actionable error).
func (e *Entry) atomicWrite(data []byte, tmpName, finalName string) (Metadata, error) {
	base, err := e.Mkdir()
	if err != nil {
		return Metadata{}, err
	}
	tmpPath := filepath.Join(base, tmpName)
	finalPath := filepath.Join(base, finalName)

	if err := writeFile(tmpPath, data); err != nil {
		return Metadata{}, e.cleanupTmp(tmpPath, err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		renameErr := fmt.Errorf("renaming %s into place: %w", tmpPath, err)
		return Metadata{}, e.cleanupTmp(tmpPath, renameErr)
	}

	e.logger.Debug("wrote file atomically", "path", finalPath, "bytes", len(data))
	return Metadata{Size: int64(len(data)), Path: finalPath}, nil
}

// cleanupTmp removes the temp file after a failed atomic step and
// decides which error surfaces: normally the original failure, but a
// failed cleanup displaces it.
func (e *Entry) cleanupTmp(tmpPath string, cause error) error {
	if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
		e.logger.Warn("temp file cleanup failed, masking original error",
			"path", tmpPath, "original_error", cause)
		return fmt.Errorf("removing temp file %s after failure: %w", tmpPath, err)
	}
	return cause
}

func writeFile(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// gzipCompress compresses the entire buffer at BestSpeed. Saves are
// latency-sensitive and the content is already compact serialized
// data, so the fast level is the right trade.
func gzipCompress(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := gzip.NewWriterLevel(&buffer, gzip.BestSpeed)
	if err != nil {
		return nil, fmt.Errorf("initializing gzip writer: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("compressing: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finishing gzip stream: %w", err)
	}
	return buffer.Bytes(), nil
}
