// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package store

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/shelf-foundation/shelf/lib/codec"
	"github.com/shelf-foundation/shelf/lib/dirs"
)

func TestMmapWriteReadRoundtrip(t *testing.T) {
	entry, _ := testEntry(t, EntryConfig{Ext: "bin"})
	content := []byte("memory-mapped payload")

	metadata, err := entry.WriteBytesMmap(content)
	if err != nil {
		t.Fatalf("WriteBytesMmap: %v", err)
	}
	if metadata.Size != int64(len(content)) {
		t.Errorf("Metadata.Size = %d, want %d", metadata.Size, len(content))
	}

	// Readable through both the mapped and the buffered path.
	mapped, err := entry.ReadBytesMmap()
	if err != nil {
		t.Fatalf("ReadBytesMmap: %v", err)
	}
	if !bytes.Equal(mapped, content) {
		t.Errorf("ReadBytesMmap = %q, want %q", mapped, content)
	}
	buffered, err := entry.ReadBytes()
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(buffered, content) {
		t.Errorf("ReadBytes = %q, want %q", buffered, content)
	}
}

func TestMmapAtomicWrite(t *testing.T) {
	entry, _ := testEntry(t, EntryConfig{Ext: "bin"})
	content := []byte("atomic mapped payload")

	if _, err := entry.WriteBytesAtomicMmap(content); err != nil {
		t.Fatalf("WriteBytesAtomicMmap: %v", err)
	}

	read, err := entry.ReadBytes()
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(read, content) {
		t.Errorf("ReadBytes = %q, want %q", read, content)
	}

	tmpPath, err := entry.PathTmp()
	if err != nil {
		t.Fatalf("PathTmp: %v", err)
	}
	if _, err := os.Stat(tmpPath); !os.IsNotExist(err) {
		t.Errorf("temp file %s still present after atomic mmap write", tmpPath)
	}
}

func TestMmapGzipRoundtrip(t *testing.T) {
	entry, _ := testEntry(t, EntryConfig{Ext: "bin"})
	content := bytes.Repeat([]byte("mapped compressible "), 50)

	metadata, err := entry.WriteBytesAtomicGzipMmap(content)
	if err != nil {
		t.Fatalf("WriteBytesAtomicGzipMmap: %v", err)
	}
	if metadata.Size >= int64(len(content)) {
		t.Errorf("compressed size %d not smaller than input %d", metadata.Size, len(content))
	}

	read, err := entry.ReadBytesGzipMmap()
	if err != nil {
		t.Fatalf("ReadBytesGzipMmap: %v", err)
	}
	if !bytes.Equal(read, content) {
		t.Error("ReadBytesGzipMmap did not restore the original bytes")
	}
}

func TestMmapEmptyFile(t *testing.T) {
	entry, _ := testEntry(t, EntryConfig{Ext: "bin"})

	if _, err := entry.WriteBytesMmap(nil); err != nil {
		t.Fatalf("WriteBytesMmap(empty): %v", err)
	}

	data, err := entry.ReadBytesMmap()
	if err != nil {
		t.Fatalf("ReadBytesMmap(empty): %v", err)
	}
	if len(data) != 0 {
		t.Errorf("ReadBytesMmap(empty) = %d bytes, want 0", len(data))
	}
}

func TestReadRangeMmap(t *testing.T) {
	entry, _ := testEntry(t, EntryConfig{Ext: "bin"})
	if _, err := entry.WriteBytes([]byte("0123456789")); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}

	data, err := entry.ReadRangeMmap(2, 6)
	if err != nil {
		t.Fatalf("ReadRangeMmap(2, 6): %v", err)
	}
	if string(data) != "2345" {
		t.Errorf("ReadRangeMmap(2, 6) = %q, want %q", data, "2345")
	}

	// Same one-byte quirk as the buffered ReadRange.
	data, err = entry.ReadRangeMmap(5, 5)
	if err != nil {
		t.Fatalf("ReadRangeMmap(5, 5): %v", err)
	}
	if len(data) != 1 || data[0] != '5' {
		t.Errorf("ReadRangeMmap(5, 5) = %q, want the single byte %q", data, "5")
	}

	if _, err := entry.ReadRangeMmap(10, 5); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("ReadRangeMmap(10, 5) = %v, want ErrInvalidRange", err)
	}

	// Past-end ranges fail cleanly instead of faulting.
	if _, err := entry.ReadRangeMmap(8, 20); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("ReadRangeMmap(8, 20) = %v, want ErrInvalidRange", err)
	}
}

func TestSaveLoadMmap(t *testing.T) {
	file, err := New[record](Config{
		EntryConfig: EntryConfig{
			Project:  "testproject",
			Name:     "state",
			Resolver: dirs.Fixed(t.TempDir()),
		},
		Codec: codec.CBOR(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	original := record{String: "mapped", Number: 3}

	if _, err := file.SaveAtomicMmap(original); err != nil {
		t.Fatalf("SaveAtomicMmap: %v", err)
	}
	loaded, err := file.LoadMmap()
	if err != nil {
		t.Fatalf("LoadMmap: %v", err)
	}
	if loaded != original {
		t.Errorf("LoadMmap = %+v, want %+v", loaded, original)
	}

	if _, err := file.SaveGzipMmap(original); err != nil {
		t.Fatalf("SaveGzipMmap: %v", err)
	}
	loaded, err = file.LoadGzipMmap()
	if err != nil {
		t.Fatalf("LoadGzipMmap: %v", err)
	}
	if loaded != original {
		t.Errorf("LoadGzipMmap = %+v, want %+v", loaded, original)
	}
}
