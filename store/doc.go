// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

// Package store is the persistence engine: it places a value's file
// under the OS-conventional directory for its project, serializes the
// value with a pluggable codec, and moves the bytes to and from disk
// safely.
//
// The package has two layers. [Entry] is the byte-level engine: it
// owns the resolved location (directory kind, project, sub-path, and
// the four derived file names), raw reads and writes, the gzip
// variants, the memory-mapped variants, and the directory lifecycle
// operations. [File] binds an Entry to a codec.Codec and an optional
// frame.Frame, giving typed Save/Load operations over any value.
//
// # Atomic operations
//
// The Atomic write variants never leave a partially-written file at
// the final path. Bytes are written to the sibling temp name
// ({file}.{ext}.tmp) and renamed into place; on platforms where
// rename is atomic, a reader sees either the previous complete file
// or the new complete file, never a torn write. A crash between the
// temp write and the rename loses the update but never corrupts the
// prior state. The engine does not fsync before renaming: atomicity
// is guaranteed, durability is not.
//
// Atomic removal mirrors this: the live file is renamed to the temp
// name, then unlinked. A crash mid-removal leaves a recognizable
// .tmp artifact, which [Entry.RemoveTmp] cleans up.
//
// # Concurrency
//
// Every operation is synchronous and blocking, and no cross-process
// locking is provided. The design assumes a single writer per file
// path: two concurrent atomic saves to the same path share the same
// temp name and race on rename, so the last rename wins and the
// loser's update is silently lost. Readers are always safe; racing
// writers are not.
//
// The memory-mapped variants additionally require that no other
// process truncates or remaps the file while the mapping is live;
// this precondition is documented, not enforced.
package store
