// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

// Command shelf inspects and maintains files managed by the shelf
// persistence library: resolving paths, checking existence and size,
// removing files and leftover temp artifacts, and reading the binary
// frame of framed files.
package main
