// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package store

import "errors"

var (
	// ErrUnsafePath indicates the path resolver produced a
	// non-absolute path. The engine refuses to touch the filesystem
	// through such a path.
	ErrUnsafePath = errors.New("store: resolver returned a non-absolute path")

	// ErrInvalidRange indicates a ranged read with start > end or
	// bounds outside the file.
	ErrInvalidRange = errors.New("store: invalid byte range")

	// ErrNotFramed indicates a frame-dependent operation (file
	// version inspection, version-directed loading) on a File
	// constructed without a frame.
	ErrNotFramed = errors.New("store: file has no binary frame")

	// ErrNoVersionMatch indicates that the on-disk version byte
	// matched none of the loaders supplied to LoadVersions.
	ErrNoVersionMatch = errors.New("store: no loader matches the on-disk version")
)
