// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package store

import "golang.org/x/sys/unix"

// Umask sets the process umask and returns the previous value. This
// affects every file the process creates, not just this package's —
// it exists for callers that want saved files group- or
// world-unreadable without threading permission bits through every
// call.
func Umask(mask int) int {
	return unix.Umask(mask)
}
