// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package store

// Umask is a no-op on platforms without a process umask; it returns 0.
func Umask(mask int) int {
	return 0
}
