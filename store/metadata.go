// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package store

import "fmt"

// Metadata is the result envelope returned by every successful disk
// mutation and size query: how many bytes the operation concerned,
// and the absolute path it concerned them at. For gzip writes the
// size is the compressed length actually on disk. Immutable after
// construction.
type Metadata struct {
	// Size is the byte count of the operation's subject.
	Size int64

	// Path is the absolute filesystem path the operation acted on.
	Path string
}

// String renders the envelope for logs and CLI output.
func (m Metadata) String() string {
	return fmt.Sprintf("%d bytes @ %s", m.Size, m.Path)
}
