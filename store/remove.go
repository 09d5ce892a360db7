// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Remove unlinks the canonical file directly. An already-absent file
// is success with a zero-size Metadata: the caller asked for the file
// to be gone, and it is. The reported size is the file's size before
// removal, best-effort.
func (e *Entry) Remove() (Metadata, error) {
	path, err := e.Path()
	if err != nil {
		return Metadata{}, err
	}
	return removeDirect(path)
}

// RemoveGzip unlinks the gzip file directly, with the same
// absent-is-success policy as Remove.
func (e *Entry) RemoveGzip() (Metadata, error) {
	path, err := e.PathGzip()
	if err != nil {
		return Metadata{}, err
	}
	return removeDirect(path)
}

// RemoveAtomic removes the canonical file in two steps: rename it to
// the temp name, then unlink the temp name. A crash between the two
// leaves a recognizable .tmp artifact — cleaned by RemoveTmp — rather
// than an ambiguous half-state, and the live path transitions from
// "complete file" to "gone" in one rename.
func (e *Entry) RemoveAtomic() (Metadata, error) {
	return e.atomicRemove(e.name, e.nameTmp)
}

// RemoveAtomicGzip removes the gzip file via the gzip temp name, with
// the same two-step sequence as RemoveAtomic.
func (e *Entry) RemoveAtomicGzip() (Metadata, error) {
	return e.atomicRemove(e.nameGzip, e.nameGzipTmp)
}

func (e *Entry) atomicRemove(finalName, tmpName string) (Metadata, error) {
	base, err := e.BaseDir()
	if err != nil {
		return Metadata{}, err
	}
	finalPath := filepath.Join(base, finalName)
	tmpPath := filepath.Join(base, tmpName)

	if _, err := os.Stat(finalPath); os.IsNotExist(err) {
		return Metadata{Size: 0, Path: finalPath}, nil
	}
	size := filesize(finalPath)

	if err := os.Rename(finalPath, tmpPath); err != nil {
		return Metadata{}, fmt.Errorf("renaming %s for removal: %w", finalPath, err)
	}
	if err := os.Remove(tmpPath); err != nil {
		return Metadata{}, fmt.Errorf("removing %s: %w", tmpPath, err)
	}

	e.logger.Debug("removed file atomically", "path", finalPath, "bytes", size)
	return Metadata{Size: size, Path: finalPath}, nil
}

// RemoveTmp deletes leftover temp artifacts (the .tmp and .gz.tmp
// names) from interrupted atomic operations. Idempotent: absent temp
// files are skipped silently. Unlike Remove, a failed deletion here
// always surfaces — clearing leftover state is this operation's
// entire purpose, so it never pretends to have done so.
func (e *Entry) RemoveTmp() error {
	base, err := e.BaseDir()
	if err != nil {
		return err
	}
	for _, name := range []string{e.nameTmp, e.nameGzipTmp} {
		path := filepath.Join(base, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing temp file %s: %w", path, err)
		}
		e.logger.Debug("removed temp file", "path", path)
	}
	return nil
}

// RemoveSub recursively deletes the first sub-directory's tree (the
// project directory itself when the entry has no sub-directories).
// Symlinks inside the tree are removed, not followed. Reachable only
// through a validated Entry, so the target can never be an ancestor
// of the project directory.
func (e *Entry) RemoveSub() (Metadata, error) {
	path, err := e.SubRoot()
	if err != nil {
		return Metadata{}, err
	}
	return e.removeTree(path)
}

// RemoveProject recursively deletes the entire project directory.
func (e *Entry) RemoveProject() (Metadata, error) {
	path, err := e.ProjectDir()
	if err != nil {
		return Metadata{}, err
	}
	return e.removeTree(path)
}

func (e *Entry) removeTree(path string) (Metadata, error) {
	size := filesize(path)
	if err := os.RemoveAll(path); err != nil {
		return Metadata{}, fmt.Errorf("removing directory tree %s: %w", path, err)
	}
	e.logger.Debug("removed directory tree", "path", path)
	return Metadata{Size: size, Path: path}, nil
}

func removeDirect(path string) (Metadata, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Metadata{Size: 0, Path: path}, nil
	}
	size := filesize(path)
	if err := os.Remove(path); err != nil {
		return Metadata{}, fmt.Errorf("removing %s: %w", path, err)
	}
	return Metadata{Size: size, Path: path}, nil
}
