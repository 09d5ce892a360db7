// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shelf-foundation/shelf/lib/dirs"
)

// EntryConfig describes where an entry's file lives. Project, Sub,
// and Name are validated at construction time; see
// dirs.ValidateComponents for the rules.
type EntryConfig struct {
	// Dir is the logical directory kind the project directory is
	// resolved under. The zero value is dirs.Data.
	Dir dirs.Kind

	// Project is the project directory name, appended to the
	// resolved OS base directory. Required.
	Project string

	// Sub is an optional slash-separated sub-directory path between
	// the project directory and the file.
	Sub string

	// Name is the file name stem, without extension. Required.
	Name string

	// Ext is the file extension without the dot. Empty means the
	// file carries no extension.
	Ext string

	// Resolver maps (Dir, Project) to the absolute base directory.
	// If nil, dirs.OS() is used.
	Resolver dirs.Resolver

	// Logger receives operation traces at Debug and cleanup
	// anomalies at Warn. If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Entry is the byte-level persistence engine for one file location.
// Its identity — directory kind, project, sub-path, and the four
// derived file names — is fixed at construction and never recomputed,
// so save and load can never disagree about where the file lives.
// Paths are re-resolved from the Resolver on every operation; only
// the names are cached.
type Entry struct {
	kind        dirs.Kind
	project     string
	subSegments []string

	// The four derived names, computed once: canonical, gzip, temp,
	// gzip temp. Same stem, differing only in suffix.
	name        string
	nameGzip    string
	nameTmp     string
	nameGzipTmp string

	resolver dirs.Resolver
	logger   *slog.Logger
}

// NewEntry validates the configuration and derives the entry's four
// file names. Validation failures wrap dirs.ErrInvalidName; once an
// Entry exists, every path it builds is rooted under the resolver's
// base directory for the project.
func NewEntry(cfg EntryConfig) (*Entry, error) {
	canonical := cfg.Name
	if cfg.Ext != "" {
		canonical = cfg.Name + "." + cfg.Ext
	}

	if err := dirs.ValidateComponents(cfg.Project, cfg.Sub, canonical); err != nil {
		return nil, err
	}

	resolver := cfg.Resolver
	if resolver == nil {
		resolver = dirs.OS()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var subSegments []string
	if cfg.Sub != "" {
		// Same separator normalization as the validator, so the
		// segments acted on are exactly the segments validated.
		subSegments = strings.Split(strings.ReplaceAll(cfg.Sub, `\`, "/"), "/")
	}

	return &Entry{
		kind:        cfg.Dir,
		project:     cfg.Project,
		subSegments: subSegments,
		name:        canonical,
		nameGzip:    canonical + ".gz",
		nameTmp:     canonical + ".tmp",
		nameGzipTmp: canonical + ".gz.tmp",
		resolver:    resolver,
		logger:      logger,
	}, nil
}

// Name returns the canonical file name ({stem}.{ext}).
func (e *Entry) Name() string { return e.name }

// NameGzip returns the gzip file name ({stem}.{ext}.gz).
func (e *Entry) NameGzip() string { return e.nameGzip }

// NameTmp returns the temp file name ({stem}.{ext}.tmp).
func (e *Entry) NameTmp() string { return e.nameTmp }

// NameGzipTmp returns the gzip temp file name ({stem}.{ext}.gz.tmp).
func (e *Entry) NameGzipTmp() string { return e.nameGzipTmp }

// ProjectDir resolves the absolute project directory: the resolver's
// base for this entry's kind plus the project name.
func (e *Entry) ProjectDir() (string, error) {
	path, err := e.resolver.Resolve(e.kind, e.project)
	if err != nil {
		return "", fmt.Errorf("resolving %s directory for project %q: %w", e.kind, e.project, err)
	}
	// Defense in depth: a resolver returning a relative path would
	// make every subsequent operation act on a working-directory-
	// dependent location.
	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, path)
	}
	return path, nil
}

// BaseDir resolves the directory the entry's files live in: the
// project directory plus all sub-directory segments.
func (e *Entry) BaseDir() (string, error) {
	project, err := e.ProjectDir()
	if err != nil {
		return "", err
	}
	if len(e.subSegments) == 0 {
		return project, nil
	}
	return filepath.Join(append([]string{project}, e.subSegments...)...), nil
}

// SubRoot resolves the first sub-directory segment under the project
// directory — the root of the tree RemoveSub deletes. Equals
// ProjectDir when the entry has no sub-directories.
func (e *Entry) SubRoot() (string, error) {
	project, err := e.ProjectDir()
	if err != nil {
		return "", err
	}
	if len(e.subSegments) == 0 {
		return project, nil
	}
	return filepath.Join(project, e.subSegments[0]), nil
}

// Path resolves the absolute path of the canonical file.
func (e *Entry) Path() (string, error) { return e.resolve(e.name) }

// PathGzip resolves the absolute path of the gzip file.
func (e *Entry) PathGzip() (string, error) { return e.resolve(e.nameGzip) }

// PathTmp resolves the absolute path of the temp file.
func (e *Entry) PathTmp() (string, error) { return e.resolve(e.nameTmp) }

// PathGzipTmp resolves the absolute path of the gzip temp file.
func (e *Entry) PathGzipTmp() (string, error) { return e.resolve(e.nameGzipTmp) }

func (e *Entry) resolve(fileName string) (string, error) {
	base, err := e.BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, fileName), nil
}

// Mkdir recursively creates the entry's base directory and returns
// its path. Already-exists is success.
func (e *Entry) Mkdir() (string, error) {
	base, err := e.BaseDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", base, err)
	}
	return base, nil
}

// Touch creates the base directory and an empty canonical file,
// truncating any existing content. This is the marker-file idiom: an
// entry with an empty extension and no codec whose only signal is
// existence.
func (e *Entry) Touch() error {
	if _, err := e.Mkdir(); err != nil {
		return err
	}
	path, err := e.Path()
	if err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("touching %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// filesize returns the size of the file or directory entry at path,
// or 0 when it cannot be determined. Best-effort by policy: size
// queries attached to other operations never turn those operations
// into failures.
func filesize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
