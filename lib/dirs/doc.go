// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

// Package dirs maps logical directory kinds to OS-conventional
// absolute paths and validates the path components callers supply.
//
// The persistence engine never hardcodes a filesystem location: it
// asks a [Resolver] for the base directory of a (kind, project) pair
// and joins its own sub-directories and file names underneath. The
// default resolver, [OS], follows each platform's user-directory
// conventions (XDG on Linux, ~/Library on macOS, the AppData roots on
// Windows). [Fixed] pins every kind to a single base directory, which
// is what tests and scripted tools want.
//
// Validation is deliberately front-loaded: [ValidateComponents] runs
// once when a persistence entry is constructed, so that by the time a
// recursive delete is reachable, every component of the target path is
// known to be non-empty and well-formed. A malformed project name must
// never be discovered at the remove-the-whole-tree call site.
package dirs
