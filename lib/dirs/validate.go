// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package dirs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName indicates a project, sub-directory, or file-name
// component that fails validation. All validation errors wrap this
// sentinel.
var ErrInvalidName = errors.New("dirs: invalid path component")

// Validation limits. A single component stays under the common
// filesystem name limit; the combined budget keeps the full path well
// inside every platform's path limit; the segment cap bounds how deep
// a sub-directory tree a caller can request.
const (
	maxComponentLength = 255
	maxCombinedLength  = 4000
	maxSubSegments     = 10
)

// forbiddenCharacters are rejected in every component. The set covers
// Windows-reserved filename characters plus shell metacharacters that
// make paths hazardous to pass through scripts.
const forbiddenCharacters = `<>:"'|?*^$&()`

// ValidateComponents checks the caller-supplied project name,
// optional slash-separated sub-directory path, and file-name stem.
// It is the hard precondition guarding the recursive delete
// operations: once an entry passes here, every path it can build is
// rooted under <resolver base>/<project> and no component is empty,
// so a remove-project can never walk up into an OS data root.
//
// Violations return errors wrapping [ErrInvalidName].
func ValidateComponents(project, sub, stem string) error {
	if err := validateComponent("project name", project); err != nil {
		return err
	}
	if err := validateComponent("file name", stem); err != nil {
		return err
	}

	if sub != "" {
		segments := strings.Split(strings.ReplaceAll(sub, `\`, "/"), "/")
		if len(segments) >= maxSubSegments {
			return fmt.Errorf("%w: sub-directory path has %d segments, limit is %d",
				ErrInvalidName, len(segments), maxSubSegments)
		}
		for _, segment := range segments {
			if err := validateSegment("sub-directory segment", segment); err != nil {
				return err
			}
		}
	}

	if combined := len(project) + len(sub) + len(stem); combined >= maxCombinedLength {
		return fmt.Errorf("%w: combined component length %d exceeds %d",
			ErrInvalidName, combined, maxCombinedLength)
	}
	return nil
}

// validateComponent checks a single-segment component (project or
// file stem): everything validateSegment checks, plus no path
// separators at all.
func validateComponent(what, value string) error {
	if strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("%w: %s %q contains a path separator", ErrInvalidName, what, value)
	}
	return validateSegment(what, value)
}

func validateSegment(what, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidName, what)
	}
	if len(value) >= maxComponentLength {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d",
			ErrInvalidName, what, len(value), maxComponentLength)
	}
	if value == "." || value == ".." {
		return fmt.Errorf("%w: %s %q is a relative path element", ErrInvalidName, what, value)
	}
	if strings.ContainsAny(value, forbiddenCharacters) {
		return fmt.Errorf("%w: %s %q contains a forbidden character (one of %s)",
			ErrInvalidName, what, value, forbiddenCharacters)
	}
	if strings.HasPrefix(value, " ") || strings.HasSuffix(value, " ") {
		return fmt.Errorf("%w: %s %q starts or ends with a space", ErrInvalidName, what, value)
	}
	return nil
}
