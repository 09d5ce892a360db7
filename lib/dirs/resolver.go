// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package dirs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrUnavailable indicates that the OS convention for a directory
// kind could not be determined (typically a missing HOME or AppData
// environment on a stripped-down system). Resolution failures wrap
// this sentinel so callers can classify them with errors.Is.
var ErrUnavailable = errors.New("dirs: OS directory convention unavailable")

// Resolver maps a (kind, project) pair to the absolute base directory
// the project's files live under. The persistence engine joins
// sub-directories and file names itself; a Resolver only answers
// "where does this project's data of this kind go".
//
// Implementations must return an absolute path. The engine re-checks
// absoluteness before every write as defense in depth, but a resolver
// returning relative paths is broken, not merely inconvenient.
type Resolver interface {
	Resolve(kind Kind, project string) (string, error)
}

// OS returns the default resolver, following the running platform's
// user-directory conventions via the standard library lookups.
func OS() Resolver {
	return osResolver{}
}

// Fixed returns a resolver that places every kind under
// base/<project>, ignoring OS conventions entirely. Tests point it at
// a temporary directory; scripts use it to operate on an explicit
// tree.
func Fixed(base string) Resolver {
	return fixedResolver{base: base}
}

type osResolver struct{}

func (osResolver) Resolve(kind Kind, project string) (string, error) {
	base, err := osBase(kind)
	if err != nil {
		return "", fmt.Errorf("%w: resolving %s: %v", ErrUnavailable, kind, err)
	}
	return filepath.Join(base, project), nil
}

// osBase returns the platform root for a kind, before the project
// name is appended. The project name is appended verbatim on every
// platform; no per-OS case munging.
func osBase(kind Kind) (string, error) {
	switch kind {
	case Cache:
		return os.UserCacheDir()
	case Config:
		return os.UserConfigDir()
	case Data:
		return osDataDir()
	case DataLocal:
		if runtime.GOOS == "windows" {
			if dir := os.Getenv("LocalAppData"); dir != "" {
				return dir, nil
			}
			return "", errors.New("%LocalAppData% is not defined")
		}
		return osDataDir()
	case Preference:
		if runtime.GOOS == "darwin" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			return filepath.Join(home, "Library", "Preferences"), nil
		}
		return os.UserConfigDir()
	default:
		return "", fmt.Errorf("unknown directory kind: %d", int(kind))
	}
}

func osDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		// Roaming application data, same root as user config.
		return os.UserConfigDir()
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}

type fixedResolver struct {
	base string
}

func (r fixedResolver) Resolve(kind Kind, project string) (string, error) {
	absolute, err := filepath.Abs(r.base)
	if err != nil {
		return "", fmt.Errorf("%w: resolving fixed base %q: %v", ErrUnavailable, r.base, err)
	}
	return filepath.Join(absolute, project), nil
}
