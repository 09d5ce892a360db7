// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package dirs

import "fmt"

// Kind is a logical directory category. It names the role a project
// directory plays (cached data, user configuration, application data)
// without committing to any filesystem location; a [Resolver] turns a
// Kind into an absolute path for the running platform.
type Kind int

const (
	// Data is application data the user expects to keep:
	// ~/.local/share on Linux, ~/Library/Application Support on
	// macOS, %AppData% on Windows. The zero value, and the default
	// for persistence entries that don't choose otherwise.
	Data Kind = iota

	// Cache is regenerable data the OS or user may delete at any
	// time: ~/.cache on Linux, ~/Library/Caches on macOS,
	// %LocalAppData% caches on Windows.
	Cache

	// Config is user configuration: ~/.config on Linux,
	// ~/Library/Application Support on macOS, %AppData% on Windows.
	Config

	// DataLocal is machine-local application data, distinct from
	// Data only on Windows (%LocalAppData% instead of the roaming
	// %AppData%). Elsewhere it resolves identically to Data.
	DataLocal

	// Preference is user preference data, distinct from Config only
	// on macOS (~/Library/Preferences). Elsewhere it resolves
	// identically to Config.
	Preference
)

// String returns the lowercase name used in logs and CLI flags.
func (k Kind) String() string {
	switch k {
	case Data:
		return "data"
	case Cache:
		return "cache"
	case Config:
		return "config"
	case DataLocal:
		return "data-local"
	case Preference:
		return "preference"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParseKind parses the string form produced by [Kind.String].
func ParseKind(name string) (Kind, error) {
	switch name {
	case "data":
		return Data, nil
	case "cache":
		return Cache, nil
	case "config":
		return Config, nil
	case "data-local":
		return DataLocal, nil
	case "preference":
		return Preference, nil
	default:
		return 0, fmt.Errorf("unknown directory kind: %q", name)
	}
}
