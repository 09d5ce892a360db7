// Copyright 2026 The Shelf Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/pflag"

	"github.com/shelf-foundation/shelf/lib/dirs"
	"github.com/shelf-foundation/shelf/lib/frame"
	"github.com/shelf-foundation/shelf/lib/version"
	"github.com/shelf-foundation/shelf/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	subcommand := os.Args[1]
	arguments := os.Args[2:]
	switch subcommand {
	case "path":
		return runPath(arguments)
	case "exists":
		return runExists(arguments)
	case "size":
		return runSize(arguments)
	case "rm":
		return runRemove(arguments)
	case "rm-tmp":
		return runRemoveTmp(arguments)
	case "mkdir":
		return runMkdir(arguments)
	case "touch":
		return runTouch(arguments)
	case "header":
		return runHeader(arguments)
	case "version":
		fmt.Printf("shelf %s\n", version.Info())
		return nil
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: shelf <subcommand> [flags]

Subcommands:
  path      Print the resolved paths of an entry
  exists    Check whether an entry's file exists
  size      Print an entry's file size
  rm        Remove an entry's file
  rm-tmp    Remove leftover temp artifacts
  mkdir     Create an entry's directory tree
  touch     Create an entry's empty marker file
  header    Print the binary frame of an entry's file
  version   Print version information

Every subcommand locates its entry with --project and --name plus the
optional --dir, --sub, and --ext flags. --root overrides the OS
directory conventions with a fixed base directory.

Run 'shelf <subcommand> --help' for subcommand flags.
`)
}

// entryFlags registers the location flags shared by every subcommand
// and returns a constructor that builds the entry after parsing.
func entryFlags(flags *pflag.FlagSet) func() (*store.Entry, error) {
	directory := flags.String("dir", "data", "directory kind: data, cache, config, data-local, preference")
	project := flags.String("project", "", "project directory name (required)")
	sub := flags.String("sub", "", "slash-separated sub-directory path")
	name := flags.String("name", "", "file name stem (required)")
	ext := flags.String("ext", "", "file extension without the dot")
	root := flags.String("root", "", "override OS conventions with this base directory")

	return func() (*store.Entry, error) {
		kind, err := dirs.ParseKind(*directory)
		if err != nil {
			return nil, err
		}
		var resolver dirs.Resolver
		if *root != "" {
			resolver = dirs.Fixed(*root)
		}
		return store.NewEntry(store.EntryConfig{
			Dir:      kind,
			Project:  *project,
			Sub:      *sub,
			Name:     *name,
			Ext:      *ext,
			Resolver: resolver,
		})
	}
}

func runPath(arguments []string) error {
	flags := pflag.NewFlagSet("path", pflag.ContinueOnError)
	newEntry := entryFlags(flags)
	if err := flags.Parse(arguments); err != nil {
		return err
	}
	entry, err := newEntry()
	if err != nil {
		return err
	}

	rows := []struct {
		label   string
		resolve func() (string, error)
	}{
		{"file", entry.Path},
		{"gzip", entry.PathGzip},
		{"tmp", entry.PathTmp},
		{"gzip-tmp", entry.PathGzipTmp},
		{"base", entry.BaseDir},
		{"project", entry.ProjectDir},
	}
	for _, row := range rows {
		path, err := row.resolve()
		if err != nil {
			return err
		}
		fmt.Printf("%-8s  %s\n", row.label, path)
	}
	return nil
}

func runExists(arguments []string) error {
	flags := pflag.NewFlagSet("exists", pflag.ContinueOnError)
	newEntry := entryFlags(flags)
	gzip := flags.Bool("gzip", false, "check the gzip file instead of the canonical file")
	if err := flags.Parse(arguments); err != nil {
		return err
	}
	entry, err := newEntry()
	if err != nil {
		return err
	}

	present, err := entry.Exists()
	if *gzip {
		present, err = entry.ExistsGzip()
	}
	if err != nil {
		return err
	}
	fmt.Println(present)
	if !present {
		os.Exit(1)
	}
	return nil
}

func runSize(arguments []string) error {
	flags := pflag.NewFlagSet("size", pflag.ContinueOnError)
	newEntry := entryFlags(flags)
	gzip := flags.Bool("gzip", false, "size the gzip file instead of the canonical file")
	if err := flags.Parse(arguments); err != nil {
		return err
	}
	entry, err := newEntry()
	if err != nil {
		return err
	}

	metadata, err := entry.Size()
	if *gzip {
		metadata, err = entry.SizeGzip()
	}
	if err != nil {
		return err
	}
	fmt.Println(metadata)
	return nil
}

func runRemove(arguments []string) error {
	flags := pflag.NewFlagSet("rm", pflag.ContinueOnError)
	newEntry := entryFlags(flags)
	gzip := flags.Bool("gzip", false, "remove the gzip file instead of the canonical file")
	atomic := flags.Bool("atomic", true, "remove via the rename-then-unlink sequence")
	if err := flags.Parse(arguments); err != nil {
		return err
	}
	entry, err := newEntry()
	if err != nil {
		return err
	}

	var metadata store.Metadata
	switch {
	case *atomic && *gzip:
		metadata, err = entry.RemoveAtomicGzip()
	case *atomic:
		metadata, err = entry.RemoveAtomic()
	case *gzip:
		metadata, err = entry.RemoveGzip()
	default:
		metadata, err = entry.Remove()
	}
	if err != nil {
		return err
	}
	fmt.Printf("removed %s\n", metadata)
	return nil
}

func runRemoveTmp(arguments []string) error {
	flags := pflag.NewFlagSet("rm-tmp", pflag.ContinueOnError)
	newEntry := entryFlags(flags)
	if err := flags.Parse(arguments); err != nil {
		return err
	}
	entry, err := newEntry()
	if err != nil {
		return err
	}
	return entry.RemoveTmp()
}

func runMkdir(arguments []string) error {
	flags := pflag.NewFlagSet("mkdir", pflag.ContinueOnError)
	newEntry := entryFlags(flags)
	if err := flags.Parse(arguments); err != nil {
		return err
	}
	entry, err := newEntry()
	if err != nil {
		return err
	}

	path, err := entry.Mkdir()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runTouch(arguments []string) error {
	flags := pflag.NewFlagSet("touch", pflag.ContinueOnError)
	newEntry := entryFlags(flags)
	if err := flags.Parse(arguments); err != nil {
		return err
	}
	entry, err := newEntry()
	if err != nil {
		return err
	}
	return entry.Touch()
}

// runHeader prints the 25-byte frame of an uncompressed framed file:
// the 24 header bytes in hex and printable form, and the version
// byte.
func runHeader(arguments []string) error {
	flags := pflag.NewFlagSet("header", pflag.ContinueOnError)
	newEntry := entryFlags(flags)
	if err := flags.Parse(arguments); err != nil {
		return err
	}
	entry, err := newEntry()
	if err != nil {
		return err
	}

	prefix, err := entry.ReadRange(0, frame.Size)
	if err != nil {
		return err
	}
	header := prefix[:frame.HeaderSize]

	fmt.Printf("header   %x\n", header)
	fmt.Printf("text     %s\n", printable(header))
	fmt.Printf("version  %d\n", prefix[frame.HeaderSize])
	return nil
}

// printable renders header bytes for terminals, substituting a dot
// for anything non-graphic.
func printable(data []byte) string {
	var builder strings.Builder
	for _, b := range data {
		r := rune(b)
		if unicode.IsGraphic(r) && b < unicode.MaxASCII {
			builder.WriteRune(r)
		} else {
			builder.WriteByte('.')
		}
	}
	return builder.String()
}
