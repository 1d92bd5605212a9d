// Package project resolves the command-line inputs of a scaffolding run:
// the destination directory, the project name and the project type.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Type selects the template branch and the manifest shape.
type Type string

// Documented project types.
const (
	TypeBase    Type = "base"
	TypeExpress Type = "express"
	TypeReact   Type = "react"
	TypeCLI     Type = "cli"
)

// DefaultType is used when no type is given.
const DefaultType = TypeBase

// Types lists the documented project types in help order.
var Types = []Type{TypeBase, TypeExpress, TypeReact, TypeCLI}

// Branch returns the template branch for t. "base" maps to defaultBranch;
// any other token, documented or not, is used verbatim.
func (t Type) Branch(defaultBranch string) string {
	if t == TypeBase {
		return defaultBranch
	}
	return string(t)
}

// IsCLI reports whether the manifest gets a bin entry.
func (t Type) IsCLI() bool { return t == TypeCLI }

// Known reports whether t is one of the documented types.
func (t Type) Known() bool {
	for _, k := range Types {
		if t == k {
			return true
		}
	}
	return false
}

func (t Type) String() string { return string(t) }

// ErrDestinationExists is returned when the destination path is taken.
var ErrDestinationExists = errors.New("destination already exists")

// Options are the resolved inputs of one run.
type Options struct {
	Dir  string // absolute destination path
	Name string // project name written to package.json
	Type Type
}

// Resolve turns raw arguments into Options. An empty name defaults to the
// last segment of the destination, an empty type to DefaultType.
func Resolve(path, name, typ string) (Options, error) {
	if path == "" {
		return Options{}, fmt.Errorf("destination path is required")
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return Options{}, fmt.Errorf("resolving %s: %w", path, err)
	}

	if name == "" {
		name = filepath.Base(dir)
	}

	t := Type(typ)
	if t == "" {
		t = DefaultType
	}

	return Options{Dir: dir, Name: name, Type: t}, nil
}

// CheckDestination fails when anything (file, directory or dangling
// symlink) already exists at dir.
func CheckDestination(dir string) error {
	_, err := os.Lstat(dir)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, dir)
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", dir, err)
	}
	return nil
}
