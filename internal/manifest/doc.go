// Package manifest loads, rewrites and validates the package.json of a
// freshly cloned template. Manifests are kept as key-ordered JSON objects so
// that a rewrite only touches the fields it owns; every other value is
// written back as it was read, re-indented with two spaces.
package manifest
