// Package cli defines the Cobra command tree for create-node-project. The
// root command creates a project; each other file registers one
// subcommand. Commands delegate to internal packages and only handle flag
// parsing and output formatting.
package cli
