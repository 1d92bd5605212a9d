// Package scaffold runs the project creation pipeline: destination check,
// template clone, sanitizing, manifest rewrite, dependency install and
// formatting. It powers the root command of create-node-project.
package scaffold
