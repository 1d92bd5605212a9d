// Package pkgmgr drives the Node.js package manager inside a generated
// project: dependency installation and running a package.json script.
package pkgmgr
