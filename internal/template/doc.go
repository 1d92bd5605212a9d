// Package template fetches the template repository into a new project
// directory and strips the clone of its version-control metadata. Cloning
// goes through the git CLI by default or through go-git in-process.
package template
