// Package doctor checks that the tools a scaffolding run shells out to are
// installed, that the local Node.js satisfies the project's engine
// constraint, and that a personalized package.json is well formed.
package doctor
