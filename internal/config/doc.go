// Package config manages user-level settings stored at
// ~/.create-node-project/config.yaml. Values can be overridden through
// CREATE_NODE_PROJECT_* environment variables and default to the values
// baked in by the branding package.
package config
