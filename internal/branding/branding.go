// Package branding provides compile-time identity values for the CLI.
//
// The values come from branding.yaml, embedded into the binary with
// //go:embed. Hard defaults apply when a key is missing from the file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	TemplateRepoURL string `yaml:"template_repo_url"`
	DefaultBranch   string `yaml:"default_branch"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:         "create-node-project",
			DisplayName:     "Create Node Project",
			Description:     "Scaffold a new Node.js project from a template repository",
			HomeDir:         ".create-node-project",
			EnvPrefix:       "CREATE_NODE_PROJECT",
			TemplateRepoURL: "https://github.com/guillaumearm/node-skeleton.git",
			DefaultBranch:   "master",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-node-project").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME.
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix.
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// TemplateRepoURL returns the git URL of the template repository.
func TemplateRepoURL() string { load(); return defaults.TemplateRepoURL }

// DefaultBranch returns the template branch used for the "base" project type.
func DefaultBranch() string { load(); return defaults.DefaultBranch }

// EnvVar returns a fully qualified env var name,
// e.g. EnvVar("template_repo") → "CREATE_NODE_PROJECT_TEMPLATE_REPO".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
