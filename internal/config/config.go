package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/guillaumearm/create-node-project/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyTemplateRepo     = "template_repo"
	KeyDefaultBranch    = "default_branch"
	KeyPackageManager   = "package_manager"
	KeyFormatScript     = "format_script"
	KeyGitBackend       = "git.backend"
	KeyCleanupOnFailure = "cleanup_on_failure"
	KeyStrip            = "strip"
)

// Keys lists the configuration keys in documentation order.
var Keys = []string{
	KeyTemplateRepo,
	KeyDefaultBranch,
	KeyPackageManager,
	KeyFormatScript,
	KeyGitBackend,
	KeyCleanupOnFailure,
	KeyStrip,
}

// Settings is a typed snapshot of the effective configuration.
type Settings struct {
	TemplateRepo     string
	DefaultBranch    string
	PackageManager   string
	FormatScript     string
	GitBackend       string
	CleanupOnFailure bool
	Strip            []string
}

// Dir returns the path to the config directory. The <PREFIX>_HOME
// environment variable takes precedence over ~/.create-node-project.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyTemplateRepo, branding.TemplateRepoURL())
	viper.SetDefault(KeyDefaultBranch, branding.DefaultBranch())
	viper.SetDefault(KeyPackageManager, "npm")
	viper.SetDefault(KeyFormatScript, "prettier")
	viper.SetDefault(KeyGitBackend, "exec")
	viper.SetDefault(KeyCleanupOnFailure, false)
	viper.SetDefault(KeyStrip, []string{})

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
// List values are joined with spaces, the form Set accepts.
func Get(key string) string {
	if key == KeyStrip {
		return strings.Join(viper.GetStringSlice(key), " ")
	}
	return viper.GetString(key)
}

// Current returns the effective settings. Load must be called first.
func Current() Settings {
	return Settings{
		TemplateRepo:     viper.GetString(KeyTemplateRepo),
		DefaultBranch:    viper.GetString(KeyDefaultBranch),
		PackageManager:   viper.GetString(KeyPackageManager),
		FormatScript:     viper.GetString(KeyFormatScript),
		GitBackend:       viper.GetString(KeyGitBackend),
		CleanupOnFailure: viper.GetBool(KeyCleanupOnFailure),
		Strip:            viper.GetStringSlice(KeyStrip),
	}
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !knownKey(key) {
		return fmt.Errorf("unknown key %q: valid keys are %s", key, strings.Join(Keys, ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	if key == KeyStrip {
		viper.Set(key, strings.Fields(value))
	} else {
		viper.Set(key, value)
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func knownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
