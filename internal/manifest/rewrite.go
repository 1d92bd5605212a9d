package manifest

import (
	"fmt"

	"github.com/guillaumearm/create-node-project/internal/project"
)

const (
	// InitialVersion is written to every new project.
	InitialVersion = "0.0.0"

	// BinPath is the executable entry of "cli" projects.
	BinPath = "dist/index.js"
)

// RemovedFields describe the template project and are dropped from the copy.
var RemovedFields = []string{"private", "repository", "bugs", "homepage"}

// Rewrite returns a personalized copy of m; m itself is not modified.
// Identity fields are overwritten in place, template-only fields are
// removed and cli projects get cliName and bin entries.
func Rewrite(m *Manifest, name string, typ project.Type) (*Manifest, error) {
	out := m.Clone()

	fields := []struct {
		key   string
		value any
	}{
		{"name", name},
		{"version", InitialVersion},
		{"description", ""},
	}
	for _, f := range fields {
		if err := out.Set(f.key, f.value); err != nil {
			return nil, err
		}
	}

	for _, key := range RemovedFields {
		out.Delete(key)
	}

	if typ.IsCLI() {
		if err := out.Set("cliName", name); err != nil {
			return nil, err
		}
		if err := out.Set("bin", map[string]string{name: BinPath}); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// RewriteFile loads the manifest at path, rewrites it and writes it back.
func RewriteFile(path, name string, typ project.Type) (*Manifest, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}

	out, err := Rewrite(m, name, typ)
	if err != nil {
		return nil, fmt.Errorf("rewriting %s: %w", path, err)
	}

	if err := out.Write(path); err != nil {
		return nil, err
	}
	return out, nil
}
