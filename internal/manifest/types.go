package manifest

import (
	"encoding/json"
	"fmt"
)

// PackageIdentity is the typed view of the package.json fields this tool
// reads or writes.
type PackageIdentity struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	CLIName     string            `json:"cliName,omitempty"`
	Bin         json.RawMessage   `json:"bin,omitempty"`
	Engines     map[string]string `json:"engines,omitempty"`
}

// BinEntries returns the executables declared by the bin field. A string
// bin maps the package name to that path, as npm does.
func (p *PackageIdentity) BinEntries() (map[string]string, error) {
	if len(p.Bin) == 0 {
		return nil, nil
	}

	var path string
	if err := json.Unmarshal(p.Bin, &path); err == nil {
		return map[string]string{p.Name: path}, nil
	}

	var entries map[string]string
	if err := json.Unmarshal(p.Bin, &entries); err != nil {
		return nil, fmt.Errorf("bin must be a string or an object of strings: %w", err)
	}
	return entries, nil
}

// Identity decodes the identity fields of m. Fields with an unexpected
// JSON type produce an error.
func (m *Manifest) Identity() (*PackageIdentity, error) {
	data, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var id PackageIdentity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("decoding package identity: %w", err)
	}
	return &id, nil
}
