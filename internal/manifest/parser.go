package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// FileName is the manifest file looked up in a project directory.
const FileName = "package.json"

// Manifest is a JSON object that remembers the order of its keys.
type Manifest struct {
	keys   []string
	values map[string]json.RawMessage
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{values: make(map[string]json.RawMessage)}
}

// Parse decodes a JSON object, keeping key order. A duplicated key keeps
// the position of its first occurrence and the value of its last.
func Parse(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	t, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if d, ok := t.(json.Delim); !ok || d != '{' {
		return nil, errors.New("manifest is not a JSON object")
	}

	m := New()
	for dec.More() {
		t, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading manifest key: %w", err)
		}
		key, ok := t.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in manifest", t)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("reading value of %q: %w", key, err)
		}
		m.SetRaw(key, raw)
	}

	// consume the closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after manifest object")
	}

	return m, nil
}

// Load reads and parses the manifest file at path.
func Load(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// Write serializes m with two-space indentation and replaces the file at path.
func (m *Manifest) Write(path string) error {
	data, err := m.MarshalIndent()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Keys returns the keys in order.
func (m *Manifest) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m *Manifest) Len() int { return len(m.keys) }

// Has reports whether key is present.
func (m *Manifest) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Get returns the raw JSON value stored under key.
func (m *Manifest) Get(key string) (json.RawMessage, bool) {
	v, ok := m.values[key]
	return v, ok
}

// GetString returns the value under key when it is a JSON string.
func (m *Manifest) GetString(key string) (string, bool) {
	raw, ok := m.values[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// SetRaw stores an already encoded value. Existing keys keep their position.
func (m *Manifest) SetRaw(key string, raw json.RawMessage) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = append(json.RawMessage(nil), raw...)
}

// Set encodes value and stores it under key.
func (m *Manifest) Set(key string, value any) error {
	raw, err := encode(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	m.SetRaw(key, raw)
	return nil
}

// Delete removes key. Missing keys are ignored.
func (m *Manifest) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a shallow copy that can be modified independently.
func (m *Manifest) Clone() *Manifest {
	c := &Manifest{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]json.RawMessage, len(m.values)),
	}
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// MarshalJSON encodes m compactly, in key order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encode(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, m.values[k]); err != nil {
			return nil, fmt.Errorf("compacting value of %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalIndent encodes m with two-space indentation and no trailing newline.
func (m *Manifest) MarshalIndent() ([]byte, error) {
	compact, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("indenting manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// encode marshals v without HTML escaping and without the trailing newline
// added by json.Encoder.
func encode(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
