package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a configuration file into a Params. The codec follows the
// extension: .yaml and .yml decode as YAML, everything else as JSON.
func Load(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file %s: %w", path, err)
	}

	if isYAML(path) {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseYAML parses YAML data into a Params.
func ParseYAML(data []byte) (*Params, error) {
	var m map[string]any

	err := yaml.Unmarshal(data, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse params YAML: %w", err)
	}

	return New(m), nil
}

// ParseJSON parses JSON data into a Params. Numbers without a
// fractional part decode as int, matching the YAML codec.
func ParseJSON(data []byte) (*Params, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse params JSON: %w", err)
	}

	return New(intactNumbers(m).(map[string]any)), nil
}

// intactNumbers rewrites json.Number leaves: integral values become
// int, everything else float64.
func intactNumbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = intactNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = intactNumbers(e)
		}
		return t
	case json.Number:
		if n, err := strconv.Atoi(t.String()); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

// Marshal serializes the content with the codec matching path's
// extension. Map keys come out sorted under both codecs.
func (p *Params) Marshal(path string) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(p.data)
	}
	return json.MarshalIndent(p.data, "", "    ")
}

// Save writes the content to the given path.
func (p *Params) Save(path string) error {
	data, err := p.Marshal(path)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write params file %s: %w", path, err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
