package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/SebBehrendt/aas-pydantic/basyx"
)

// Environment files are JSON on the wire; YAML files are normalized through
// an any-tree before hitting the JSON adapter, mirroring how YAML manifests
// are usually bridged into JSON tooling.

func isYAMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func readEnvironmentFile(path string) (*basyx.Environment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isYAMLFile(path) {
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		raw, err = json.Marshal(normalizeYAML(doc))
		if err != nil {
			return nil, fmt.Errorf("normalize yaml: %w", err)
		}
	}
	return basyx.ReadEnvironment(bytes.NewReader(raw))
}

func writeEnvironmentFile(path string, env *basyx.Environment) error {
	var buf bytes.Buffer
	if err := basyx.WriteEnvironment(&buf, env); err != nil {
		return err
	}
	if !isYAMLFile(path) {
		return os.WriteFile(path, buf.Bytes(), 0o644)
	}
	var doc any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return err
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

// normalizeYAML rewrites map[any]any nodes into map[string]any so the tree
// can be marshaled as JSON.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
