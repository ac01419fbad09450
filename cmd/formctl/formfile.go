package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"formsmith/internal/model"
)

// readForm loads a form from a JSON or YAML file; "-" reads stdin as JSON
// unless it fails to parse, then as YAML.
func readForm(path string) (*model.Form, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read form: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return decodeYAMLForm(data)
	}
	var form model.Form
	if jsonErr := json.Unmarshal(data, &form); jsonErr != nil {
		if path != "-" {
			return nil, fmt.Errorf("parse form %s: %w", path, jsonErr)
		}
		return decodeYAMLForm(data)
	}
	return &form, nil
}

// decodeYAMLForm goes through JSON so YAML keys follow the JSON field names
func decodeYAMLForm(data []byte) (*model.Form, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse form yaml: %w", err)
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse form yaml: %w", err)
	}
	var form model.Form
	if err := json.Unmarshal(buf, &form); err != nil {
		return nil, fmt.Errorf("parse form yaml: %w", err)
	}
	return &form, nil
}

// writeOutput prints v as indented JSON or as YAML
func writeOutput(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		// round-trip through JSON so YAML keys match the JSON field names
		buf, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var raw interface{}
		if err := yaml.Unmarshal(buf, &raw); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(raw)
	default:
		return fmt.Errorf("unknown output format %q (json, yaml)", format)
	}
}
