package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"proto-schematic/internal/harness"
)

// CurrentVersion is the definition format version written by Marshal.
const CurrentVersion = "1"

// LoadFile loads and parses a definition file. Files ending in .json are
// decoded as JSON, everything else as YAML.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// ParseJSON parses JSON data into a File.
func ParseJSON(data []byte) (*File, error) {
	var f File

	err := json.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in defaults for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	for i := range f.Schemas {
		for j := range f.Schemas[i].Variants {
			v := &f.Schemas[i].Variants[j]
			if v.Kind == 0 {
				v.Kind = InferKind(v.Fields)
			}
		}
	}
}

// InferKind returns the kind implied by a field list.
func InferKind(fields []Field) harness.Kind {
	if len(fields) == 0 {
		return harness.KindUnit
	}

	for _, fld := range fields {
		if fld.Name != "" {
			return harness.KindNamed
		}
	}

	return harness.KindPositional
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// MarshalJSON serializes a File to indented JSON.
func MarshalJSON(f *File) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// File permission for written definition files.
const filePerm = 0o644

// WriteFile writes a File to path, as JSON when path ends in .json.
func WriteFile(f *File, path string) error {
	var (
		data []byte
		err  error
	)

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = MarshalJSON(f)
	} else {
		data, err = Marshal(f)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}

	return nil
}
