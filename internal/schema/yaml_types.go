package schema

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Decoding of the "asset" and "entity" shorthands. Both accept:
//   - true: runtime value carried by the Input
//   - "some/path": literal path
//   - a mapping with the full attribute set

type assetAttrFields AssetAttr

type entityAttrFields EntityAttr

var errFalseAttr = errors.New("false is not a valid attribute value, omit the key instead")

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *AssetAttr) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		path, err := decodeScalarAttr(node)
		if err != nil {
			return fmt.Errorf("asset: %w", err)
		}

		*a = AssetAttr{Path: path}

		return nil
	case yaml.MappingNode:
		var fields assetAttrFields
		if err := node.Decode(&fields); err != nil {
			return fmt.Errorf("asset: %w", err)
		}

		*a = AssetAttr(fields)

		return nil
	default:
		return fmt.Errorf("asset: expected bool, string or mapping, got %v", node.Tag)
	}
}

// MarshalYAML implements yaml.Marshaler using the shortest form.
func (a AssetAttr) MarshalYAML() (any, error) {
	switch {
	case a.Preload != nil:
		return assetAttrFields(a), nil
	case a.Path != "":
		return a.Path, nil
	default:
		return true, nil
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *EntityAttr) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		path, err := decodeScalarAttr(node)
		if err != nil {
			return fmt.Errorf("entity: %w", err)
		}

		*e = EntityAttr{Path: path}

		return nil
	case yaml.MappingNode:
		var fields entityAttrFields
		if err := node.Decode(&fields); err != nil {
			return fmt.Errorf("entity: %w", err)
		}

		*e = EntityAttr(fields)

		return nil
	default:
		return fmt.Errorf("entity: expected bool, string or mapping, got %v", node.Tag)
	}
}

// MarshalYAML implements yaml.Marshaler using the shortest form.
func (e EntityAttr) MarshalYAML() (any, error) {
	if e.Path != "" {
		return e.Path, nil
	}

	return true, nil
}

func decodeScalarAttr(node *yaml.Node) (string, error) {
	if node.ShortTag() == "!!bool" {
		var flag bool
		if err := node.Decode(&flag); err != nil {
			return "", err
		}

		if !flag {
			return "", errFalseAttr
		}

		return "", nil
	}

	var path string
	if err := node.Decode(&path); err != nil {
		return "", err
	}

	if path == "" {
		return "", errors.New("empty path")
	}

	return path, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AssetAttr) UnmarshalJSON(data []byte) error {
	path, isScalar, err := decodeJSONScalarAttr(data)
	if err != nil {
		return fmt.Errorf("asset: %w", err)
	}

	if isScalar {
		*a = AssetAttr{Path: path}
		return nil
	}

	var fields assetAttrFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("asset: %w", err)
	}

	*a = AssetAttr(fields)

	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *EntityAttr) UnmarshalJSON(data []byte) error {
	path, isScalar, err := decodeJSONScalarAttr(data)
	if err != nil {
		return fmt.Errorf("entity: %w", err)
	}

	if isScalar {
		*e = EntityAttr{Path: path}
		return nil
	}

	var fields entityAttrFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("entity: %w", err)
	}

	*e = EntityAttr(fields)

	return nil
}

func decodeJSONScalarAttr(data []byte) (path string, isScalar bool, err error) {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("true")):
		return "", true, nil
	case bytes.Equal(data, []byte("false")):
		return "", true, errFalseAttr
	case len(data) > 0 && data[0] == '"':
		if err := json.Unmarshal(data, &path); err != nil {
			return "", true, err
		}

		if path == "" {
			return "", true, errors.New("empty path")
		}

		return path, true, nil
	default:
		return "", false, nil
	}
}
