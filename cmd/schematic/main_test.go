package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapesYAML = `
schemas:
  - name: Shape
    variants:
      - name: Circle
        fields:
          - {name: radius, type: float64}
      - name: Sprite
        fields:
          - {type: Image, asset: true}
      - name: Timed
        fields:
          - {name: ttl, type: time.Duration, from: string}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestCheck(t *testing.T) {
	path := writeFile(t, "shapes.yaml", shapesYAML)

	out, err := run(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 schema(s) ok")
}

func TestCheck_Errors(t *testing.T) {
	path := writeFile(t, "broken.yaml", `
schemas:
  - name: Stats
    variants:
      - name: Base
        fields:
          - {type: Health, from: int}
`)

	out, err := run(t, "check", path)
	require.Error(t, err)
	assert.Contains(t, out, "missing_converter")
	assert.Contains(t, out, "hint: registry.Register")

	out, err = run(t, "check", "--skip-assertions", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 schema(s) ok")
}

func TestDescribe(t *testing.T) {
	path := writeFile(t, "shapes.yaml", shapesYAML)

	out, err := run(t, "describe", path, "--package", "shapes")
	require.NoError(t, err)
	assert.Contains(t, out, "package shapes")
	assert.Contains(t, out, "type ShapeInputSprite struct {")
	assert.Contains(t, out, "var Converters = schematic.NewRegistry()")
	assert.Contains(t, out, "func (in ShapeInputSprite) Construct(ctx proto.Context) (ShapeSprite, error) {")

	out, err = run(t, "describe", path, "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "Shape::Circle")
	assert.Contains(t, out, "Shape::Timed")
	assert.Contains(t, out, "Binding: (string) (len=6) \"radius\"")
}

func TestDescribe_MissingFile(t *testing.T) {
	_, err := run(t, "describe", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
