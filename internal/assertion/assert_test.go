package assertion

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proto-schematic/convert"
	"proto-schematic/internal/diagnostic"
	"proto-schematic/internal/schema"
	"proto-schematic/proto"
)

type ColorInput struct{ Hex string }

type Color struct{ R, G, B uint8 }

type RGB struct{ R, G, B uint8 }

func TestCheck_MissingConverter(t *testing.T) {
	s := schema.New("Shape", schema.Named("Tint", schema.Convert("Color", "ColorInput").As("color")))

	res := Check(&s, convert.NewRegistry())

	require.Len(t, res.Errors, 1)
	e := res.Errors[0]
	assert.Equal(t, diagnostic.CodeMissingConverter, e.Code)
	assert.Equal(t, "Shape::Tint", e.Variant)
	assert.Equal(t, "color", e.Field)
	assert.Contains(t, e.Message, "ColorInput -> Color")
	require.Len(t, e.Suggestions, 1)
}

func TestCheck_RegisteredConverter(t *testing.T) {
	reg := convert.NewRegistry()
	reg.MustRegister("ColorInput", "Color", func(in ColorInput, _ proto.Context) (Color, error) {
		return Color{}, nil
	})
	reg.MustRegister("string", "int", strconv.Atoi)

	s := schema.New("Shape", schema.Positional("Tint",
		schema.Convert("Color", "ColorInput"),
		schema.Convert("int", "string"),
	))

	res := Check(&s, reg)
	assert.True(t, res.IsValid(), res.Error())
	assert.Empty(t, res.Warnings)
}

func TestCheck_ConverterTypeNames(t *testing.T) {
	reg := convert.NewRegistry()
	reg.MustRegister("ColorInput", "Color", func(in ColorInput) RGB { return RGB{} })

	s := schema.New("Shape", schema.Positional("Tint", schema.Convert("Color", "ColorInput")))

	res := Check(&s, reg)
	assert.True(t, res.IsValid())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, diagnostic.CodeConverterMismatch, res.Warnings[0].Code)
	assert.Contains(t, res.Warnings[0].Message, "returns Go type assertion.RGB")
}

func TestCheck_Infos(t *testing.T) {
	s := schema.New("Shape",
		schema.Positional("Sprite", schema.Asset("Image").WithoutPreload()),
		schema.Named("Badge",
			schema.AssetAt("Image", "badge.png").As("image"),
			schema.EntityAt("../owner").As("owner"),
		),
		schema.Unit("Empty"),
	)

	res := Check(&s, nil)
	assert.True(t, res.IsValid())

	codes := make([]string, 0, len(res.Infos))
	for _, d := range res.Infos {
		codes = append(codes, d.Code)
	}

	assert.Equal(t, []string{diagnostic.CodeNothingToPreload, diagnostic.CodeLiteralOnlyVariant}, codes)
	assert.Equal(t, "Shape::Sprite", res.Infos[0].Variant)
	assert.Equal(t, "Shape::Badge", res.Infos[1].Variant)
}

func TestCheck_IncludesPolicyErrors(t *testing.T) {
	bad := schema.Entity()
	bad.Type = "Image"

	s := schema.New("Shape", schema.Positional("Broken", bad))

	res := Check(&s, nil)
	assert.Equal(t, []string{diagnostic.CodeInvalidField}, res.Codes())
}

func TestCheck_MissingConverterHint(t *testing.T) {
	reg := convert.NewRegistry()
	reg.MustRegister("ColorInput", "Color", func(in ColorInput) Color { return Color{} })

	s := schema.New("Shape", schema.Positional("Tint", schema.Convert("Color", "ColourInput")))

	res := Check(&s, reg)
	require.Len(t, res.Errors, 1)
	require.Len(t, res.Errors[0].Suggestions, 2)
	assert.Equal(t, "from: ColorInput", res.Errors[0].Suggestions[0])
}
