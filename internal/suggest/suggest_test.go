package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
			assert.Equal(t, tt.expected, Distance(tt.b, tt.a))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "orderid", Normalize("Order_ID"))
	assert.Equal(t, "spritesheet", Normalize("sprite-sheet"))
	assert.Equal(t, "", Normalize(""))
}

func TestScore(t *testing.T) {
	assert.InDelta(t, 1.0, Score("", ""), 1e-9)
	assert.InDelta(t, 1.0, Score("Sprite", "sprite"), 1e-9)
	assert.InDelta(t, 0.0, Score("abc", "xyz"), 1e-9)
	assert.InDelta(t, 0.8333, Score("Cirle", "Circle"), 0.001)
}

func TestClosest(t *testing.T) {
	variants := []string{"Circle", "Sprite", "Square", "Empty"}

	assert.Equal(t, []string{"Circle"}, Closest("Cirle", variants, 1))
	assert.Equal(t, []string{"Sprite"}, Closest("sprit", variants, 3))
	assert.Empty(t, Closest("Polygon", variants, 3))
	assert.Empty(t, Closest("Circle", []string{"Circle"}, 1))
	assert.Equal(t, " (did you mean Square?)", Hint("Sqare", variants))
	assert.Equal(t, "", Hint("Polygon", variants))
}
