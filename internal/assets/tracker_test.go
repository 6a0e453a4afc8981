package assets_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"proto-schematic/internal/assets"
)

func ExampleTracker() {
	var tr assets.Tracker

	tr.AddDependency("tex.png", "Image")
	dep, ok := tr.Next()
	fmt.Println("tex.png:", dep.Path, dep.Type, ok)

	_, ok = tr.Next()
	fmt.Println("empty:", ok)

	tr.AddDependency("tex.png", "Image")
	_, ok = tr.Next()
	fmt.Println("no duplicates:", ok)

	tr.AddDependency("tex.png", "Texture")
	_, ok = tr.Next()
	fmt.Println("same path, other type:", ok)

	// Output:
	// tex.png: tex.png Image true
	// empty: false
	// no duplicates: false
	// same path, other type: true
}

func TestTracker_Flush(t *testing.T) {
	var tr assets.Tracker

	tr.AddDependency("b.ogg", "Sound")
	tr.AddDependency("a.png", "Image")
	tr.AddDependency("a.png", "Image")

	assert.Equal(t, []assets.Dependency{
		{Path: "a.png", Type: "Image"},
		{Path: "b.ogg", Type: "Sound"},
	}, tr.Pending())

	srv := assets.NewServer()
	handles := tr.Flush(srv)
	if assert.Len(t, handles, 2) {
		assert.Equal(t, "a.png", handles[0].Path)
		assert.Equal(t, "b.ogg", handles[1].Path)
	}

	assert.Empty(t, tr.Pending())
	assert.Empty(t, tr.Flush(srv))

	tr.AddDependency("a.png", "Image")
	assert.Empty(t, tr.Pending())
}
