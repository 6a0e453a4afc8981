package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proto-schematic/internal/assets"
	"proto-schematic/internal/compile"
	"proto-schematic/internal/pipeline"
	"proto-schematic/internal/schema"
	"proto-schematic/internal/tree"
	"proto-schematic/proto"
)

func spriteSchematic(t *testing.T) *compile.Schematic {
	t.Helper()

	s := schema.New("Sprite",
		schema.Named("Static",
			schema.Asset("Image").As("image"),
			schema.Entity().As("anchor"),
		),
		schema.Named("Icon", schema.AssetAt("Image", "ui/icon.png").As("image")),
	)

	sc, err := compile.Compile(&s, nil)
	require.NoError(t, err)

	return sc
}

func TestLoader_Load(t *testing.T) {
	srv := assets.NewServer()
	world := tree.New()

	player, err := world.SpawnPath("/player")
	require.NoError(t, err)

	hand, err := world.Spawn(player, "hand")
	require.NoError(t, err)

	loader, err := pipeline.NewLoader(srv, world, pipeline.Config{}, spriteSchematic(t))
	require.NoError(t, err)

	out, err := loader.Load(context.Background(), pipeline.Instance{
		Schema: "Sprite",
		Entity: player,
		Input: proto.NewRecord("Static", map[string]any{
			"image":  proto.AssetPath("hero.png"),
			"anchor": "hand",
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, proto.Handle{ID: 1, Path: "hero.png", Type: "Image"}, out.Record["image"])
	assert.Equal(t, hand, out.Record["anchor"])
}

func TestLoader_LoadAll(t *testing.T) {
	srv := assets.NewServer()
	world := tree.New()

	var buf bytes.Buffer

	loader, err := pipeline.NewLoader(srv, world, pipeline.Config{
		Concurrency: 2,
		Logger:      log.New(&buf, "", 0),
	}, spriteSchematic(t))
	require.NoError(t, err)

	batch := make([]pipeline.Instance, 0, 8)
	for i := range 6 {
		batch = append(batch, pipeline.Instance{
			Schema: "Sprite",
			Input: proto.NewRecord("Static", map[string]any{
				"image":  proto.AssetPath(fmt.Sprintf("tile%d.png", i%3)),
				"anchor": "/",
			}),
		})
	}

	batch = append(batch,
		pipeline.Instance{Schema: "Sprite", Input: proto.NewRecord("Icon", nil)},
		pipeline.Instance{Schema: "Sprite", Input: proto.NewRecord("Icon", nil)},
	)

	out, err := loader.LoadAll(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, out, len(batch))

	// Every path was requested during the flush, in path order, before any
	// construct ran; construction reuses those handles.
	handles := srv.Handles()
	require.Len(t, handles, 4)
	assert.Equal(t, "tile0.png", handles[0].Path)
	assert.Equal(t, "tile1.png", handles[1].Path)
	assert.Equal(t, "tile2.png", handles[2].Path)
	assert.Equal(t, "ui/icon.png", handles[3].Path)

	for i := range 6 {
		h := out[i].Record["image"].(proto.Handle)
		assert.Equal(t, fmt.Sprintf("tile%d.png", i%3), h.Path)
		assert.Equal(t, tree.Root, out[i].Record["anchor"])
	}

	assert.Equal(t, handles[3], out[6].Record["image"])
	assert.Contains(t, buf.String(), "preloaded 8 instances, requested 4 assets")
	assert.Contains(t, buf.String(), "constructed 8 instances")
}

func TestLoader_Errors(t *testing.T) {
	srv := assets.NewServer()
	loader, err := pipeline.NewLoader(srv, tree.New(), pipeline.DefaultConfig(), spriteSchematic(t))
	require.NoError(t, err)

	ctx := context.Background()

	_, err = loader.Load(ctx, pipeline.Instance{Schema: "Missing", Input: proto.NewUnit("X")})
	assert.ErrorIs(t, err, pipeline.ErrUnknownSchema)

	_, err = loader.Load(ctx, pipeline.Instance{
		Schema: "Sprite",
		Input:  proto.NewRecord("Static", map[string]any{"image": "raw.png", "anchor": "/"}),
	})
	require.ErrorIs(t, err, compile.ErrResolutionMismatch)
	assert.Contains(t, err.Error(), "preload:")

	_, err = loader.Load(ctx, pipeline.Instance{
		Schema: "Sprite",
		Input: proto.NewRecord("Static", map[string]any{
			"image":  proto.AssetPath("a.png"),
			"anchor": "nowhere",
		}),
	})
	require.ErrorIs(t, err, compile.ErrMissingEntity)
	assert.Contains(t, err.Error(), "construct:")

	// The failed construct still requested its preloaded asset.
	assert.Len(t, srv.Handles(), 1)
}

func TestLoader_Canceled(t *testing.T) {
	loader, err := pipeline.NewLoader(assets.NewServer(), tree.New(), pipeline.DefaultConfig(), spriteSchematic(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = loader.Load(ctx, pipeline.Instance{Schema: "Sprite", Input: proto.NewRecord("Icon", nil)})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewLoader_MissingCollaborators(t *testing.T) {
	_, err := pipeline.NewLoader(nil, tree.New(), pipeline.DefaultConfig(), spriteSchematic(t))
	assert.ErrorIs(t, err, pipeline.ErrNoCollaborator)

	_, err = pipeline.NewLoader(assets.NewServer(), nil, pipeline.DefaultConfig())
	assert.ErrorIs(t, err, pipeline.ErrNoCollaborator)
}
