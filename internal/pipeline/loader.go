package pipeline

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"proto-schematic/internal/assets"
	"proto-schematic/internal/compile"
	"proto-schematic/internal/tree"
	"proto-schematic/proto"
)

var (
	// ErrUnknownSchema is returned for instances naming an unregistered schema.
	ErrUnknownSchema = errors.New("unknown schema")
	// ErrNoCollaborator is returned by NewLoader when the asset server or the
	// entity tree is missing.
	ErrNoCollaborator = errors.New("loader needs an asset server and an entity tree")
)

// Instance is one Input value to load for an entity.
type Instance struct {
	// Schema names the schematic the Input belongs to.
	Schema string
	// Entity is the entity being spawned. Relative entity addresses
	// resolve against it.
	Entity proto.EntityID
	// Input is the value to construct.
	Input proto.Value
}

// Loader sequences discovery and construction.
type Loader struct {
	schematics map[string]*compile.Schematic
	server     *assets.Server
	tree       *tree.Tree
	config     Config
}

// NewLoader creates a loader over server and t. Later schematics with the
// same name replace earlier ones.
func NewLoader(server *assets.Server, t *tree.Tree, cfg Config, schematics ...*compile.Schematic) (*Loader, error) {
	if server == nil || t == nil {
		return nil, ErrNoCollaborator
	}

	l := &Loader{
		schematics: make(map[string]*compile.Schematic, len(schematics)),
		server:     server,
		tree:       t,
		config:     cfg.withDefaults(),
	}

	for _, sc := range schematics {
		l.schematics[sc.Name()] = sc
	}

	return l, nil
}

// Load preloads, flushes and constructs a single instance.
func (l *Loader) Load(ctx context.Context, inst Instance) (proto.Value, error) {
	out, err := l.LoadAll(ctx, []Instance{inst})
	if err != nil {
		return proto.Value{}, err
	}

	return out[0], nil
}

// LoadAll processes a batch in three phases: every preload, one flush of all
// discovered dependencies to the server, then every construct. Results are
// in input order. The first failure cancels the remaining work of its phase.
func (l *Loader) LoadAll(ctx context.Context, batch []Instance) ([]proto.Value, error) {
	logger := l.config.Logger

	schematics := make([]*compile.Schematic, len(batch))
	for i, inst := range batch {
		sc, ok := l.schematics[inst.Schema]
		if !ok {
			return nil, fmt.Errorf("instance %d: %w %q", i, ErrUnknownSchema, inst.Schema)
		}

		schematics[i] = sc
	}

	var tracker assets.Tracker

	err := l.each(ctx, batch, func(i int, inst Instance) error {
		return schematics[i].Preload(inst.Input, &tracker)
	})
	if err != nil {
		return nil, fmt.Errorf("preload: %w", err)
	}

	handles := tracker.Flush(l.server)
	logger.Printf("preloaded %d instances, requested %d assets", len(batch), len(handles))

	out := make([]proto.Value, len(batch))

	err = l.each(ctx, batch, func(i int, inst Instance) error {
		v, err := schematics[i].Construct(inst.Input, l.tree.Scope(inst.Entity, l.server))
		if err != nil {
			return err
		}

		out[i] = v

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("construct: %w", err)
	}

	logger.Printf("constructed %d instances", len(batch))

	return out, nil
}

func (l *Loader) each(ctx context.Context, batch []Instance, fn func(int, Instance) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.config.Concurrency)

	for i, inst := range batch {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if err := fn(i, inst); err != nil {
				return fmt.Errorf("instance %d (%s::%s): %w", i, inst.Schema, inst.Input.Variant, err)
			}

			return nil
		})
	}

	return g.Wait()
}
