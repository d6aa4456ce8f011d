// Package resolver implements inherit-then-override composition over the
// manifest store: it expands a document's defaults list depth-first into a
// linear merge chain, overlays the chain left to right, and applies any
// command-line overrides on the result.
package resolver

import (
	"context"
	"fmt"

	"github.com/lenslab/lensconf/internal/config"
	"github.com/lenslab/lensconf/internal/ctxlog"
	"github.com/lenslab/lensconf/internal/dag"
	"github.com/lenslab/lensconf/internal/merge"
	"github.com/zclconf/go-cty/cty"
)

// Resolver composes effective configurations from a validated store.
type Resolver struct {
	store *config.Store
	graph *dag.Graph
}

// New builds a resolver over the store, failing fast on unknown base
// references or inheritance cycles.
func New(ctx context.Context, store *config.Store) (*Resolver, error) {
	graph, err := dag.FromStore(ctx, store)
	if err != nil {
		return nil, err
	}
	return &Resolver{store: store, graph: graph}, nil
}

// layer is one element of the linearized merge chain.
type layer struct {
	name string
	body cty.Value
}

// Resolve returns the effective configuration of the named document with
// the given overrides applied. The result is always a cty object.
func (r *Resolver) Resolve(ctx context.Context, name string, overrides []*merge.Override) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx)

	chain, err := r.expand(name)
	if err != nil {
		return cty.NilVal, err
	}

	effective := cty.EmptyObjectVal
	for _, l := range chain {
		effective = merge.Values(effective, l.body)
	}
	logger.Debug("Composition chain merged.", "document", name, "layers", len(chain))

	if len(overrides) > 0 {
		effective, err = merge.Apply(effective, overrides)
		if err != nil {
			return cty.NilVal, err
		}
		logger.Debug("Overrides applied.", "document", name, "count", len(overrides))
	}
	return effective, nil
}

// Lineage returns the merge order of the named document as document names,
// from the first writer to the last.
func (r *Resolver) Lineage(name string) ([]string, error) {
	chain, err := r.expand(name)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(chain))
	for i, l := range chain {
		names[i] = l.name
	}
	return names, nil
}

// expand linearizes the composition list depth-first. Each base entry
// contributes its own full chain at its position; the self entry contributes
// the document body. The graph built at construction time guarantees the
// recursion terminates.
func (r *Resolver) expand(name string) ([]layer, error) {
	doc, ok := r.store.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown document %q; known documents: %v", name, r.store.Names())
	}

	var chain []layer
	for _, entry := range doc.Defaults {
		if entry.Self {
			chain = append(chain, layer{name: doc.Name, body: doc.Body})
			continue
		}
		baseChain, err := r.expand(entry.Base)
		if err != nil {
			return nil, err
		}
		chain = append(chain, baseChain...)
	}
	return chain, nil
}
