package dag

import (
	"context"
	"fmt"

	"github.com/lenslab/lensconf/internal/config"
	"github.com/lenslab/lensconf/internal/ctxlog"
)

// FromStore builds the inheritance graph for every document in the store and
// verifies it is acyclic. An edge points from each base document to the
// document that extends it.
func FromStore(ctx context.Context, store *config.Store) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)

	g := New()
	for _, name := range store.Names() {
		g.AddNode(name)
	}

	for _, name := range store.Names() {
		doc, _ := store.Get(name)
		for _, base := range doc.Bases() {
			if _, ok := store.Get(base); !ok {
				return nil, fmt.Errorf("document %q (%s) extends unknown base %q", name, doc.Path, base)
			}
			if err := g.AddEdge(base, name); err != nil {
				return nil, err
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	logger.Debug("Inheritance graph built.", "documents", store.Len())
	return g, nil
}
