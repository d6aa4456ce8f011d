package dag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGraph_BasesAndDependents validates basic edge bookkeeping.
func TestGraph_BasesAndDependents(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	g := New()
	g.AddNode("defaults")
	g.AddNode("train_admm")
	g.AddNode("finetune")

	// --- Act ---
	require.NoError(t, g.AddEdge("defaults", "train_admm"))
	require.NoError(t, g.AddEdge("train_admm", "finetune"))

	// --- Assert ---
	bases, err := g.Bases("finetune")
	require.NoError(t, err)
	require.Equal(t, []string{"train_admm"}, bases)

	dependents, err := g.Dependents("defaults")
	require.NoError(t, err)
	require.Equal(t, []string{"train_admm"}, dependents)
}

// TestGraph_SelfEdgeRejected validates that a document cannot extend itself.
func TestGraph_SelfEdgeRejected(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddNode("a")
	require.Error(t, g.AddEdge("a", "a"))
}

// TestGraph_MissingNodeRejected validates edges against unknown nodes.
func TestGraph_MissingNodeRejected(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddNode("a")
	require.Error(t, g.AddEdge("a", "ghost"))
	require.Error(t, g.AddEdge("ghost", "a"))
}

// TestDetectCycles_AcyclicChain validates that a linear inheritance chain
// passes the cycle check.
func TestDetectCycles_AcyclicChain(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	g := New()
	for _, id := range []string{"defaults", "train", "finetune"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("defaults", "train"))
	require.NoError(t, g.AddEdge("train", "finetune"))

	// --- Act / Assert ---
	require.NoError(t, g.DetectCycles())
}

// TestDetectCycles_DiamondIsAcyclic validates that sharing a base through
// two paths is not a cycle.
func TestDetectCycles_DiamondIsAcyclic(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	g := New()
	for _, id := range []string{"base", "left", "right", "tip"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("base", "left"))
	require.NoError(t, g.AddEdge("base", "right"))
	require.NoError(t, g.AddEdge("left", "tip"))
	require.NoError(t, g.AddEdge("right", "tip"))

	// --- Act / Assert ---
	require.NoError(t, g.DetectCycles())
}

// TestDetectCycles_ReportsCycle validates that a two-document cycle is
// caught and named.
func TestDetectCycles_ReportsCycle(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	g := New()
	g.AddNode("a")
	g.AddNode("b")
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "a"))

	// --- Act ---
	err := g.DetectCycles()

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "inheritance cycle")
}
