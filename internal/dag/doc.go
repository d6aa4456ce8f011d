// Package dag models the inheritance structure of the manifest store as a
// directed acyclic graph: one node per document, one edge from each base
// document to every document that lists it in its composition list. The
// graph exists to reject unknown base references and inheritance cycles
// before the resolver starts merging.
package dag
