// Package merge implements the composition semantics of the manifest
// language: leaf-level last-writer-wins overlay of option trees, plus the
// command-line override grammar applied on top of a resolved tree.
//
// Mappings compose recursively; every other kind of value (scalars, lists,
// explicit nulls) replaces the base value wholesale. For any derived
// document D with base B and override set O, the effective value of key k is
// O[k] when k is present in O and B[k] otherwise.
package merge
