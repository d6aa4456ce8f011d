// Package yamlconf is the YAML frontend for manifest loading.
//
// A manifest is a single YAML mapping. The reserved top-level `defaults` key
// holds the composition list: a sequence of base document names with an
// optional `_self_` marker fixing where the document's own body applies.
// Every other top-level key belongs to the body and is translated into the
// cty value model shared with the HCL frontend.
package yamlconf
