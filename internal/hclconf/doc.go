// Package hclconf is the HCL frontend for manifest loading.
//
// Each .hcl file holds one or more `manifest "name" { ... }` blocks. The
// optional `extends` attribute lists base document names in composition
// order; the rest of the block body is the option tree, with nested blocks
// standing in for nested mappings. The body always applies after its bases,
// matching the last-writer-wins override rule of the YAML frontend.
package hclconf
