// Package schema defines the typed option groups of the training manifests
// and the tag-driven decoder that populates them from a resolved
// configuration tree.
//
// Each manifest group (files, trainable_mask, simulation, training,
// optimizer, reconstruction, loss, eval) maps to one Go struct whose fields
// carry `lens:"..."` tags naming the manifest keys. Defaults live in the
// group constructors; range and enum checks live in each group's Validate
// method. The decoder rejects keys that no struct field claims, so a
// misspelled option fails loading instead of silently riding along.
package schema
