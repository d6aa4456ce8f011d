// Package registry provides the central "glue" between manifests and the
// typed option schema.
//
// The Registry maps the top-level group names used in manifests (e.g.
// "training", "reconstruction") to the Go types that decode and validate
// them. After composition, every group present in the effective
// configuration is checked against the registry, so a mismatch between the
// manifests and the code is caught at load time rather than surfacing as a
// silently ignored option downstream.
package registry
