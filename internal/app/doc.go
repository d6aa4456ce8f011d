// Package app encapsulates the application's dependencies, configuration,
// and lifecycle: it wires the manifest frontends, the resolver, and the
// option-group registry together and executes the CLI commands against them.
package app
