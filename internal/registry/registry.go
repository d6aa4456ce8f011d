package registry

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Module is the interface a schema package implements to contribute its
// option groups to a registry.
type Module interface {
	Register(r *Registry)
}

// Validator is the contract every decoded option group satisfies.
type Validator interface {
	Validate() error
}

// Decoder populates a group struct from its cty subtree.
type Decoder func(ctx context.Context, val cty.Value, target any) error

// RegisteredGroup binds a manifest group name to the Go type that carries
// its options. New must return a pointer pre-populated with the group's
// default values.
type RegisteredGroup struct {
	Name string
	New  func() Validator
}

// Registry holds all registered option groups for a single application
// instance.
type Registry struct {
	Groups map[string]*RegisteredGroup

	decode Decoder
}

// New creates and initializes a new Registry instance using the given
// decoder for all groups.
func New(decode Decoder) *Registry {
	if decode == nil {
		panic("registry: decoder must not be nil")
	}
	return &Registry{
		Groups: make(map[string]*RegisteredGroup),
		decode: decode,
	}
}

// RegisterGroup adds an option group to the registry. Registering the same
// name twice is a programmer error.
func (r *Registry) RegisterGroup(g *RegisteredGroup) {
	if g == nil || g.Name == "" || g.New == nil {
		panic("registry: incomplete group registration")
	}
	if _, exists := r.Groups[g.Name]; exists {
		panic(fmt.Sprintf("registry: group %q registered twice", g.Name))
	}
	r.Groups[g.Name] = g
}
