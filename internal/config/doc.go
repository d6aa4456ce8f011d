// Package config defines the format-agnostic manifest model for the
// application, along with the Loader interface implemented by the
// format-specific frontends.
//
// A Document is one configuration file after parsing: its option tree held
// as a cty value plus the ordered composition (defaults) list that names the
// base documents it inherits from. The Store collects every document found
// under the config root and is the single source of truth for the resolver.
// Concrete Loader implementations, such as for YAML and HCL, live in
// separate packages.
package config
