package config

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Format identifies the source syntax a document was parsed from.
type Format string

const (
	// FormatYAML marks documents parsed from .yaml/.yml manifests.
	FormatYAML Format = "yaml"
	// FormatHCL marks documents parsed from .hcl manifests.
	FormatHCL Format = "hcl"
)

// DefaultsEntry is one element of a document's composition list. It either
// names a base document or marks the position at which the document's own
// body applies (the self marker).
type DefaultsEntry struct {
	Base string
	Self bool
}

// Document is the unified, format-agnostic representation of a single
// configuration manifest.
//
// Defaults is the ordered composition list. Loaders normalize it so that it
// always contains exactly one self entry: manifests that do not place the
// marker explicitly get it appended last, which makes the document's own
// leaves the final writers.
type Document struct {
	Name     string
	Path     string
	Format   Format
	Defaults []DefaultsEntry

	// Body is the document's own option tree. It is always a cty object
	// value; an empty document has an empty object body.
	Body cty.Value
}

// Bases returns the names of the base documents in composition order.
func (d *Document) Bases() []string {
	var bases []string
	for _, e := range d.Defaults {
		if !e.Self {
			bases = append(bases, e.Base)
		}
	}
	return bases
}

// Store is the collection of all documents discovered under the config root,
// keyed by document name.
type Store struct {
	docs map[string]*Document
}

// NewStore creates an empty document store.
func NewStore() *Store {
	return &Store{docs: make(map[string]*Document)}
}

// Add inserts a document into the store. Two documents sharing a name is a
// load error; the message names both source paths so the user can tell the
// colliding files apart.
func (s *Store) Add(doc *Document) error {
	if existing, ok := s.docs[doc.Name]; ok {
		return fmt.Errorf("duplicate document name %q: defined in both %s and %s", doc.Name, existing.Path, doc.Path)
	}
	s.docs[doc.Name] = doc
	return nil
}

// Get looks up a document by name.
func (s *Store) Get(name string) (*Document, bool) {
	doc, ok := s.docs[name]
	return doc, ok
}

// Names returns all document names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of documents in the store.
func (s *Store) Len() int {
	return len(s.docs)
}

// Absorb moves every document from other into s, reporting the first name
// collision encountered.
func (s *Store) Absorb(other *Store) error {
	for _, name := range other.Names() {
		doc, _ := other.Get(name)
		if err := s.Add(doc); err != nil {
			return err
		}
	}
	return nil
}
