package yamlconf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lenslab/lensconf/internal/config"
	"github.com/lenslab/lensconf/internal/ctxlog"
	"github.com/lenslab/lensconf/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// defaultsKey is the reserved top-level key holding the composition list.
const defaultsKey = "defaults"

// selfMarker is the composition-list entry standing for the document's own body.
const selfMarker = "_self_"

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .yaml/.yml manifest under root and translates each into
// a format-agnostic document. The document name is the file name without
// its extension.
func (l *Loader) Load(ctx context.Context, root string) (*config.Store, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.FindFilesByExtension(root, ".yaml", ".yml")
	if err != nil {
		return nil, fmt.Errorf("failed to discover YAML manifests under %s: %w", root, err)
	}

	store := config.NewStore()
	for _, path := range paths {
		doc, err := l.loadFile(path)
		if err != nil {
			return nil, err
		}
		if err := store.Add(doc); err != nil {
			return nil, err
		}
		logger.Debug("Loaded YAML manifest.", "name", doc.Name, "path", path, "bases", doc.Bases())
	}
	return store, nil
}

// loadFile parses a single manifest file.
func (l *Loader) loadFile(path string) (*config.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var rootNode yaml.Node
	if err := yaml.Unmarshal(raw, &rootNode); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	name := docName(path)
	doc := &config.Document{
		Name:   name,
		Path:   path,
		Format: config.FormatYAML,
	}

	// An empty file is a valid manifest with an empty body.
	if rootNode.Kind == 0 || len(rootNode.Content) == 0 {
		doc.Body = cty.EmptyObjectVal
		doc.Defaults = []config.DefaultsEntry{{Self: true}}
		return doc, nil
	}

	mapping := rootNode.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: manifest root must be a mapping", path)
	}

	bodyAttrs := make(map[string]cty.Value)
	var defaults []config.DefaultsEntry
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valNode := mapping.Content[i], mapping.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode || keyNode.Tag != "!!str" {
			return nil, fmt.Errorf("%s: line %d: top-level keys must be strings", path, keyNode.Line)
		}

		if keyNode.Value == defaultsKey {
			defaults, err = parseDefaults(path, valNode)
			if err != nil {
				return nil, err
			}
			continue
		}

		if _, dup := bodyAttrs[keyNode.Value]; dup {
			return nil, fmt.Errorf("%s: line %d: duplicate key %q", path, keyNode.Line, keyNode.Value)
		}
		v, err := nodeToCty(valNode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		bodyAttrs[keyNode.Value] = v
	}

	if len(bodyAttrs) == 0 {
		doc.Body = cty.EmptyObjectVal
	} else {
		doc.Body = cty.ObjectVal(bodyAttrs)
	}
	doc.Defaults = normalizeDefaults(defaults)
	return doc, nil
}

// parseDefaults interprets the `defaults` sequence: base document names plus
// at most one `_self_` marker.
func parseDefaults(path string, n *yaml.Node) ([]config.DefaultsEntry, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: line %d: %q must be a sequence of document names", path, n.Line, defaultsKey)
	}

	var entries []config.DefaultsEntry
	seenSelf := false
	for _, item := range n.Content {
		if item.Kind == yaml.AliasNode {
			item = item.Alias
		}
		if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
			return nil, fmt.Errorf("%s: line %d: %q entries must be document names", path, item.Line, defaultsKey)
		}
		if item.Value == selfMarker {
			if seenSelf {
				return nil, fmt.Errorf("%s: line %d: %q appears more than once", path, item.Line, selfMarker)
			}
			seenSelf = true
			entries = append(entries, config.DefaultsEntry{Self: true})
			continue
		}
		entries = append(entries, config.DefaultsEntry{Base: item.Value})
	}
	return entries, nil
}

// normalizeDefaults guarantees the invariant that every document carries
// exactly one self entry. When the manifest does not place `_self_`
// explicitly, the body applies last so its leaves win over inherited ones.
func normalizeDefaults(entries []config.DefaultsEntry) []config.DefaultsEntry {
	for _, e := range entries {
		if e.Self {
			return entries
		}
	}
	return append(entries, config.DefaultsEntry{Self: true})
}

// docName derives the document name from the manifest file name.
func docName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
