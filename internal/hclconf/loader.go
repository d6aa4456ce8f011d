package hclconf

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/lenslab/lensconf/internal/config"
	"github.com/lenslab/lensconf/internal/ctxlog"
	"github.com/lenslab/lensconf/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// manifestBlockType is the only block type allowed at the top level of a file.
const manifestBlockType = "manifest"

// extendsAttr is the reserved attribute holding the composition list.
const extendsAttr = "extends"

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads every .hcl file under root and translates each manifest block
// into a format-agnostic document. The block label is the document name.
func (l *Loader) Load(ctx context.Context, root string) (*config.Store, error) {
	logger := ctxlog.FromContext(ctx)

	paths, err := fsutil.FindFilesByExtension(root, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to discover HCL manifests under %s: %w", root, err)
	}

	store := config.NewStore()
	for _, path := range paths {
		file, diags := l.parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
		}

		body, ok := file.Body.(*hclsyntax.Body)
		if !ok {
			return nil, fmt.Errorf("%s: unexpected HCL body implementation %T", path, file.Body)
		}

		if len(body.Attributes) > 0 {
			for _, attr := range body.Attributes {
				return nil, fmt.Errorf("%s: unexpected top-level attribute %q; options belong inside a manifest block", path, attr.Name)
			}
		}

		for _, block := range body.Blocks {
			doc, err := translateManifest(path, block)
			if err != nil {
				return nil, err
			}
			if err := store.Add(doc); err != nil {
				return nil, err
			}
			logger.Debug("Loaded HCL manifest.", "name", doc.Name, "path", path, "bases", doc.Bases())
		}
	}
	return store, nil
}

// translateManifest converts one `manifest` block into a document.
func translateManifest(path string, block *hclsyntax.Block) (*config.Document, error) {
	if block.Type != manifestBlockType {
		return nil, fmt.Errorf("%s: unsupported block type %q; only %q blocks are allowed at the top level", path, block.Type, manifestBlockType)
	}
	if len(block.Labels) != 1 {
		return nil, fmt.Errorf("%s: a %s block requires exactly one name label", path, manifestBlockType)
	}

	doc := &config.Document{
		Name:   block.Labels[0],
		Path:   path,
		Format: config.FormatHCL,
	}

	for name, attr := range block.Body.Attributes {
		if name != extendsAttr {
			continue
		}
		bases, err := decodeExtends(path, attr)
		if err != nil {
			return nil, err
		}
		for _, base := range bases {
			doc.Defaults = append(doc.Defaults, config.DefaultsEntry{Base: base})
		}
	}
	// The HCL frontend has no self marker; the body always applies last.
	doc.Defaults = append(doc.Defaults, config.DefaultsEntry{Self: true})

	body, err := bodyToCty(path, block.Body, true)
	if err != nil {
		return nil, fmt.Errorf("%s: in manifest %q: %w", path, doc.Name, err)
	}
	doc.Body = body
	return doc, nil
}

// decodeExtends evaluates the `extends` attribute into base document names.
func decodeExtends(path string, attr *hclsyntax.Attribute) ([]string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: invalid %s attribute: %w", path, extendsAttr, diags)
	}
	if val.IsNull() || !val.CanIterateElements() {
		return nil, fmt.Errorf("%s: %s must be a list of document names", path, extendsAttr)
	}

	var bases []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() || elem.Type() != cty.String {
			return nil, fmt.Errorf("%s: %s entries must be strings", path, extendsAttr)
		}
		bases = append(bases, elem.AsString())
	}
	return bases, nil
}

// bodyToCty translates a block body into a cty object: attributes evaluate
// as constant expressions, nested blocks become nested objects. topLevel
// suppresses the reserved extends attribute from the body.
func bodyToCty(path string, body *hclsyntax.Body, topLevel bool) (cty.Value, error) {
	attrs := make(map[string]cty.Value)

	for name, attr := range body.Attributes {
		if topLevel && name == extendsAttr {
			continue
		}
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return cty.NilVal, fmt.Errorf("invalid value for %q: %w", name, diags)
		}
		attrs[name] = val
	}

	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			return cty.NilVal, fmt.Errorf("nested block %q must not carry labels", block.Type)
		}
		if _, dup := attrs[block.Type]; dup {
			return cty.NilVal, fmt.Errorf("duplicate key %q", block.Type)
		}
		nested, err := bodyToCty(path, block.Body, false)
		if err != nil {
			return cty.NilVal, err
		}
		attrs[block.Type] = nested
	}

	if len(attrs) == 0 {
		return cty.EmptyObjectVal, nil
	}
	return cty.ObjectVal(attrs), nil
}
