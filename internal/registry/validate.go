package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lenslab/lensconf/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Apply performs a strict parity check between an effective configuration
// and the registered option groups, returning every group that was present,
// decoded, and validated.
//
// Unknown top-level groups are an error in strict mode; in lenient mode
// they are logged and carried through untyped. Unknown keys inside a known
// group are always an error, raised by the decoder.
func (r *Registry) Apply(ctx context.Context, effective cty.Value, lenient bool) (map[string]Validator, error) {
	logger := ctxlog.FromContext(ctx)

	if effective.IsNull() || !effective.Type().IsObjectType() {
		return nil, fmt.Errorf("effective configuration is not a mapping")
	}

	groupVals := effective.AsValueMap()
	names := make([]string, 0, len(groupVals))
	for name := range groupVals {
		names = append(names, name)
	}
	sort.Strings(names)

	decoded := make(map[string]Validator)
	var errs []string
	for _, name := range names {
		reg, known := r.Groups[name]
		if !known {
			if lenient {
				logger.Warn("Unknown option group carried through without validation.", "group", name)
				continue
			}
			errs = append(errs, fmt.Sprintf("unknown option group %q (known groups: %s)", name, strings.Join(r.groupNames(), ", ")))
			continue
		}

		val := groupVals[name]
		if val.IsNull() {
			// An inherited group masked with null is treated as absent.
			logger.Debug("Option group masked by null.", "group", name)
			continue
		}

		target := reg.New()
		if err := r.decode(ctx, val, target); err != nil {
			errs = append(errs, fmt.Sprintf("group %q: %v", name, err))
			continue
		}
		if err := target.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("group %q: %v", name, err))
			continue
		}
		decoded[name] = target
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return decoded, nil
}

func (r *Registry) groupNames() []string {
	names := make([]string, 0, len(r.Groups))
	for name := range r.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
