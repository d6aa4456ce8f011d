package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/lenslab/lensconf/internal/ctxlog"
	"github.com/lenslab/lensconf/internal/merge"
	"github.com/lenslab/lensconf/internal/registry"
	"github.com/lenslab/lensconf/internal/render"
	"github.com/lenslab/lensconf/internal/schema"
	"github.com/lenslab/lensconf/internal/sensor"
	"github.com/zclconf/go-cty/cty"
)

// Run executes the requested command against the loaded store.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", appConfig.Command)

	overrides, err := merge.ParseAll(appConfig.Overrides)
	if err != nil {
		return err
	}

	switch appConfig.Command {
	case CommandResolve:
		err = a.cmdResolve(ctx, appConfig, overrides)
	case CommandValidate:
		err = a.cmdValidate(ctx, appConfig, overrides)
	case CommandLineage:
		err = a.cmdLineage(ctx, appConfig)
	case CommandDiff:
		err = a.cmdDiff(ctx, appConfig)
	case CommandWatch:
		err = a.cmdWatch(ctx, appConfig, overrides)
	default:
		// NewConfig rejects unknown commands before we get here.
		err = fmt.Errorf("unknown command %q", appConfig.Command)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

// resolveAndValidate composes one document, applies overrides, and checks
// the result against the registered option groups.
func (a *App) resolveAndValidate(ctx context.Context, name string, overrides []*merge.Override, lenient bool) (cty.Value, map[string]registry.Validator, error) {
	effective, err := a.resolver.Resolve(ctx, name, overrides)
	if err != nil {
		return cty.NilVal, nil, err
	}
	groups, err := a.registry.Apply(ctx, effective, lenient)
	if err != nil {
		return cty.NilVal, nil, fmt.Errorf("document %q: %w", name, err)
	}
	return effective, groups, nil
}

func (a *App) cmdResolve(ctx context.Context, appConfig *Config, overrides []*merge.Override) error {
	name := appConfig.Targets[0]
	effective, groups, err := a.resolveAndValidate(ctx, name, overrides, appConfig.Lenient)
	if err != nil {
		return err
	}
	a.logGeometry(schema.BuildConfig(groups))

	var out []byte
	if appConfig.Format == "json" {
		out, err = render.ToJSON(effective)
	} else {
		out, err = render.ToYAML(effective)
	}
	if err != nil {
		return err
	}
	_, err = a.outW.Write(out)
	return err
}

func (a *App) cmdValidate(ctx context.Context, appConfig *Config, overrides []*merge.Override) error {
	targets := appConfig.Targets
	if len(targets) == 0 {
		targets = a.store.Names()
	}

	var failures []string
	for _, name := range targets {
		if _, _, err := a.resolveAndValidate(ctx, name, overrides, appConfig.Lenient); err != nil {
			a.logger.Error("Document failed validation.", "document", name, "error", err)
			failures = append(failures, name)
			continue
		}
		a.logger.Info("Document is valid.", "document", name)
		fmt.Fprintf(a.outW, "ok\t%s\n", name)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d documents failed validation: %s", len(failures), len(targets), strings.Join(failures, ", "))
	}
	return nil
}

func (a *App) cmdLineage(ctx context.Context, appConfig *Config) error {
	name := appConfig.Targets[0]
	lineage, err := a.resolver.Lineage(name)
	if err != nil {
		return err
	}

	// First writer first; the document's own body is usually last.
	for i, entry := range lineage {
		doc, _ := a.store.Get(entry)
		fmt.Fprintf(a.outW, "%d\t%s\t%s\n", i+1, entry, doc.Path)
	}
	return nil
}

func (a *App) cmdDiff(ctx context.Context, appConfig *Config) error {
	left, err := a.resolver.Resolve(ctx, appConfig.Targets[0], nil)
	if err != nil {
		return err
	}
	right, err := a.resolver.Resolve(ctx, appConfig.Targets[1], nil)
	if err != nil {
		return err
	}

	diff, err := render.Diff(left, right)
	if err != nil {
		return err
	}
	if diff == "" {
		a.logger.Info("Configurations are identical.", "left", appConfig.Targets[0], "right", appConfig.Targets[1])
		return nil
	}
	fmt.Fprint(a.outW, diff)
	return nil
}

// logGeometry reports the physical geometry implied by the simulation
// options, the same numbers the mask designer needs when checking a run.
func (a *App) logGeometry(cfg *schema.Config) {
	if cfg.Simulation == nil {
		return
	}
	s, err := sensor.Lookup(cfg.Simulation.Sensor)
	if err != nil {
		return
	}
	downsample := 1
	if cfg.Files != nil {
		downsample = cfg.Files.Downsample
	}
	size := s.SizeM()
	res := s.DownsampledResolution(downsample)
	a.logger.Debug("Derived sensor geometry.",
		"sensor", s.Name,
		"size_m", fmt.Sprintf("%.4gx%.4g", size[0], size[1]),
		"resolution", fmt.Sprintf("%dx%d", res[0], res[1]),
		"scene2mask_m", cfg.Simulation.Scene2Mask,
		"mask2sensor_m", cfg.Simulation.Mask2Sensor,
	)
}
