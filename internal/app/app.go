package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lenslab/lensconf/internal/config"
	"github.com/lenslab/lensconf/internal/ctxlog"
	"github.com/lenslab/lensconf/internal/hclconf"
	"github.com/lenslab/lensconf/internal/registry"
	"github.com/lenslab/lensconf/internal/resolver"
	"github.com/lenslab/lensconf/internal/schema"
	"github.com/lenslab/lensconf/internal/yamlconf"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	loaders  []config.Loader
	store    *config.Store
	resolver *resolver.Resolver
	registry *registry.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, a store populated
// by every frontend, and a validated registry. Command output goes to outW;
// logs go to logW.
func NewApp(outW, logW io.Writer, appConfig *Config, loaders ...config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = []config.Loader{yamlconf.NewLoader(), hclconf.NewLoader()}
	}

	// Load every manifest into the format-agnostic store.
	store := config.NewStore()
	for _, loader := range loaders {
		part, err := loader.Load(ctx, appConfig.ConfigDir)
		if err != nil {
			// A failure to load manifests is a fatal startup error.
			panic(fmt.Errorf("failed to load manifests: %w", err))
		}
		if err := store.Absorb(part); err != nil {
			panic(fmt.Errorf("failed to load manifests: %w", err))
		}
	}
	logger.Debug("Manifests loaded into unified store.", "documents", store.Len())

	// Building the resolver verifies base references and inheritance acyclicity.
	res, err := resolver.New(ctx, store)
	if err != nil {
		panic(fmt.Errorf("invalid manifest hierarchy: %w", err))
	}
	logger.Debug("Inheritance structure verified.")

	// Create and populate the registry with the known option groups.
	reg := registry.New(schema.Decode)
	schema.Module{}.Register(reg)
	logger.Debug("Option groups registered.", "count", len(reg.Groups))

	return &App{
		outW:     outW,
		logger:   logger,
		loaders:  loaders,
		store:    store,
		resolver: res,
		registry: reg,
	}
}

// reload re-reads every manifest from disk and swaps in a fresh store and
// resolver. Unlike startup, a reload failure is not fatal: the caller keeps
// the previous state.
func (a *App) reload(ctx context.Context, configDir string) error {
	store := config.NewStore()
	for _, loader := range a.loaders {
		part, err := loader.Load(ctx, configDir)
		if err != nil {
			return fmt.Errorf("failed to reload manifests: %w", err)
		}
		if err := store.Absorb(part); err != nil {
			return fmt.Errorf("failed to reload manifests: %w", err)
		}
	}

	res, err := resolver.New(ctx, store)
	if err != nil {
		return fmt.Errorf("invalid manifest hierarchy: %w", err)
	}

	a.store = store
	a.resolver = res
	return nil
}

// Store returns the application's manifest store. This is primarily for testing.
func (a *App) Store() *config.Store {
	return a.store
}
