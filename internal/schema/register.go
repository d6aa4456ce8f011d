package schema

import (
	"github.com/lenslab/lensconf/internal/registry"
)

// Module registers every option group of the training manifests. It
// implements registry.Module.
type Module struct{}

// Register contributes the groups to the registry.
func (Module) Register(r *registry.Registry) {
	r.RegisterGroup(&registry.RegisteredGroup{Name: "files", New: func() registry.Validator { return newFiles() }})
	r.RegisterGroup(&registry.RegisteredGroup{Name: "trainable_mask", New: func() registry.Validator { return newTrainableMask() }})
	r.RegisterGroup(&registry.RegisteredGroup{Name: "simulation", New: func() registry.Validator { return newSimulation() }})
	r.RegisterGroup(&registry.RegisteredGroup{Name: "training", New: func() registry.Validator { return newTraining() }})
	r.RegisterGroup(&registry.RegisteredGroup{Name: "optimizer", New: func() registry.Validator { return newOptimizer() }})
	r.RegisterGroup(&registry.RegisteredGroup{Name: "reconstruction", New: func() registry.Validator { return newReconstruction() }})
	r.RegisterGroup(&registry.RegisteredGroup{Name: "loss", New: func() registry.Validator { return newLoss() }})
	r.RegisterGroup(&registry.RegisteredGroup{Name: "eval", New: func() registry.Validator { return newEval() }})
}

// BuildConfig assembles the typed view from the validated groups returned
// by registry.Apply.
func BuildConfig(groups map[string]registry.Validator) *Config {
	cfg := &Config{}
	for _, g := range groups {
		switch t := g.(type) {
		case *Files:
			cfg.Files = t
		case *TrainableMask:
			cfg.TrainableMask = t
		case *Simulation:
			cfg.Simulation = t
		case *Training:
			cfg.Training = t
		case *Optimizer:
			cfg.Optimizer = t
		case *Reconstruction:
			cfg.Reconstruction = t
		case *Loss:
			cfg.Loss = t
		case *Eval:
			cfg.Eval = t
		}
	}
	return cfg
}
