package schema

import (
	"fmt"

	"github.com/lenslab/lensconf/internal/sensor"
)

// Mask type names accepted by trainable_mask.mask_type.
const (
	MaskTrainablePSF            = "TrainablePSF"
	MaskAdafruitLCD             = "AdafruitLCD"
	MaskTrainableCodedAperture  = "TrainableCodedAperture"
	MaskTrainableHeightVarying  = "TrainableHeightVarying"
	MaskTrainableMultiLensArray = "TrainableMultiLensArray"
)

// Reconstruction method names accepted by reconstruction.method.
const (
	MethodUnrolledADMM  = "unrolled_admm"
	MethodUnrolledFISTA = "unrolled_fista"
)

// validCrop checks a [lo, hi) pixel window.
func validCrop(name string, crop []int) error {
	if crop == nil {
		return nil
	}
	if len(crop) != 2 {
		return fmt.Errorf("%s must be a [low, high) pair, got %d values", name, len(crop))
	}
	if crop[0] < 0 || crop[1] <= crop[0] {
		return fmt.Errorf("%s must satisfy 0 <= low < high, got [%d, %d)", name, crop[0], crop[1])
	}
	return nil
}

// Validate checks the files group.
func (f *Files) Validate() error {
	if f.Dataset == "" {
		return fmt.Errorf("dataset is required")
	}
	if f.Downsample < 1 {
		return fmt.Errorf("downsample must be >= 1, got %d", f.Downsample)
	}
	if err := validCrop("vertical_crop", f.VerticalCrop); err != nil {
		return err
	}
	if err := validCrop("horizontal_crop", f.HorizontalCrop); err != nil {
		return err
	}
	if f.NFiles < 0 {
		return fmt.Errorf("n_files must be >= 0 (0 means all files), got %d", f.NFiles)
	}
	if f.InputSNR < 0 {
		return fmt.Errorf("input_snr must be >= 0, got %g", f.InputSNR)
	}
	return nil
}

// Validate checks the trainable_mask group.
func (m *TrainableMask) Validate() error {
	switch m.MaskType {
	case MaskTrainablePSF, MaskAdafruitLCD, MaskTrainableCodedAperture,
		MaskTrainableHeightVarying, MaskTrainableMultiLensArray:
	case "":
		return fmt.Errorf("mask_type is required")
	default:
		return fmt.Errorf("unknown mask_type %q", m.MaskType)
	}
	if err := validOptimizerType(m.Optimizer); err != nil {
		return err
	}
	if m.MaskLR <= 0 {
		return fmt.Errorf("mask_lr must be > 0, got %g", m.MaskLR)
	}
	if m.L1Strength < 0 {
		return fmt.Errorf("l1_strength must be >= 0, got %g", m.L1Strength)
	}
	heightVarying := m.MaskType == MaskTrainableHeightVarying || m.MaskType == MaskTrainableMultiLensArray
	if heightVarying && m.MinHeight <= 0 {
		return fmt.Errorf("min_height must be > 0 for %s masks, got %g", m.MaskType, m.MinHeight)
	}
	if m.Binary && m.MaskType != MaskTrainableCodedAperture {
		return fmt.Errorf("binary only applies to %s masks", MaskTrainableCodedAperture)
	}
	return nil
}

// Validate checks the simulation group, including that the named sensor
// exists in the sensor table.
func (s *Simulation) Validate() error {
	if s.ObjectHeight <= 0 {
		return fmt.Errorf("object_height must be > 0, got %g", s.ObjectHeight)
	}
	if s.Scene2Mask <= 0 {
		return fmt.Errorf("scene2mask must be > 0, got %g", s.Scene2Mask)
	}
	if s.Mask2Sensor <= 0 {
		return fmt.Errorf("mask2sensor must be > 0, got %g", s.Mask2Sensor)
	}
	if _, err := sensor.Lookup(s.Sensor); err != nil {
		return err
	}
	switch s.BitDepth {
	case 8, 10, 12, 16:
	default:
		return fmt.Errorf("bit_depth must be one of 8, 10, 12, 16, got %d", s.BitDepth)
	}
	if s.MaxVal < 1 {
		return fmt.Errorf("max_val must be >= 1, got %d", s.MaxVal)
	}
	return nil
}

// Validate checks the training group.
func (t *Training) Validate() error {
	if t.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1, got %d", t.BatchSize)
	}
	if t.Epoch < 1 {
		return fmt.Errorf("epoch must be >= 1, got %d", t.Epoch)
	}
	if t.SaveEvery < 1 {
		return fmt.Errorf("save_every must be >= 1, got %d", t.SaveEvery)
	}
	if t.EvalBatchSize < 1 {
		return fmt.Errorf("eval_batch_size must be >= 1, got %d", t.EvalBatchSize)
	}
	if t.ClipGrad < 0 {
		return fmt.Errorf("clip_grad must be >= 0 (0 disables clipping), got %g", t.ClipGrad)
	}
	return nil
}

func validOptimizerType(name string) error {
	switch name {
	case "Adam", "AdamW", "SGD":
		return nil
	default:
		return fmt.Errorf("unknown optimizer type %q (expected Adam, AdamW, or SGD)", name)
	}
}

// Validate checks the optimizer group.
func (o *Optimizer) Validate() error {
	if err := validOptimizerType(o.Type); err != nil {
		return err
	}
	if o.LR <= 0 {
		return fmt.Errorf("lr must be > 0, got %g", o.LR)
	}
	if o.FinalLR < 0 {
		return fmt.Errorf("final_lr must be >= 0 (0 means constant schedule), got %g", o.FinalLR)
	}
	if o.FinalLR > 0 && o.FinalLR >= o.LR {
		return fmt.Errorf("final_lr (%g) must be below lr (%g)", o.FinalLR, o.LR)
	}
	if o.ExpDecay < 0 {
		return fmt.Errorf("exp_decay must be >= 0, got %g", o.ExpDecay)
	}
	if o.SlowStart < 0 {
		return fmt.Errorf("slow_start must be >= 0, got %d", o.SlowStart)
	}
	return nil
}

func (p *ProcessNet) validate(stage string) error {
	switch p.Network {
	case "", "UnetRes", "DruNet":
	default:
		return fmt.Errorf("%s.network must be empty, UnetRes, or DruNet, got %q", stage, p.Network)
	}
	if p.Network != "" && p.Depth < 1 {
		return fmt.Errorf("%s.depth must be >= 1 when a network is set, got %d", stage, p.Depth)
	}
	if p.Freeze < 0 {
		return fmt.Errorf("%s.freeze must be >= 0, got %d", stage, p.Freeze)
	}
	return nil
}

// Validate checks the reconstruction group. Only the sub-tree of the
// selected method is range-checked; the other may carry inherited values.
func (r *Reconstruction) Validate() error {
	if err := r.PreProcess.validate("pre_process"); err != nil {
		return err
	}
	if err := r.PostProcess.validate("post_process"); err != nil {
		return err
	}

	switch r.Method {
	case MethodUnrolledADMM:
		a := r.UnrolledADMM
		if a.NIter < 1 {
			return fmt.Errorf("unrolled_admm.n_iter must be >= 1, got %d", a.NIter)
		}
		if a.Mu1 <= 0 || a.Mu2 <= 0 || a.Mu3 <= 0 {
			return fmt.Errorf("unrolled_admm penalty weights mu1, mu2, mu3 must be > 0")
		}
		if a.Tau <= 0 {
			return fmt.Errorf("unrolled_admm.tau must be > 0, got %g", a.Tau)
		}
	case MethodUnrolledFISTA:
		f := r.UnrolledFISTA
		if f.NIter < 1 {
			return fmt.Errorf("unrolled_fista.n_iter must be >= 1, got %d", f.NIter)
		}
		if f.Tk <= 0 {
			return fmt.Errorf("unrolled_fista.tk must be > 0, got %g", f.Tk)
		}
	case "":
		return fmt.Errorf("method is required")
	default:
		return fmt.Errorf("unknown method %q (expected %s or %s)", r.Method, MethodUnrolledADMM, MethodUnrolledFISTA)
	}
	return nil
}

// Validate checks the loss group.
func (l *Loss) Validate() error {
	switch l.ReconLoss {
	case "l1", "l2":
	default:
		return fmt.Errorf("recon_loss must be l1 or l2, got %q", l.ReconLoss)
	}
	if l.LPIPS < 0 {
		return fmt.Errorf("lpips must be >= 0 (0 disables the perceptual term), got %g", l.LPIPS)
	}
	return nil
}

// Validate checks the eval group.
func (e *Eval) Validate() error {
	if e.BatchSize < 1 {
		return fmt.Errorf("batch_size must be >= 1, got %d", e.BatchSize)
	}
	for _, m := range e.Metrics {
		switch m {
		case "MSE", "PSNR", "SSIM", "LPIPS":
		default:
			return fmt.Errorf("unknown metric %q (expected MSE, PSNR, SSIM, or LPIPS)", m)
		}
	}
	if e.NFiles < 0 {
		return fmt.Errorf("n_files must be >= 0, got %d", e.NFiles)
	}
	for _, idx := range e.SaveIdx {
		if idx < 0 {
			return fmt.Errorf("save_idx entries must be >= 0, got %d", idx)
		}
	}
	return nil
}
