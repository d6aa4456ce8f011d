package schema

// Files locates the training data and describes how raw measurements are
// pre-shaped before entering the pipeline.
type Files struct {
	Dataset        string  `lens:"dataset"`
	PSF            string  `lens:"psf"`
	Downsample     int     `lens:"downsample"`
	VerticalCrop   []int   `lens:"vertical_crop"`
	HorizontalCrop []int   `lens:"horizontal_crop"`
	NFiles         int     `lens:"n_files"`
	InputSNR       float64 `lens:"input_snr"`
}

func newFiles() *Files {
	return &Files{
		Downsample: 1,
	}
}

// TrainableMask configures the jointly-learned optical element.
type TrainableMask struct {
	MaskType   string  `lens:"mask_type"`
	Optimizer  string  `lens:"optimizer"`
	MaskLR     float64 `lens:"mask_lr"`
	L1Strength float64 `lens:"l1_strength"`
	MinHeight  float64 `lens:"min_height"`
	Binary     bool    `lens:"binary"`
}

func newTrainableMask() *TrainableMask {
	return &TrainableMask{
		Optimizer: "Adam",
		MaskLR:    1e-3,
		MinHeight: 1e-5,
	}
}

// Simulation carries the physical constants of the measurement model.
// Distances and heights are in meters.
type Simulation struct {
	ObjectHeight float64 `lens:"object_height"`
	Scene2Mask   float64 `lens:"scene2mask"`
	Mask2Sensor  float64 `lens:"mask2sensor"`
	Sensor       string  `lens:"sensor"`
	SNRdB        float64 `lens:"snr_db"`
	BitDepth     int     `lens:"bit_depth"`
	MaxVal       int     `lens:"max_val"`
	FlipUD       bool    `lens:"flip_ud"`
	RandomVFlip  bool    `lens:"random_vflip"`
}

func newSimulation() *Simulation {
	return &Simulation{
		ObjectHeight: 0.6,
		Scene2Mask:   0.4,
		Mask2Sensor:  4e-3,
		Sensor:       "rpi_hq",
		SNRdB:        40,
		BitDepth:     12,
		MaxVal:       255,
	}
}

// Training controls the outer loop cadence and its failure policies.
type Training struct {
	BatchSize     int     `lens:"batch_size"`
	Epoch         int     `lens:"epoch"`
	SaveEvery     int     `lens:"save_every"`
	EvalBatchSize int     `lens:"eval_batch_size"`
	SkipNaN       bool    `lens:"skip_nan"`
	ClipGrad      float64 `lens:"clip_grad"`
	CropPreloss   bool    `lens:"crop_preloss"`
}

func newTraining() *Training {
	return &Training{
		BatchSize:     8,
		Epoch:         25,
		SaveEvery:     1,
		EvalBatchSize: 16,
		SkipNaN:       true,
		ClipGrad:      1.0,
	}
}

// Optimizer selects the parameter-update algorithm and its schedule.
// FinalLR of zero means a constant learning rate; a positive value enables
// cosine decay towards it.
type Optimizer struct {
	Type      string  `lens:"type"`
	LR        float64 `lens:"lr"`
	FinalLR   float64 `lens:"final_lr"`
	ExpDecay  float64 `lens:"exp_decay"`
	SlowStart int     `lens:"slow_start"`
}

func newOptimizer() *Optimizer {
	return &Optimizer{
		Type: "Adam",
		LR:   1e-4,
	}
}

// ProcessNet describes the denoiser attached before or after the unrolled
// solver. An empty network name disables the stage.
type ProcessNet struct {
	Network string `lens:"network"`
	Depth   int    `lens:"depth"`
	Freeze  int    `lens:"freeze"`
}

// UnrolledADMM holds the per-iteration hyperparameters of the unrolled ADMM
// solver.
type UnrolledADMM struct {
	NIter            int     `lens:"n_iter"`
	Mu1              float64 `lens:"mu1"`
	Mu2              float64 `lens:"mu2"`
	Mu3              float64 `lens:"mu3"`
	Tau              float64 `lens:"tau"`
	LearnHyperparams bool    `lens:"learn_hyperparams"`
}

// UnrolledFISTA holds the per-iteration hyperparameters of the unrolled
// FISTA solver.
type UnrolledFISTA struct {
	NIter   int     `lens:"n_iter"`
	Tk      float64 `lens:"tk"`
	LearnTk bool    `lens:"learn_tk"`
}

// Reconstruction selects the unrolled solver and its surrounding networks.
// Both per-method sub-trees may be populated (a base manifest typically
// carries defaults for each); only the selected method's tree is consulted.
type Reconstruction struct {
	Method        string        `lens:"method"`
	PreProcess    ProcessNet    `lens:"pre_process"`
	PostProcess   ProcessNet    `lens:"post_process"`
	UnrolledADMM  UnrolledADMM  `lens:"unrolled_admm"`
	UnrolledFISTA UnrolledFISTA `lens:"unrolled_fista"`
}

func newReconstruction() *Reconstruction {
	return &Reconstruction{
		Method: MethodUnrolledADMM,
		UnrolledADMM: UnrolledADMM{
			NIter:            5,
			Mu1:              1e-4,
			Mu2:              1e-4,
			Mu3:              1e-4,
			Tau:              2e-4,
			LearnHyperparams: true,
		},
		UnrolledFISTA: UnrolledFISTA{
			NIter:   5,
			Tk:      1.0,
			LearnTk: true,
		},
	}
}

// Loss combines the primary reconstruction loss with an optional perceptual
// term. An LPIPS weight of zero disables the perceptual loss.
type Loss struct {
	ReconLoss string  `lens:"recon_loss"`
	LPIPS     float64 `lens:"lpips"`
}

func newLoss() *Loss {
	return &Loss{
		ReconLoss: "l2",
		LPIPS:     1.0,
	}
}

// Eval configures the benchmark pass run between training epochs.
type Eval struct {
	BatchSize int      `lens:"batch_size"`
	Metrics   []string `lens:"metrics"`
	NFiles    int      `lens:"n_files"`
	SaveIdx   []int    `lens:"save_idx"`
}

func newEval() *Eval {
	return &Eval{
		BatchSize: 1,
		Metrics:   []string{"MSE", "PSNR", "SSIM", "LPIPS"},
	}
}

// Config is the fully-typed view of an effective configuration. Groups
// absent from the manifests stay nil.
type Config struct {
	Files          *Files
	TrainableMask  *TrainableMask
	Simulation     *Simulation
	Training       *Training
	Optimizer      *Optimizer
	Reconstruction *Reconstruction
	Loss           *Loss
	Eval           *Eval
}
