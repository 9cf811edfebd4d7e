// SPDX-License-Identifier: EPL-2.0

// Package config reads the YAML file that drives a dataset build.
//
//	general:
//	  log_level: info
//	dataset:
//	  name: esc10
//	  class_names: [dog, chainsaw, crackling_fire, helicopter, rain]
//	  training_audio_path: ESC-50/audio
//	  training_csv_path: ESC-50/meta/esc50.csv
//	preprocessing:
//	  target_rate: 16000
//	feature_extraction:
//	  patch_length: 50
//	  n_mels: 64
//	training:
//	  batch_size: 64
//
// Missing keys keep the values from Default.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ik5/aedset/audio"
	"github.com/ik5/aedset/errdefs"
	"github.com/ik5/aedset/feature"
	"github.com/ik5/aedset/logging"
)

// Dataset names.
const (
	ESC10  = "esc10"
	Custom = "custom"
	FSD50K = "fsd50k"
)

// General holds process-wide settings.
type General struct {
	LogLevel string `yaml:"log_level"`
}

// Dataset selects the corpus, its splits and the garbage class policy.
type Dataset struct {
	Name          string   `yaml:"name"`
	ClassNames    []string `yaml:"class_names"`
	FileExtension string   `yaml:"file_extension"`

	TrainingAudioPath     string  `yaml:"training_audio_path"`
	TrainingCSVPath       string  `yaml:"training_csv_path"`
	ValidationAudioPath   string  `yaml:"validation_audio_path"`
	ValidationCSVPath     string  `yaml:"validation_csv_path"`
	ValidationSplit       float64 `yaml:"validation_split"`
	QuantizationAudioPath string  `yaml:"quantization_audio_path"`
	QuantizationCSVPath   string  `yaml:"quantization_csv_path"`
	QuantizationSplit     float64 `yaml:"quantization_split"`
	TestAudioPath         string  `yaml:"test_audio_path"`
	TestCSVPath           string  `yaml:"test_csv_path"`

	UseGarbageClass         bool `yaml:"use_garbage_class"`
	NSamplesPerGarbageClass int  `yaml:"n_samples_per_garbage_class"`

	ExpandLastDim bool   `yaml:"expand_last_dim"`
	Seed          uint64 `yaml:"seed"`
	ToCache       bool   `yaml:"to_cache"`
	Shuffle       bool   `yaml:"shuffle"`
}

// FSD50KConfig locates the FSD50K ground truth, audio and ontology.
type FSD50KConfig struct {
	CSVFolder            string `yaml:"csv_folder"`
	DevAudioFolder       string `yaml:"dev_audio_folder"`
	EvalAudioFolder      string `yaml:"eval_audio_folder"`
	AudiosetOntologyPath string `yaml:"audioset_ontology_path"`
	OnlyKeepMonolabel    bool   `yaml:"only_keep_monolabel"`
}

// DatasetSpecific holds settings that apply to one dataset only.
type DatasetSpecific struct {
	FSD50K FSD50KConfig `yaml:"fsd50k"`
}

// Preprocessing configures the waveform loader.
type Preprocessing struct {
	MinLength      float64 `yaml:"min_length"`
	MaxLength      float64 `yaml:"max_length"`
	TargetRate     int     `yaml:"target_rate"`
	TopDB          float64 `yaml:"top_db"`
	FrameLength    int     `yaml:"frame_length"`
	HopLength      int     `yaml:"hop_length"`
	TrimLastSecond bool    `yaml:"trim_last_second"`
}

// FeatureExtraction configures the log-mel patch extractor.
type FeatureExtraction struct {
	PatchLength      int     `yaml:"patch_length"`
	NMels            int     `yaml:"n_mels"`
	Overlap          float64 `yaml:"overlap"`
	NFFT             int     `yaml:"n_fft"`
	HopLength        int     `yaml:"hop_length"`
	WindowLength     int     `yaml:"window_length"`
	Window           string  `yaml:"window"`
	Center           bool    `yaml:"center"`
	PadMode          string  `yaml:"pad_mode"`
	Power            float64 `yaml:"power"`
	FMin             float64 `yaml:"fmin"`
	FMax             float64 `yaml:"fmax"`
	Norm             string  `yaml:"norm"`
	HTK              bool    `yaml:"htk"`
	ToDB             bool    `yaml:"to_db"`
	IncludeLastPatch bool    `yaml:"include_last_patch"`
}

// Training holds the stream settings used by the training loop.
type Training struct {
	BatchSize int `yaml:"batch_size"`
}

// Config is the whole build configuration.
type Config struct {
	General           General           `yaml:"general"`
	Dataset           Dataset           `yaml:"dataset"`
	DatasetSpecific   DatasetSpecific   `yaml:"dataset_specific"`
	Preprocessing     Preprocessing     `yaml:"preprocessing"`
	FeatureExtraction FeatureExtraction `yaml:"feature_extraction"`
	Training          Training          `yaml:"training"`
}

// Default returns the configuration used for keys a file leaves out.
func Default() Config {
	lc := audio.DefaultLoaderConfig()
	fc := feature.DefaultConfig()

	return Config{
		General: General{LogLevel: "info"},
		Dataset: Dataset{
			Name:          ESC10,
			FileExtension: "wav",
			Seed:          133,
			Shuffle:       true,
		},
		Preprocessing: Preprocessing{
			MinLength:      lc.MinLength,
			MaxLength:      lc.MaxLength,
			TargetRate:     lc.TargetRate,
			TopDB:          lc.TopDB,
			FrameLength:    lc.FrameLength,
			HopLength:      lc.HopLength,
			TrimLastSecond: lc.TrimLastSecond,
		},
		FeatureExtraction: FeatureExtraction{
			PatchLength:      fc.PatchLength,
			NMels:            fc.NMels,
			Overlap:          fc.Overlap,
			NFFT:             fc.NFFT,
			HopLength:        fc.HopLength,
			WindowLength:     fc.WindowLength,
			Window:           fc.Window,
			Center:           fc.Center,
			PadMode:          fc.PadMode,
			Power:            fc.Power,
			FMin:             fc.FMin,
			FMax:             fc.FMax,
			Norm:             fc.Norm,
			HTK:              fc.HTK,
			ToDB:             fc.ToDB,
			IncludeLastPatch: fc.IncludeLastPatch,
		},
		Training: Training{BatchSize: 64},
	}
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errdefs.Input(path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errdefs.Configf("parsing yaml: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Loader returns the waveform loader settings.
func (c Config) Loader() audio.LoaderConfig {
	p := c.Preprocessing
	return audio.LoaderConfig{
		TargetRate:     p.TargetRate,
		MinLength:      p.MinLength,
		MaxLength:      p.MaxLength,
		TopDB:          p.TopDB,
		FrameLength:    p.FrameLength,
		HopLength:      p.HopLength,
		TrimLastSecond: p.TrimLastSecond,
	}
}

// Feature returns the patch extraction settings.
func (c Config) Feature() feature.Config {
	f := c.FeatureExtraction
	return feature.Config{
		PatchLength:      f.PatchLength,
		Overlap:          f.Overlap,
		NFFT:             f.NFFT,
		HopLength:        f.HopLength,
		WindowLength:     f.WindowLength,
		Window:           f.Window,
		Center:           f.Center,
		PadMode:          f.PadMode,
		Power:            f.Power,
		NMels:            f.NMels,
		FMin:             f.FMin,
		FMax:             f.FMax,
		Norm:             f.Norm,
		HTK:              f.HTK,
		ToDB:             f.ToDB,
		IncludeLastPatch: f.IncludeLastPatch,
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.General.LogLevel); err != nil {
		return errdefs.Configf("general.log_level: %v", err)
	}

	d := c.Dataset
	switch d.Name {
	case ESC10, Custom, FSD50K:
	default:
		return errdefs.Configf("unknown dataset name %q", d.Name)
	}
	if len(d.ClassNames) == 0 {
		return errdefs.Configf("dataset.class_names is empty")
	}
	for name, v := range map[string]float64{
		"validation_split":   d.ValidationSplit,
		"quantization_split": d.QuantizationSplit,
	} {
		if v < 0 || v >= 1 {
			return errdefs.Configf("dataset.%s must be in [0, 1), got %v", name, v)
		}
	}
	if d.NSamplesPerGarbageClass < 0 {
		return errdefs.Configf("dataset.n_samples_per_garbage_class must not be negative")
	}

	if d.Name == FSD50K {
		f := c.DatasetSpecific.FSD50K
		if f.AudiosetOntologyPath == "" {
			return errdefs.Configf("fsd50k needs dataset_specific.fsd50k.audioset_ontology_path")
		}
		if f.CSVFolder == "" {
			return errdefs.Configf("fsd50k needs dataset_specific.fsd50k.csv_folder")
		}
	}

	if c.Training.BatchSize <= 0 {
		return errdefs.Configf("training.batch_size must be positive, got %d", c.Training.BatchSize)
	}
	if err := c.Loader().Validate(); err != nil {
		return err
	}
	return c.Feature().Validate(c.Preprocessing.TargetRate)
}
