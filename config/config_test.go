// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/aedset/errdefs"
)

const escYAML = `
general:
  log_level: debug
dataset:
  name: esc10
  class_names: [dog, chainsaw, crackling_fire, helicopter, rain]
  training_audio_path: ESC-50/audio
  training_csv_path: ESC-50/meta/esc50.csv
  use_garbage_class: true
  seed: 7
preprocessing:
  min_length: 1
  max_length: 5
  trim_last_second: true
feature_extraction:
  patch_length: 96
  overlap: 0.25
  to_db: true
training:
  batch_size: 16
`

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(escYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Dataset.Name != ESC10 || cfg.Dataset.Seed != 7 || !cfg.Dataset.UseGarbageClass {
		t.Errorf("Dataset = %+v", cfg.Dataset)
	}
	if !slices.Equal(cfg.Dataset.ClassNames, []string{"dog", "chainsaw", "crackling_fire", "helicopter", "rain"}) {
		t.Errorf("ClassNames = %v", cfg.Dataset.ClassNames)
	}
	if cfg.Preprocessing.MaxLength != 5 || !cfg.Preprocessing.TrimLastSecond {
		t.Errorf("Preprocessing = %+v", cfg.Preprocessing)
	}
	// untouched keys keep defaults
	if cfg.Preprocessing.TargetRate != 16000 || cfg.FeatureExtraction.NMels != 64 {
		t.Errorf("defaults lost: rate %d, n_mels %d", cfg.Preprocessing.TargetRate, cfg.FeatureExtraction.NMels)
	}
	if cfg.Dataset.FileExtension != "wav" || !cfg.Dataset.Shuffle {
		t.Errorf("defaults lost: %+v", cfg.Dataset)
	}

	fc := cfg.Feature()
	if fc.PatchLength != 96 || fc.Overlap != 0.25 || !fc.ToDB {
		t.Errorf("Feature() = %+v", fc)
	}
	if lc := cfg.Loader(); lc.MaxLength != 5 || lc.TargetRate != 16000 {
		t.Errorf("Loader() = %+v", lc)
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"no classes", "dataset:\n  name: esc10\n"},
		{"unknown dataset", "dataset:\n  name: urbansound\n  class_names: [dog]\n"},
		{"fsd50k without ontology", "dataset:\n  name: fsd50k\n  class_names: [Bark]\ndataset_specific:\n  fsd50k:\n    csv_folder: gt\n"},
		{"fsd50k without csv folder", "dataset:\n  name: fsd50k\n  class_names: [Bark]\ndataset_specific:\n  fsd50k:\n    audioset_ontology_path: o.json\n"},
		{"fmax above nyquist", "dataset:\n  class_names: [dog]\nfeature_extraction:\n  fmax: 9000\n"},
		{"min above max", "dataset:\n  class_names: [dog]\npreprocessing:\n  min_length: 6\n  max_length: 5\n"},
		{"overlap one", "dataset:\n  class_names: [dog]\nfeature_extraction:\n  overlap: 1.0\n"},
		{"validation split one", "dataset:\n  class_names: [dog]\n  validation_split: 1\n"},
		{"zero batch", "dataset:\n  class_names: [dog]\ntraining:\n  batch_size: 0\n"},
		{"bad log level", "general:\n  log_level: loud\ndataset:\n  class_names: [dog]\n"},
		{"unknown key", "dataset:\n  class_names: [dog]\n  colour: blue\n"},
		{"not yaml", "dataset: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Parse([]byte(tt.yaml)); !errdefs.IsConfig(err) {
				t.Errorf("Parse() error = %v, want config error", err)
			}
		})
	}
}

func TestDefault_NeedsClasses(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); !errdefs.IsConfig(err) {
		t.Fatalf("Validate() error = %v, want config error", err)
	}
	cfg.Dataset.ClassNames = []string{"dog"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "user_config.yaml")
	if err := os.WriteFile(path, []byte(escYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err != nil {
		t.Errorf("Load() error = %v", err)
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	if !errdefs.IsInput(err) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) error = %v", err)
	}
}
