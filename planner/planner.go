// SPDX-License-Identifier: EPL-2.0

// Package planner decides which clips go into which split.
//
// A Plan is made once per build from the configuration: tables are loaded
// for the selected dataset, split into training and validation, filtered
// to the requested classes (or composed with a garbage class) and given a
// single shared label space. Build then runs every split through a
// dataset.Assembler.
package planner

import (
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/ik5/aedset/cliptable"
	"github.com/ik5/aedset/config"
	"github.com/ik5/aedset/errdefs"
	"github.com/ik5/aedset/fsd50k"
	"github.com/ik5/aedset/labels"
	"github.com/ik5/aedset/logging"
)

// Split is a table and the folder its clips live in.
type Split struct {
	Name      string
	Table     *cliptable.Table
	AudioRoot string
}

// Plan is the frozen outcome of split planning.
type Plan struct {
	Space         *labels.Space
	Train         Split
	Valid         Split
	Quant         *Split // nil when no quantization set was configured
	Test          *Split // nil when no test set was configured
	FileExtension string
}

// Splits returns the configured splits in build order.
func (p *Plan) Splits() []Split {
	out := []Split{p.Train, p.Valid}
	if p.Quant != nil {
		out = append(out, *p.Quant)
	}
	if p.Test != nil {
		out = append(out, *p.Test)
	}
	return out
}

type planner struct {
	cfg    config.Config
	logger logging.Logger
	rng    *rand.Rand
}

// New plans the splits described by cfg. All randomness derives from
// cfg.Dataset.Seed.
func New(cfg config.Config, logger logging.Logger) (*Plan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Dataset.Seed
	p := &planner{
		cfg:    cfg,
		logger: logging.OrNop(logger),
		rng:    rand.New(rand.NewPCG(seed, seed)),
	}
	return p.plan()
}

func (p *planner) plan() (*Plan, error) {
	d := p.cfg.Dataset

	var (
		train, valid Split
		err          error
	)
	switch d.Name {
	case config.FSD50K:
		train, valid, err = p.fsd50kSplits()
	default:
		train, valid, err = p.escSplits()
	}
	if err != nil {
		return nil, err
	}

	quant, err := p.quantSplit(train)
	if err != nil {
		return nil, err
	}
	test, err := p.optionalSplit("test", d.TestCSVPath, d.TestAudioPath)
	if err != nil {
		return nil, err
	}

	plan := &Plan{FileExtension: d.FileExtension}
	for _, s := range []*Split{&train, &valid, quant, test} {
		if s == nil {
			continue
		}
		s.Table = p.compose(s.Name, s.Table)
	}

	plan.Space, err = labels.Build(d.ClassNames, train.Table.Categories())
	if err != nil {
		return nil, err
	}
	if _, ok := plan.Space.IndexOf(cliptable.Garbage); d.UseGarbageClass && !ok {
		p.logger.Warnf("garbage class enabled but training has no out-of-distribution clips; %q is not in the label space",
			cliptable.Garbage)
	}
	p.logger.Infof("classes used: %s", strings.Join(plan.Space.Names(), ", "))

	plan.Train, plan.Valid, plan.Quant, plan.Test = train, valid, quant, test
	for _, s := range plan.Splits() {
		p.logger.Infof("%s: %d clips", s.Name, s.Table.Len())
	}
	return plan, nil
}

// escSplits covers esc10 and custom datasets.
func (p *planner) escSplits() (Split, Split, error) {
	d := p.cfg.Dataset

	if d.TrainingCSVPath == "" {
		return Split{}, Split{}, errdefs.Configf("dataset.training_csv_path is required for %s", d.Name)
	}
	t, err := p.loadESC(d.TrainingCSVPath)
	if err != nil {
		return Split{}, Split{}, err
	}
	train := Split{Name: "training", Table: t, AudioRoot: d.TrainingAudioPath}

	switch {
	case d.ValidationCSVPath != "":
		v, err := p.loadESC(d.ValidationCSVPath)
		if err != nil {
			return Split{}, Split{}, err
		}
		root := d.ValidationAudioPath
		if root == "" {
			root = d.TrainingAudioPath
		}
		return train, Split{Name: "validation", Table: v, AudioRoot: root}, nil

	case d.ValidationSplit > 0:
		rest, v := t.StratifiedSplit(d.ValidationSplit, p.rng)
		train.Table = rest
		return train, Split{Name: "validation", Table: v, AudioRoot: d.TrainingAudioPath}, nil

	case d.Name == config.ESC10:
		if !t.Has(cliptable.ColFold) {
			return Split{}, Split{}, errdefs.Configf("%s has no fold column for the default validation split", d.TrainingCSVPath)
		}
		train.Table = t.Filter(func(r cliptable.Row) bool { return r.Fold != 5 })
		v := t.Filter(func(r cliptable.Row) bool { return r.Fold == 5 })
		return train, Split{Name: "validation", Table: v, AudioRoot: d.TrainingAudioPath}, nil
	}

	return Split{}, Split{}, errdefs.Configf("custom dataset needs validation_csv_path or validation_split")
}

func (p *planner) fsd50kSplits() (Split, Split, error) {
	d, f := p.cfg.Dataset, p.cfg.DatasetSpecific.FSD50K

	ignored := []struct{ key, value string }{
		{"training_audio_path", d.TrainingAudioPath},
		{"training_csv_path", d.TrainingCSVPath},
		{"validation_audio_path", d.ValidationAudioPath},
		{"validation_csv_path", d.ValidationCSVPath},
	}
	for _, kv := range ignored {
		if kv.value != "" {
			p.logger.Warnf("fsd50k uses the dev and eval sets; dataset.%s is ignored", kv.key)
		}
	}

	ont, err := fsd50k.LoadOntology(f.AudiosetOntologyPath)
	if err != nil {
		return Split{}, Split{}, err
	}
	tables, err := fsd50k.Prepare(fsd50k.Config{
		CSVFolder:         f.CSVFolder,
		ClassNames:        d.ClassNames,
		OnlyKeepMonolabel: f.OnlyKeepMonolabel,
	}, ont, p.logger)
	if err != nil {
		return Split{}, Split{}, err
	}

	devRoot, evalRoot := f.DevAudioFolder, f.EvalAudioFolder
	if devRoot == "" {
		devRoot = filepath.Join(filepath.Dir(f.CSVFolder), "FSD50K.dev_audio")
	}
	if evalRoot == "" {
		evalRoot = filepath.Join(filepath.Dir(f.CSVFolder), "FSD50K.eval_audio")
	}

	return Split{Name: "training", Table: tables.Dev, AudioRoot: devRoot},
		Split{Name: "validation", Table: tables.Eval, AudioRoot: evalRoot}, nil
}

// quantSplit loads the quantization table or samples it from training.
func (p *planner) quantSplit(train Split) (*Split, error) {
	d := p.cfg.Dataset
	if d.QuantizationCSVPath != "" {
		return p.optionalSplit("quantization", d.QuantizationCSVPath, d.QuantizationAudioPath)
	}
	if d.QuantizationSplit > 0 {
		return &Split{
			Name:      "quantization",
			Table:     train.Table.Sample(d.QuantizationSplit, p.rng),
			AudioRoot: train.AudioRoot,
		}, nil
	}
	return nil, nil
}

func (p *planner) optionalSplit(name, csvPath, audioRoot string) (*Split, error) {
	if csvPath == "" {
		return nil, nil
	}
	t, err := p.loadESC(csvPath)
	if err != nil {
		return nil, err
	}
	return &Split{Name: name, Table: t, AudioRoot: audioRoot}, nil
}

func (p *planner) loadESC(path string) (*cliptable.Table, error) {
	t, err := cliptable.LoadESC(path)
	if err != nil {
		return nil, err
	}
	if n := t.Duplicates(); n > 0 {
		p.logger.Warnf("%s: %d rows repeat an earlier filename and were dropped", path, n)
	}
	return t, nil
}

// compose filters t to the requested classes, folding the rest into the
// garbage class when enabled.
func (p *planner) compose(name string, t *cliptable.Table) *cliptable.Table {
	d := p.cfg.Dataset
	if !d.UseGarbageClass {
		return t.FilterCategories(d.ClassNames)
	}

	if d.NSamplesPerGarbageClass <= 0 {
		p.logger.Warnf("%s: n_samples_per_garbage_class not set, computing it", name)
	}
	out, n := cliptable.ComposeGarbage(t, d.ClassNames, d.NSamplesPerGarbageClass, p.rng, false)
	p.logger.Infof("%s: %d samples per garbage class, %d %q clips",
		name, n, out.CountByCategory()[cliptable.Garbage], cliptable.Garbage)
	return out
}
