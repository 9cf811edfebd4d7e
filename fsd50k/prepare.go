// SPDX-License-Identifier: EPL-2.0

package fsd50k

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ik5/aedset/cliptable"
	"github.com/ik5/aedset/logging"
)

// Ground truth inputs and the diagnostic tables written beside them.
const (
	DevCSV  = "dev.csv"
	EvalCSV = "eval.csv"

	UnsmearedDevCSV          = "unsmeared_dev.csv"
	UnsmearedEvalCSV         = "unsmeared_eval.csv"
	ModelZooUnsmearedDevCSV  = "model_zoo_unsmeared_dev.csv"
	ModelZooUnsmearedEvalCSV = "model_zoo_unsmeared_eval.csv"
)

// Config locates the FSD50K ground truth and sets the projection policy.
type Config struct {
	CSVFolder         string
	ClassNames        []string
	OnlyKeepMonolabel bool
}

// Tables holds the monolabel dev and eval tables in ESC layout.
type Tables struct {
	Dev  *cliptable.Table
	Eval *cliptable.Table
}

// Prepare unsmears and projects both ground truth files and persists the
// intermediate tables into cfg.CSVFolder.
func Prepare(cfg Config, ont *Ontology, logger logging.Logger) (*Tables, error) {
	logger = logging.OrNop(logger)

	dev, err := prepareOne(cfg, ont, logger, DevCSV, UnsmearedDevCSV, ModelZooUnsmearedDevCSV)
	if err != nil {
		return nil, err
	}
	eval, err := prepareOne(cfg, ont, logger, EvalCSV, UnsmearedEvalCSV, ModelZooUnsmearedEvalCSV)
	if err != nil {
		return nil, err
	}
	return &Tables{Dev: dev, Eval: eval}, nil
}

func prepareOne(cfg Config, ont *Ontology, logger logging.Logger, in, unsmeared, projected string) (*cliptable.Table, error) {
	raw, err := cliptable.LoadFSD50K(filepath.Join(cfg.CSVFolder, in))
	if err != nil {
		return nil, err
	}

	if n := raw.Duplicates(); n > 0 {
		logger.Warnf("%s: %d rows repeat an earlier fname and were dropped", in, n)
	}
	if ids := unknownMIDs(raw, ont); len(ids) > 0 {
		logger.Warnf("%s: %d label ids are not in the ontology and are never unsmeared: %s",
			in, len(ids), strings.Join(ids, ", "))
	}

	u := Unsmear(raw, ont)
	if err := cliptable.SaveFile(filepath.Join(cfg.CSVFolder, unsmeared), u, cliptable.WriteFSD50K); err != nil {
		return nil, err
	}

	mono, dropped := ProjectMonolabel(u, cfg.ClassNames, cfg.OnlyKeepMonolabel)
	if err := cliptable.SaveFile(filepath.Join(cfg.CSVFolder, projected), mono, cliptable.WriteESC); err != nil {
		return nil, err
	}

	logger.Infof("%s: %d clips, %d kept as monolabel, %d dropped", in, raw.Len(), mono.Len(), dropped)
	return mono, nil
}

// unknownMIDs lists, sorted, the label ids of t that ont does not define.
func unknownMIDs(t *cliptable.Table, ont *Ontology) []string {
	seen := make(map[string]struct{})
	for _, r := range t.Rows() {
		for _, id := range r.MIDs {
			if _, ok := ont.Name(id); !ok {
				seen[id] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}
