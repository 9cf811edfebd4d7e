// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ik5/aedset/audio"
	"github.com/ik5/aedset/cliptable"
	"github.com/ik5/aedset/errdefs"
	"github.com/ik5/aedset/feature"
	"github.com/ik5/aedset/labels"
	"github.com/ik5/aedset/logging"
)

// Options controls how a table becomes a stream.
type Options struct {
	BatchSize     int
	Shuffle       bool
	Cache         bool
	ReturnClipIDs bool
	ExpandLastDim bool   // add a trailing channel axis to each patch
	Seed          uint64 // batch shuffle seed
	FileExtension string // appended to filenames that have none
}

// Assembler loads clips and extracts patches. Its Loader and Extractor
// must agree on the sample rate.
type Assembler struct {
	Loader    *audio.Loader
	Extractor *feature.Extractor
	Logger    logging.Logger
}

// ClipPath resolves a table filename under root, adding ext when the name
// has no extension.
func ClipPath(root, name, ext string) string {
	if filepath.Ext(name) == "" && ext != "" {
		name += "." + strings.TrimPrefix(ext, ".")
	}
	return filepath.Join(root, name)
}

// Assemble processes table in row order. A clip that fails to load aborts
// the build. Shuffle is ignored, with a warning, when clip ids are
// requested.
func (a *Assembler) Assemble(ctx context.Context, table *cliptable.Table, root string, space *labels.Space, opts Options) (*Stream, error) {
	logger := logging.OrNop(a.Logger)

	if a.Loader == nil || a.Extractor == nil {
		return nil, errdefs.Configf("assembler needs a loader and an extractor")
	}
	if rate := a.Loader.Config().TargetRate; rate != a.Extractor.Rate() {
		return nil, errdefs.Configf("loader rate %d does not match extractor rate %d", rate, a.Extractor.Rate())
	}
	if opts.BatchSize <= 0 {
		return nil, errdefs.Configf("batch size must be positive, got %d", opts.BatchSize)
	}
	if table.Len() == 0 {
		return nil, errdefs.Configf("table is empty")
	}

	shuffle := opts.Shuffle
	if shuffle && opts.ReturnClipIDs {
		logger.Warnf("shuffle disabled: clip ids are positional and require insertion order")
		shuffle = false
	}

	cfg := a.Extractor.Config()
	patchShape := []int{cfg.NMels, cfg.PatchLength}
	if opts.ExpandLastDim {
		patchShape = append(patchShape, 1)
	}

	var (
		patches []float32
		onehots []float32
		clipIDs []int
	)
	if opts.ReturnClipIDs {
		clipIDs = []int{}
	}
	onehot := make([]float32, space.K())

	for i := range table.Len() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := space.PutOneHot(onehot, table.Category(i)); err != nil {
			return nil, err
		}

		w, err := a.Loader.Load(ClipPath(root, table.Filename(i), opts.FileExtension))
		if err != nil {
			return nil, err
		}

		ps := a.Extractor.Extract(w.Samples)
		patches = ps.AppendTo(patches)
		for range ps.Len() {
			onehots = append(onehots, onehot...)
			if clipIDs != nil {
				clipIDs = append(clipIDs, i)
			}
		}
	}

	s := newStream(patches, onehots, clipIDs, patchShape, space.K(), opts.BatchSize)
	s.shuffle = shuffle
	s.seed = opts.Seed
	s.cache = opts.Cache

	logger.Infof("%d clips loaded, %d patches generated", table.Len(), s.NumPatches())
	return s, nil
}
