// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"iter"
	"math/rand/v2"
	"slices"

	"gorgonia.org/tensor"

	"github.com/ik5/aedset/errdefs"
)

// Batch is one step of a stream.
type Batch struct {
	Patches *tensor.Dense // (B, n_mels, patch_length[, 1])
	Labels  *tensor.Dense // (B, K)
	ClipIDs []int         // nil unless the stream carries clip ids
}

// Stream is a materialized patch set served in batches.
type Stream struct {
	patches    []float32
	labels     []float32
	clipIDs    []int
	patchShape []int
	k          int
	batchSize  int

	shuffle bool
	seed    uint64
	cache   bool
	cached  []Batch
	epoch   int
}

func newStream(patches, labels []float32, clipIDs []int, patchShape []int, k, batchSize int) *Stream {
	return &Stream{
		patches:    patches,
		labels:     labels,
		clipIDs:    clipIDs,
		patchShape: patchShape,
		k:          k,
		batchSize:  batchSize,
	}
}

func (s *Stream) patchSize() int {
	n := 1
	for _, d := range s.patchShape {
		n *= d
	}
	return n
}

// NumPatches is the number of patches in the stream.
func (s *Stream) NumPatches() int { return len(s.labels) / s.k }

// Len is the number of batches per epoch.
func (s *Stream) Len() int {
	return (s.NumPatches() + s.batchSize - 1) / s.batchSize
}

// PatchShape is the shape of one patch.
func (s *Stream) PatchShape() []int { return slices.Clone(s.patchShape) }

// NumClasses is the label width.
func (s *Stream) NumClasses() int { return s.k }

// Shuffled reports whether epochs are served in shuffled batch order.
func (s *Stream) Shuffled() bool { return s.shuffle }

// ClipIDs returns the clip id of every patch in insertion order, or nil
// when the stream was built without them.
func (s *Stream) ClipIDs() []int { return s.clipIDs }

// Patches returns all patches as one (N, patch shape...) tensor. The
// tensor shares memory with the stream.
func (s *Stream) Patches() *tensor.Dense {
	return s.denseRange(0, s.NumPatches()).Patches
}

// Labels returns the (N, K) one-hot label tensor.
func (s *Stream) Labels() *tensor.Dense {
	return s.denseRange(0, s.NumPatches()).Labels
}

func (s *Stream) denseRange(from, to int) Batch {
	ps := s.patchSize()
	shape := append([]int{to - from}, s.patchShape...)
	b := Batch{
		Patches: tensor.New(
			tensor.Of(tensor.Float32),
			tensor.WithShape(shape...),
			tensor.WithBacking(s.patches[from*ps:to*ps]),
		),
		Labels: tensor.New(
			tensor.Of(tensor.Float32),
			tensor.WithShape(to-from, s.k),
			tensor.WithBacking(s.labels[from*s.k:to*s.k]),
		),
	}
	if s.clipIDs != nil {
		b.ClipIDs = s.clipIDs[from:to]
	}
	return b
}

func (s *Stream) baseBatches() []Batch {
	n := s.NumPatches()
	out := make([]Batch, 0, s.Len())
	for from := 0; from < n; from += s.batchSize {
		out = append(out, s.denseRange(from, min(from+s.batchSize, n)))
	}
	return out
}

func (s *Stream) epochBatches() []Batch {
	if s.cache && s.cached != nil {
		return s.cached
	}

	batches := s.baseBatches()
	if s.shuffle {
		rng := rand.New(rand.NewPCG(s.seed, uint64(s.epoch)))
		rng.Shuffle(len(batches), func(i, j int) { batches[i], batches[j] = batches[j], batches[i] })
	}
	s.epoch++

	if s.cache {
		s.cached = batches
	}
	return batches
}

// Batches yields one epoch. Each call starts a new epoch; shuffled
// streams draw a fresh batch order per epoch unless caching is on, in
// which case the first epoch is replayed.
func (s *Stream) Batches() iter.Seq[Batch] {
	return func(yield func(Batch) bool) {
		for _, b := range s.epochBatches() {
			if !yield(b) {
				return
			}
		}
	}
}

// Reshuffled returns a stream over the same patches that shuffles batch
// order with seed. Streams carrying clip ids cannot be reordered.
func (s *Stream) Reshuffled(seed uint64) (*Stream, error) {
	if s.clipIDs != nil {
		return nil, errdefs.Configf("cannot shuffle a stream that carries clip ids")
	}
	out := newStream(s.patches, s.labels, nil, s.patchShape, s.k, s.batchSize)
	out.shuffle = true
	out.seed = seed
	out.cache = s.cache
	return out, nil
}
