// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"slices"
	"testing"

	"github.com/ik5/aedset/errdefs"
)

// syntheticStream has n single-value patches numbered 0..n-1.
func syntheticStream(n, batchSize int) *Stream {
	patches := make([]float32, n)
	labels := make([]float32, 2*n)
	for i := range n {
		patches[i] = float32(i)
		labels[2*i+i%2] = 1
	}
	return newStream(patches, labels, nil, []int{1, 1}, 2, batchSize)
}

func epochOrder(s *Stream) []float32 {
	var out []float32
	for b := range s.Batches() {
		out = append(out, b.Patches.Data().([]float32)...)
	}
	return out
}

func TestStream_UnshuffledOrder(t *testing.T) {
	t.Parallel()

	s := syntheticStream(7, 3)
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if got, want := epochOrder(s), []float32{0, 1, 2, 3, 4, 5, 6}; !slices.Equal(got, want) {
		t.Errorf("epoch = %v, want %v", got, want)
	}
}

func TestStream_ShufflesWholeBatches(t *testing.T) {
	t.Parallel()

	s, err := syntheticStream(40, 4).Reshuffled(11)
	if err != nil {
		t.Fatal(err)
	}

	first := epochOrder(s)
	// every batch keeps its four consecutive patches
	for i := 0; i < len(first); i += 4 {
		start := first[i]
		if int(start)%4 != 0 {
			t.Fatalf("batch at %d starts with %v", i, start)
		}
		for j := 1; j < 4; j++ {
			if first[i+j] != start+float32(j) {
				t.Fatalf("batch at %d is not contiguous: %v", i, first[i:i+4])
			}
		}
	}

	sorted := slices.Clone(first)
	slices.Sort(sorted)
	if !slices.Equal(sorted, epochOrder(syntheticStream(40, 4))) {
		t.Error("shuffled epoch is not a permutation")
	}
	if slices.Equal(first, sorted) {
		t.Error("ten batches came out in insertion order")
	}

	second := epochOrder(s)
	if slices.Equal(first, second) {
		t.Error("two epochs share the same order")
	}
}

func TestStream_ShuffleIsReproducible(t *testing.T) {
	t.Parallel()

	a, _ := syntheticStream(40, 4).Reshuffled(5)
	b, _ := syntheticStream(40, 4).Reshuffled(5)
	for epoch := range 3 {
		if !slices.Equal(epochOrder(a), epochOrder(b)) {
			t.Fatalf("epoch %d differs for the same seed", epoch)
		}
	}
}

func TestStream_CacheReplaysFirstEpoch(t *testing.T) {
	t.Parallel()

	s := syntheticStream(40, 4)
	s.cache = true
	s, _ = s.Reshuffled(3)

	first := epochOrder(s)
	if second := epochOrder(s); !slices.Equal(first, second) {
		t.Errorf("cached epochs differ: %v vs %v", first, second)
	}
}

func TestStream_ReshuffledWithClipIDs(t *testing.T) {
	t.Parallel()

	s := syntheticStream(4, 2)
	s.clipIDs = []int{0, 0, 1, 2}
	if _, err := s.Reshuffled(1); !errdefs.IsConfig(err) {
		t.Errorf("Reshuffled() error = %v, want config error", err)
	}
}

func TestStream_EarlyBreak(t *testing.T) {
	t.Parallel()

	s := syntheticStream(10, 2)
	n := 0
	for range s.Batches() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d batches, want 2", n)
	}
	if got := epochOrder(s); len(got) != 10 {
		t.Errorf("next epoch has %d patches, want 10", len(got))
	}
}
