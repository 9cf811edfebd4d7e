// SPDX-License-Identifier: EPL-2.0

package cliptable

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func fiftyClasses() []string {
	cats := make([]string, 50)
	for i := range cats {
		cats[i] = fmt.Sprintf("class_%02d", i)
	}
	return cats
}

func TestComposeGarbage_AutoCount(t *testing.T) {
	t.Parallel()

	cats := fiftyClasses()
	tab := escTable(t, cats, 100)
	keep := cats[:5]

	got, n := ComposeGarbage(tab, keep, 0, rand.New(rand.NewPCG(42, 0)), false)

	if n != 12 {
		t.Errorf("n_per_other = %d, want ceil(500/45) = 12", n)
	}
	counts := got.CountByCategory()
	if counts[Garbage] != 540 {
		t.Errorf("other rows = %d, want 540", counts[Garbage])
	}
	for _, c := range keep {
		if counts[c] != 100 {
			t.Errorf("%s rows = %d, want 100", c, counts[c])
		}
	}
	if got.Len() != 1040 {
		t.Errorf("Len() = %d, want 1040", got.Len())
	}
}

func TestComposeGarbage_ExplicitCount(t *testing.T) {
	t.Parallel()

	tab := escTable(t, []string{"dog", "cat", "rain", "sea_waves"}, 10)
	got, n := ComposeGarbage(tab, []string{"dog"}, 3, rand.New(rand.NewPCG(1, 0)), false)

	if n != 3 {
		t.Errorf("n_per_other = %d, want 3", n)
	}
	if c := got.CountByCategory()[Garbage]; c != 9 {
		t.Errorf("other rows = %d, want 9", c)
	}
	// in-distribution rows come first and in input order
	for i := range 10 {
		if want := fmt.Sprintf("dog-%03d.wav", i); got.Filename(i) != want {
			t.Fatalf("Filename(%d) = %s, want %s", i, got.Filename(i), want)
		}
	}
}

func TestComposeGarbage_Deterministic(t *testing.T) {
	t.Parallel()

	tab := escTable(t, fiftyClasses(), 20)
	keep := []string{"class_01", "class_02"}

	a, _ := ComposeGarbage(tab, keep, 0, rand.New(rand.NewPCG(9, 9)), true)
	b, _ := ComposeGarbage(tab, keep, 0, rand.New(rand.NewPCG(9, 9)), true)

	if a.Len() != b.Len() {
		t.Fatalf("Len() = %d and %d", a.Len(), b.Len())
	}
	for i := range a.Len() {
		if a.Filename(i) != b.Filename(i) || a.Category(i) != b.Category(i) {
			t.Fatalf("row %d differs between runs", i)
		}
	}
}

func TestComposeGarbage_NoOutOfDistribution(t *testing.T) {
	t.Parallel()

	tab := escTable(t, []string{"dog", "cat"}, 5)
	got, n := ComposeGarbage(tab, []string{"dog", "cat"}, 0, rand.New(rand.NewPCG(1, 0)), false)
	if n != 0 || got.Len() != 10 {
		t.Errorf("ComposeGarbage() = %d rows, n = %d; want 10, 0", got.Len(), n)
	}
}
