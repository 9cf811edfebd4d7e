// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/aedset/audio"
	"github.com/ik5/aedset/internal/audiotest"
)

func TestWriteFloat32_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	tone := audiotest.Tone(1600, 16000, 440, 0.5)
	if err := WriteFloat32(f, 16000, 1, tone); err != nil {
		t.Fatalf("WriteFloat32() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	src, err := Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got, err := audio.ReadAll(src, 256)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if len(got) != len(tone) {
		t.Fatalf("len = %d, want %d", len(got), len(tone))
	}
	for i := range tone {
		if math.Abs(float64(got[i]-tone[i])) > 1e-3 {
			t.Fatalf("got[%d] = %v, want ≈%v", i, got[i], tone[i])
		}
	}
}

func TestWriteFloat32_InvalidChannels(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := WriteFloat32(f, 16000, 0, []float32{0}); err == nil {
		t.Error("WriteFloat32() error = nil, want error for zero channels")
	}
}
