// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/ik5/aedset/audio"
	"github.com/ik5/aedset/errdefs"
	"github.com/ik5/aedset/formats"
	"github.com/ik5/aedset/internal/audiotest"
)

func newLoader(t *testing.T) *audio.Loader {
	t.Helper()

	l, err := audio.NewLoader(audio.DefaultLoaderConfig(), formats.NewRegistry())
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	return l
}

func TestLoader_LoadStereo44k(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mono := audiotest.Tone(44100*2, 44100, 440, 0.5)
	stereo := make([]float32, 2*len(mono))
	for i, v := range mono {
		stereo[2*i], stereo[2*i+1] = v, v
	}
	path := audiotest.WriteWAV(t, dir, "dog/1.wav", 44100, 2, stereo)

	w, err := newLoader(t).Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if w.Rate != 16000 {
		t.Errorf("Rate = %d, want 16000", w.Rate)
	}
	if len(w.Samples) != 32000 {
		t.Errorf("len = %d, want 32000", len(w.Samples))
	}
	if w.Seconds() != 2 {
		t.Errorf("Seconds() = %v, want 2", w.Seconds())
	}
}

func TestLoader_LoadShortClipTiled(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteWAV(t, t.TempDir(), "cat.wav", 16000, 1, audiotest.Tone(6400, 16000, 440, 0.5))

	w, err := newLoader(t).Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(w.Samples) != 16000 {
		t.Errorf("len = %d, want 16000", len(w.Samples))
	}
}

func TestLoader_LoadFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	empty := audiotest.WriteWAV(t, dir, "empty.wav", 16000, 1, nil)
	garbage := audiotest.WriteFile(t, dir, "garbage.wav", []byte("this is text pretending to be audio"))
	unknown := audiotest.WriteFile(t, dir, "clip.flac", []byte("fLaC"))

	tests := []struct {
		name  string
		path  string
		cause error
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.wav"), cause: fs.ErrNotExist},
		{name: "zero samples", path: empty},
		{name: "corrupt file", path: garbage},
		{name: "unknown extension", path: unknown, cause: audio.ErrUnsupportedFormat},
	}

	l := newLoader(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := l.Load(tt.path)
			if !errors.Is(err, errdefs.ErrInput) {
				t.Fatalf("Load() error = %v, want InputError", err)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("Load() error = %v, want cause %v", err, tt.cause)
			}
		})
	}
}
