// SPDX-License-Identifier: EPL-2.0

package errdefs

import (
	"errors"
	"io/fs"
	"testing"
)

func TestConfigf(t *testing.T) {
	t.Parallel()

	err := Configf("classes not found: %v", []string{"dog"})
	if !errors.Is(err, ErrConfig) {
		t.Fatal("errors.Is(err, ErrConfig) = false, want true")
	}
	if errors.Is(err, ErrInput) {
		t.Error("errors.Is(err, ErrInput) = true, want false")
	}

	want := "config error: classes not found: [dog]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestInput_KeepsCause(t *testing.T) {
	t.Parallel()

	err := Input("dog/1.wav", fs.ErrNotExist)
	if !IsInput(err) {
		t.Error("IsInput() = false, want true")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, want true")
	}
	if IsConfig(err) {
		t.Error("IsConfig() = true, want false")
	}
}
