// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/ik5/aedset/errdefs"
)

func windowFunc(name string) (func(int) []float64, error) {
	switch name {
	case "", "hann", "hanning":
		return window.Hann, nil
	case "hamming":
		return window.Hamming, nil
	case "blackman":
		return window.Blackman, nil
	case "bartlett":
		return window.Bartlett, nil
	case "rectangular", "boxcar", "ones":
		return window.Rectangular, nil
	}
	return nil, errdefs.Configf("unknown window %q", name)
}

// periodicWindow returns a length-winLength periodic window centered in a
// zero buffer of length nFFT.
func periodicWindow(fn func(int) []float64, winLength, nFFT int) []float64 {
	w := fn(winLength + 1)[:winLength]
	out := make([]float64, nFFT)
	copy(out[(nFFT-winLength)/2:], w)
	return out
}

// reflectIndex mirrors i into [0, n) without repeating the edge sample.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

func padSignal(y []float32, pad int, mode string) []float64 {
	n := len(y)
	out := make([]float64, n+2*pad)
	for i := range out {
		j := i - pad
		switch {
		case j >= 0 && j < n:
			out[i] = float64(y[j])
		case n == 0:
		case mode == "reflect":
			out[i] = float64(y[reflectIndex(j, n)])
		case mode == "edge":
			out[i] = float64(y[min(max(j, 0), n-1)])
		}
	}
	return out
}

// Spectrogram is a mel spectrogram stored mel-major: Data[m*Frames+t].
type Spectrogram struct {
	NMels  int
	Frames int
	Data   []float32
}

// At returns the value for mel band m at frame t.
func (s Spectrogram) At(m, t int) float32 {
	return s.Data[m*s.Frames+t]
}

type stft struct {
	nFFT   int
	hop    int
	center bool
	pad    string
	power  float64
	window []float64
	fft    *fourier.FFT
}

func newSTFT(cfg Config) (*stft, error) {
	fn, err := windowFunc(cfg.Window)
	if err != nil {
		return nil, err
	}
	return &stft{
		nFFT:   cfg.NFFT,
		hop:    cfg.HopLength,
		center: cfg.Center,
		pad:    cfg.PadMode,
		power:  cfg.Power,
		window: periodicWindow(fn, cfg.windowLength(), cfg.NFFT),
		fft:    fourier.NewFFT(cfg.NFFT),
	}, nil
}

func (s *stft) frameCount(n int) int {
	if s.center {
		n += 2 * (s.nFFT / 2)
	}
	if n < s.nFFT {
		return 1
	}
	return 1 + (n-s.nFFT)/s.hop
}

// melPower frames y, takes |X|^power per bin and projects through fb.
func (s *stft) melPower(y []float32, fb *Filterbank) Spectrogram {
	var padded []float64
	if s.center {
		padded = padSignal(y, s.nFFT/2, s.pad)
	} else {
		padded = padSignal(y, 0, "constant")
	}
	if len(padded) < s.nFFT {
		padded = append(padded, make([]float64, s.nFFT-len(padded))...)
	}

	frames := 1 + (len(padded)-s.nFFT)/s.hop
	spec := Spectrogram{
		NMels:  fb.NumMels(),
		Frames: frames,
		Data:   make([]float32, fb.NumMels()*frames),
	}

	frame := make([]float64, s.nFFT)
	power := make([]float64, s.nFFT/2+1)
	var coeffs []complex128

	for t := range frames {
		start := t * s.hop
		for k := range frame {
			frame[k] = padded[start+k] * s.window[k]
		}
		coeffs = s.fft.Coefficients(coeffs, frame)
		for k, c := range coeffs {
			mag := cmplx.Abs(c)
			switch s.power {
			case 1:
				power[k] = mag
			case 2:
				power[k] = mag * mag
			default:
				power[k] = math.Pow(mag, s.power)
			}
		}
		fb.Apply(power, spec.Data[t:], frames)
	}

	return spec
}
