// Package extractor turns a decoded mono waveform into the fixed set of
// statistical features the scorer consumes. Every pass is a single linear
// sweep over a capped window, so cost stays O(sampleRate * 30) no matter
// how long the source clip is.
package extractor

import (
	"errors"
	"math"

	"vocal-emotion-go/internal/types"
)

// ErrEmptyInput is returned when the sample buffer has zero length. The
// only recovery is supplying new input.
var ErrEmptyInput = errors.New("empty sample buffer")

const (
	// MaxWindowSeconds caps the analyzed window; samples past it are ignored.
	MaxWindowSeconds = 30.0
	// CentroidFrame is how many opening samples feed the centroid proxy.
	CentroidFrame = 1024
)

// Extract computes the feature set over at most MaxWindowSeconds of audio.
// It is a pure function: same waveform in, bit-identical features out.
func Extract(w types.Waveform) (types.AudioFeatures, error) {
	if len(w.Samples) == 0 {
		return types.AudioFeatures{}, ErrEmptyInput
	}

	window := w.Samples[:windowLen(w)]
	n := float64(len(window))

	rms := math.Sqrt(meanSquare(window))

	// Dispersion around RMS, not around the sample mean. Classical variance
	// would center on mean(x); this deliberately centers on rms for output
	// compatibility with prior releases.
	variance := 0.0
	for _, x := range window {
		d := x - rms
		variance += d * d
	}
	variance /= n

	low, high := bandRatios(window)

	return types.AudioFeatures{
		RMS:              rms,
		RMSVariance:      variance,
		ZCR:              zeroCrossingRate(window),
		SpectralCentroid: centroid(window),
		LowFreqRatio:     low,
		HighFreqRatio:    high,
		DurationAnalyzed: n / float64(w.SampleRate),
		SampleRate:       w.SampleRate,
	}, nil
}

// windowLen clamps the analysis window to MaxWindowSeconds of samples.
// A degenerate declared duration (zero or garbage small) falls back to the
// whole buffer rather than producing an empty window.
func windowLen(w types.Waveform) int {
	capSec := math.Min(w.Duration, MaxWindowSeconds)
	n := int(capSec * float64(w.SampleRate))
	if n <= 0 || n > len(w.Samples) {
		n = len(w.Samples)
	}
	return n
}

func meanSquare(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x * x
	}
	return sum / float64(len(xs))
}

// zeroCrossingRate is the fraction of adjacent pairs whose product is
// strictly negative. Exact zeros never count as crossings, so silence runs
// contribute nothing.
func zeroCrossingRate(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(xs); i++ {
		if xs[i-1]*xs[i] < 0 {
			crossings++
		}
	}
	return float64(crossings) / float64(len(xs)-1)
}

// bandRatios splits the window into three contiguous positional thirds and
// reports the first and last third's share of total absolute amplitude.
// Despite the low/high "frequency" naming downstream, this is a position
// split, not a spectral one.
func bandRatios(xs []float64) (low, high float64) {
	third := len(xs) / 3
	var lowSum, midSum, highSum float64
	for i, x := range xs {
		a := math.Abs(x)
		switch {
		case i < third:
			lowSum += a
		case i < 2*third:
			midSum += a
		default:
			highSum += a
		}
	}
	total := lowSum + midSum + highSum
	if total == 0 {
		return 0, 0
	}
	return lowSum / total, highSum / total
}

// centroid is the amplitude-weighted sample-index centroid of the opening
// CentroidFrame samples only. It proxies brightness; it is not a frequency.
func centroid(xs []float64) float64 {
	frame := len(xs)
	if frame > CentroidFrame {
		frame = CentroidFrame
	}
	var weighted, magnitude float64
	for i := 0; i < frame; i++ {
		a := math.Abs(xs[i])
		weighted += float64(i) * a
		magnitude += a
	}
	if magnitude == 0 {
		return 0
	}
	return weighted / magnitude
}
