package types

import "time"

// Waveform is the decoded, single-channel PCM input to the analysis core.
// Decoding and channel selection happen upstream (internal/wav); the core
// only ever sees float samples in [-1, 1].
type Waveform struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
	Duration   float64   `json:"duration"` // true source duration in seconds, may exceed the analyzed window
}

// AudioFeatures is the fixed-shape output of the feature extractor.
//
// Naming note: LowFreqRatio/HighFreqRatio and SpectralCentroid are
// position-based and amplitude-weighted-index proxies, not frequency-domain
// measurements. The names are kept for output compatibility; replacing them
// with a real FFT would change every downstream score.
type AudioFeatures struct {
	RMS              float64 `json:"rms"`
	RMSVariance      float64 `json:"rms_variance"`
	ZCR              float64 `json:"zcr"`
	SpectralCentroid float64 `json:"spectral_centroid"`
	LowFreqRatio     float64 `json:"low_freq_ratio"`
	HighFreqRatio    float64 `json:"high_freq_ratio"`
	DurationAnalyzed float64 `json:"duration_analyzed"` // seconds actually analyzed, capped
	SampleRate       int     `json:"sample_rate"`
}

// EmotionScores holds the four normalized emotion percentages. After
// rounding the sum may drift to 100±2; that drift is accepted output
// behavior and is never renormalized away.
type EmotionScores struct {
	Calm    int `json:"calm"`
	Tense   int `json:"tense"`
	Angry   int `json:"angry"`
	Excited int `json:"excited"`
}

// FeatureSummary is the display-scaled view of the raw features.
type FeatureSummary struct {
	Volume       int `json:"volume"`        // rms * 1000
	Variability  int `json:"variability"`   // rms_variance * 1000
	ZeroCrossing int `json:"zero_crossing"` // zcr * 100
}

// EmotionResult is the profile delivered to callers.
type EmotionResult struct {
	Emotions         EmotionScores  `json:"emotions"`
	ConflictRisk     int            `json:"conflict_risk"`
	DurationAnalyzed float64        `json:"duration_analyzed"`
	Features         FeatureSummary `json:"features"`
	Timestamp        time.Time      `json:"timestamp,omitempty"` // caller-supplied wall clock, excluded from determinism
}

// Dominant returns the name of the highest-scoring emotion. Ties resolve
// in calm, tense, angry, excited order.
func (s EmotionScores) Dominant() string {
	name, best := "calm", s.Calm
	if s.Tense > best {
		name, best = "tense", s.Tense
	}
	if s.Angry > best {
		name, best = "angry", s.Angry
	}
	if s.Excited > best {
		name = "excited"
	}
	return name
}

// RecordingRecord is one row of the batch recordings workbook.
type RecordingRecord struct {
	CallID   string `json:"call_id"`
	AudioURL string `json:"audio_url"`
	City     string `json:"city,omitempty"`
}
