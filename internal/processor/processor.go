package processor

import (
	"context"
	"fmt"
	"os"
	"time"

	"vocal-emotion-go/internal/extractor"
	"vocal-emotion-go/internal/fetch"
	"vocal-emotion-go/internal/scorer"
	"vocal-emotion-go/internal/types"
	"vocal-emotion-go/internal/wav"
)

// Result is the envelope returned by /analyze and the batch runner.
type Result struct {
	CallID     string               `json:"call_id,omitempty"`
	AudioURL   string               `json:"audio_url,omitempty"`
	Features   types.AudioFeatures  `json:"audio_features"`
	Profile    *types.EmotionResult `json:"emotion_profile,omitempty"`
	DurationMs int64                `json:"duration_ms"`
	Error      string               `json:"error,omitempty"`
}

// AnalyzeURL downloads a recording, decodes it and runs the scoring
// pipeline. The overall timeout covers the download; decode and analysis
// are bounded by the 30-second window cap and need no cancellation.
func AnalyzeURL(audioURL string, timeout time.Duration) (Result, error) {
	start := time.Now()
	res := Result{AudioURL: audioURL}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	raw, err := fetch.Audio(ctx, audioURL)
	if err != nil {
		res.Error = fmt.Sprintf("fetch error: %v", err)
		res.DurationMs = time.Since(start).Milliseconds()
		return res, err
	}
	return analyzeBytes(res, raw, start)
}

// AnalyzePath runs the pipeline over a local WAV file.
func AnalyzePath(path string) (Result, error) {
	start := time.Now()
	res := Result{AudioURL: path}
	raw, err := os.ReadFile(path)
	if err != nil {
		res.Error = fmt.Sprintf("read error: %v", err)
		res.DurationMs = time.Since(start).Milliseconds()
		return res, err
	}
	return analyzeBytes(res, raw, start)
}

// AnalyzeBytes runs the pipeline over an in-memory WAV payload, e.g. a
// multipart upload.
func AnalyzeBytes(raw []byte) (Result, error) {
	return analyzeBytes(Result{}, raw, time.Now())
}

func analyzeBytes(res Result, raw []byte, start time.Time) (Result, error) {
	wave, err := wav.Decode(raw)
	if err != nil {
		res.Error = fmt.Sprintf("decode error: %v", err)
		res.DurationMs = time.Since(start).Milliseconds()
		return res, err
	}

	features, err := extractor.Extract(wave)
	if err != nil {
		res.Error = fmt.Sprintf("analysis error: %v", err)
		res.DurationMs = time.Since(start).Milliseconds()
		return res, err
	}
	res.Features = features

	profile := scorer.Score(features, features.DurationAnalyzed)
	profile.Timestamp = time.Now() // presentation timestamp, caller-side clock
	res.Profile = &profile

	res.DurationMs = time.Since(start).Milliseconds()
	return res, nil
}
