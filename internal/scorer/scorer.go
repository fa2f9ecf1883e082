// Package scorer maps extracted audio features onto the four-emotion
// profile and the conflict-risk index. The weights are heuristic and were
// tuned against call-center recordings; they are fixed constants, not a
// validated psychoacoustic model.
package scorer

import (
	"math"

	"vocal-emotion-go/internal/types"
)

// Score turns features into the normalized emotion profile. Total function
// over well-formed features: division by zero in the band ratios is already
// guarded upstream, and silence (all-zero features) resolves to a fully
// calm profile since only the calm formula has a positive base term.
func Score(f types.AudioFeatures, duration float64) types.EmotionResult {
	calm := math.Max(0, 100-f.RMSVariance*1000-f.ZCR*500)
	tense := math.Min(100, f.ZCR*800+f.RMSVariance*600)
	angry := math.Min(100, f.SpectralCentroid*50+f.HighFreqRatio*200)
	excited := math.Min(100, (f.RMSVariance+f.ZCR)*400)

	emotions := normalize(calm, tense, angry, excited)

	// Risk combines the post-round percentages, not the raw scores.
	risk := math.Round(float64(emotions.Tense)*0.4 + float64(emotions.Angry)*0.6 + float64(emotions.Excited)*0.2)
	if risk > 100 {
		risk = 100
	}

	return types.EmotionResult{
		Emotions:         emotions,
		ConflictRisk:     int(risk),
		DurationAnalyzed: round2(duration),
		Features: types.FeatureSummary{
			Volume:       int(math.Round(f.RMS * 1000)),
			Variability:  int(math.Round(f.RMSVariance * 1000)),
			ZeroCrossing: int(math.Round(f.ZCR * 100)),
		},
	}
}

// normalize converts raw scores to integer percentages of their total.
// The rounded values are NOT forced back to a 100 sum; a ±2 drift is
// accepted output behavior. The zero-total guard is defensive: no feature
// combination produces it through Score (calm's base term keeps the total
// positive whenever the other three are zero), but a caller-supplied even
// split beats dividing by zero.
func normalize(calm, tense, angry, excited float64) types.EmotionScores {
	total := calm + tense + angry + excited
	if total == 0 {
		return types.EmotionScores{Calm: 25, Tense: 25, Angry: 25, Excited: 25}
	}
	pct := func(s float64) int {
		return int(math.Round(s / total * 100))
	}
	return types.EmotionScores{
		Calm:    pct(calm),
		Tense:   pct(tense),
		Angry:   pct(angry),
		Excited: pct(excited),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
