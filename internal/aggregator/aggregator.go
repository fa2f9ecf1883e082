package aggregator

import "vocal-emotion-go/internal/types"

// Insight summarizes a batch of emotion profiles.
type Insight struct {
	TotalAnalyzed    int            `json:"total_analyzed"`
	RiskBuckets      map[string]int `json:"risk_buckets"`
	DominantEmotions map[string]int `json:"dominant_emotions"`
	MeanRisk         float64        `json:"mean_risk"`
	HighRiskShare    float64        `json:"high_risk_share"`
}

// RiskBucket maps a conflict-risk percentage to its reporting bucket.
func RiskBucket(risk int) string {
	switch {
	case risk < 25:
		return "low"
	case risk < 50:
		return "moderate"
	case risk < 75:
		return "elevated"
	default:
		return "high"
	}
}

// Aggregate folds per-call profiles into batch-level counts and rates.
func Aggregate(profiles []types.EmotionResult) Insight {
	buckets := map[string]int{}
	dominant := map[string]int{}
	riskSum := 0
	highish := 0
	for _, p := range profiles {
		b := RiskBucket(p.ConflictRisk)
		buckets[b]++
		dominant[p.Emotions.Dominant()]++
		riskSum += p.ConflictRisk
		if b == "elevated" || b == "high" {
			highish++
		}
	}
	ins := Insight{
		TotalAnalyzed:    len(profiles),
		RiskBuckets:      buckets,
		DominantEmotions: dominant,
	}
	if len(profiles) > 0 {
		ins.MeanRisk = float64(riskSum) / float64(len(profiles))
		ins.HighRiskShare = float64(highish) / float64(len(profiles))
	}
	return ins
}
