package actionable

import (
	"fmt"

	"vocal-emotion-go/internal/aggregator"
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// Generate turns a batch insight into a single recommended action.
func Generate(ins aggregator.Insight) ActionCard {
	if ins.TotalAnalyzed == 0 {
		return ActionCard{
			Insight: "No recordings analyzed",
			Action:  "Check dataset audio links and rerun the batch",
			Impact:  "None until data is available",
		}
	}
	if ins.HighRiskShare >= 0.35 {
		return ActionCard{
			Insight: fmt.Sprintf("Elevated conflict risk in %.0f%% of calls (mean risk %.0f)", ins.HighRiskShare*100, ins.MeanRisk),
			Action:  "Route flagged calls to senior agents for review; enable supervisor barge-in",
			Impact:  "Catch escalations before repeat contact",
		}
	}
	return ActionCard{
		Insight: fmt.Sprintf("Vocal tone mostly settled (mean risk %.0f)", ins.MeanRisk),
		Action:  "Monitor and collect more recordings",
		Impact:  "Low immediate intervention",
	}
}
