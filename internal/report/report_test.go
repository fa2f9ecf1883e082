package report

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"vocal-emotion-go/internal/actionable"
	"vocal-emotion-go/internal/aggregator"
	"vocal-emotion-go/internal/processor"
	"vocal-emotion-go/internal/types"
)

func TestPersist(t *testing.T) {
	outputs := t.TempDir()
	profile := types.EmotionResult{
		Emotions:         types.EmotionScores{Calm: 60, Tense: 20, Angry: 5, Excited: 15},
		ConflictRisk:     14,
		DurationAnalyzed: 12.5,
		Features:         types.FeatureSummary{Volume: 210, Variability: 12, ZeroCrossing: 9},
	}
	results := []processor.Result{
		{CallID: "c-001", AudioURL: "https://cdn.example.com/c-001.wav", Profile: &profile},
		{CallID: "c-002", AudioURL: "https://cdn.example.com/c-002.wav", Error: "fetch error: download failed: 404 Not Found"},
	}
	ins := aggregator.Aggregate([]types.EmotionResult{profile})
	card := actionable.Generate(ins)

	sid, jsonPath, xlsxPath, err := Persist(outputs, results, ins, card)
	require.NoError(t, err)
	assert.NotEmpty(t, sid)

	// JSON bundle round-trips
	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var bundle Bundle
	require.NoError(t, json.Unmarshal(raw, &bundle))
	assert.Equal(t, sid, bundle.SessionID)
	require.Len(t, bundle.Results, 2)
	assert.Equal(t, 14, bundle.Results[0].Profile.ConflictRisk)
	assert.Equal(t, 1, bundle.Insight.TotalAnalyzed)

	// xlsx carries header plus one row per result
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "call_id", rows[0][0])
	assert.Equal(t, "c-001", rows[1][0])
	assert.Equal(t, "low", rows[1][7])
}
