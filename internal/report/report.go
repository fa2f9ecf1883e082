// Package report persists batch runs: a JSON bundle per session plus an
// xlsx sheet for spreadsheet consumers.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"vocal-emotion-go/internal/actionable"
	"vocal-emotion-go/internal/aggregator"
	"vocal-emotion-go/internal/processor"
)

// Bundle is the persisted record of one batch run.
type Bundle struct {
	SessionID   string                `json:"session_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Results     []processor.Result    `json:"results"`
	Insight     aggregator.Insight    `json:"insight"`
	ActionCard  actionable.ActionCard `json:"action_card"`
}

// Persist writes the bundle under a fresh session directory and returns
// the session id and the paths written.
func Persist(outputsRoot string, results []processor.Result, ins aggregator.Insight, card actionable.ActionCard) (sessionID, jsonPath, xlsxPath string, err error) {
	sid := "session_" + time.Now().Format("20060102-150405") + "_" + uuid.New().String()[:8]
	dir := filepath.Join(outputsRoot, sid)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", "", "", fmt.Errorf("mkdir outputs: %w", err)
	}

	bundle := Bundle{
		SessionID:   sid,
		GeneratedAt: time.Now(),
		Results:     results,
		Insight:     ins,
		ActionCard:  card,
	}

	jsonPath = filepath.Join(dir, "profiles.json")
	if err = writeJSON(jsonPath, bundle); err != nil {
		return "", "", "", err
	}

	xlsxPath = filepath.Join(dir, "profiles.xlsx")
	if err = writeXLSX(xlsxPath, results); err != nil {
		return "", "", "", err
	}
	return sid, jsonPath, xlsxPath, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var xlsxHeader = []string{
	"call_id", "audio_url", "calm", "tense", "angry", "excited",
	"conflict_risk", "risk_bucket", "duration_analyzed", "volume",
	"variability", "zero_crossing", "error",
}

func writeXLSX(path string, results []processor.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, h := range xlsxHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, r := range results {
		row := []any{r.CallID, r.AudioURL}
		if p := r.Profile; p != nil {
			row = append(row,
				p.Emotions.Calm, p.Emotions.Tense, p.Emotions.Angry, p.Emotions.Excited,
				p.ConflictRisk, aggregator.RiskBucket(p.ConflictRisk),
				p.DurationAnalyzed, p.Features.Volume, p.Features.Variability, p.Features.ZeroCrossing,
			)
		} else {
			row = append(row, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)
		}
		row = append(row, r.Error)
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f.SaveAs(path)
}
