package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"vocal-emotion-go/internal/logger"
	"vocal-emotion-go/internal/types"
)

// Load reads the recordings workbook, auto-detecting the audio URL column
// by header heuristics. Rows without an http(s) audio link are skipped.
func Load(path string) ([]types.RecordingRecord, error) {
	log := logger.Component("dataset").WithField("path", path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	audioIdx, callIDIdx, cityIdx := -1, -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "audio") || strings.Contains(l, "record") || strings.Contains(l, "url") || strings.Contains(l, "link"):
			if audioIdx == -1 {
				audioIdx = i
			}
		case strings.Contains(l, "call id") || strings.Contains(l, "callid") || strings.Contains(l, "id"):
			if callIDIdx == -1 {
				callIDIdx = i
			}
		case strings.Contains(l, "city"):
			cityIdx = i
		}
	}
	log.WithField("audio_idx", audioIdx).WithField("call_id_idx", callIDIdx).Debug("detected columns")

	var out []types.RecordingRecord
	for i, r := range rows {
		if i == 0 {
			continue
		}
		rec := types.RecordingRecord{}
		if callIDIdx >= 0 && callIDIdx < len(r) {
			rec.CallID = strings.TrimSpace(r[callIDIdx])
		}
		if audioIdx >= 0 && audioIdx < len(r) {
			rec.AudioURL = strings.TrimSpace(r[audioIdx])
		}
		if cityIdx >= 0 && cityIdx < len(r) {
			rec.City = strings.TrimSpace(r[cityIdx])
		}
		l := strings.ToLower(rec.AudioURL)
		if !strings.HasPrefix(l, "http://") && !strings.HasPrefix(l, "https://") {
			// skip invalid audio rows quietly
			continue
		}
		out = append(out, rec)
	}
	log.WithField("records", len(out)).Info("recordings loaded")
	return out, nil
}
