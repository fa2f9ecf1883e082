package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		start, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, start, &row))
	}
	path := filepath.Join(t.TempDir(), "recordings.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoad(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Call ID", "City", "Audio Recording URL"},
		{"c-001", "pune", "https://cdn.example.com/c-001.wav"},
		{"c-002", "jaipur", "not-a-url"},
		{"c-003", "", "http://cdn.example.com/c-003.wav"},
	})

	records, err := Load(path)
	require.NoError(t, err)

	require.Len(t, records, 2, "rows without an http link are skipped")
	assert.Equal(t, "c-001", records[0].CallID)
	assert.Equal(t, "https://cdn.example.com/c-001.wav", records[0].AudioURL)
	assert.Equal(t, "pune", records[0].City)
	assert.Equal(t, "c-003", records[1].CallID)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)

	headerOnly := writeWorkbook(t, [][]any{{"Call ID", "Audio URL"}})
	_, err = Load(headerOnly)
	assert.Error(t, err)
}
