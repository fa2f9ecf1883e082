package processor

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toneWAV writes a mono 16-bit PCM sine tone as a WAV payload.
func toneWAV(seconds float64, rate int, freq float64) []byte {
	n := int(seconds * float64(rate))
	var frames bytes.Buffer
	for i := 0; i < n; i++ {
		v := 0.4 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
		binary.Write(&frames, binary.LittleEndian, int16(v*32767))
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+frames.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint32(rate))
	binary.Write(&buf, binary.LittleEndian, uint32(rate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(frames.Len()))
	buf.Write(frames.Bytes())
	return buf.Bytes()
}

func TestAnalyzeBytes_Tone(t *testing.T) {
	res, err := AnalyzeBytes(toneWAV(2, 8000, 440))
	require.NoError(t, err)
	require.NotNil(t, res.Profile)

	assert.Empty(t, res.Error)
	assert.Equal(t, 2.0, res.Profile.DurationAnalyzed)
	assert.False(t, res.Profile.Timestamp.IsZero())

	sum := res.Profile.Emotions.Calm + res.Profile.Emotions.Tense +
		res.Profile.Emotions.Angry + res.Profile.Emotions.Excited
	assert.GreaterOrEqual(t, sum, 98)
	assert.LessOrEqual(t, sum, 102)
	assert.GreaterOrEqual(t, res.Profile.ConflictRisk, 0)
	assert.LessOrEqual(t, res.Profile.ConflictRisk, 100)

	// a steady 440 Hz tone is loud enough to register
	assert.Greater(t, res.Features.RMS, 0.1)
}

func TestAnalyzeBytes_DeterministicProfile(t *testing.T) {
	payload := toneWAV(1, 16000, 330)
	a, err := AnalyzeBytes(payload)
	require.NoError(t, err)
	b, err := AnalyzeBytes(payload)
	require.NoError(t, err)

	// the presentation timestamp is wall clock; everything else is exact
	assert.Equal(t, a.Features, b.Features)
	assert.Equal(t, a.Profile.Emotions, b.Profile.Emotions)
	assert.Equal(t, a.Profile.ConflictRisk, b.Profile.ConflictRisk)
}

func TestAnalyzeBytes_NotAWave(t *testing.T) {
	res, err := AnalyzeBytes([]byte("definitely not audio"))
	require.Error(t, err)
	assert.Contains(t, res.Error, "decode error")
	assert.Nil(t, res.Profile)
}

func TestAnalyzePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.wav")
	require.NoError(t, os.WriteFile(path, toneWAV(1, 8000, 220), 0o644))

	res, err := AnalyzePath(path)
	require.NoError(t, err)
	require.NotNil(t, res.Profile)
	assert.Equal(t, path, res.AudioURL)

	_, err = AnalyzePath(filepath.Join(dir, "missing.wav"))
	assert.Error(t, err)
}
