// Package wav decodes RIFF/WAVE PCM payloads into the mono float waveform
// the analysis core consumes. It is the codec collaborator: the extractor
// and scorer never see container bytes, only normalized samples.
//
// Supported encodings: 8/16/24/32-bit integer PCM and 32-bit IEEE float.
// Multi-channel files are reduced by taking the first (left) channel.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"vocal-emotion-go/internal/types"
)

var (
	ErrNotWave          = errors.New("not a RIFF/WAVE file")
	ErrUnsupportedCodec = errors.New("unsupported codec (PCM and IEEE float only)")
)

const (
	formatPCM       = 1
	formatIEEEFloat = 3
)

type format struct {
	audioFormat   uint16
	channels      int
	sampleRate    int
	bitsPerSample int
}

// Decode parses b as a WAVE file and returns the first channel as float64
// samples in [-1, 1] plus the true clip duration.
func Decode(b []byte) (types.Waveform, error) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return types.Waveform{}, ErrNotWave
	}

	var fmtChunk *format
	var data []byte

	// Chunk walk. RIFF says fmt precedes data, but players accept either
	// order, so collect both before deciding.
	off := 12
	for off+8 <= len(b) {
		id := string(b[off : off+4])
		size := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
		body := off + 8
		if size < 0 || body+size > len(b) {
			return types.Waveform{}, fmt.Errorf("truncated %q chunk", id)
		}
		switch id {
		case "fmt ":
			f, err := parseFormat(b[body : body+size])
			if err != nil {
				return types.Waveform{}, err
			}
			fmtChunk = &f
		case "data":
			data = b[body : body+size]
		}
		// Chunks are word-aligned; odd sizes carry a pad byte.
		off = body + size + (size & 1)
	}

	if fmtChunk == nil {
		return types.Waveform{}, errors.New("missing fmt chunk")
	}
	if data == nil {
		return types.Waveform{}, errors.New("missing data chunk")
	}

	samples, err := decodeSamples(data, *fmtChunk)
	if err != nil {
		return types.Waveform{}, err
	}

	return types.Waveform{
		Samples:    samples,
		SampleRate: fmtChunk.sampleRate,
		Duration:   float64(len(samples)) / float64(fmtChunk.sampleRate),
	}, nil
}

func parseFormat(b []byte) (format, error) {
	if len(b) < 16 {
		return format{}, errors.New("fmt chunk too short")
	}
	f := format{
		audioFormat:   binary.LittleEndian.Uint16(b[0:2]),
		channels:      int(binary.LittleEndian.Uint16(b[2:4])),
		sampleRate:    int(binary.LittleEndian.Uint32(b[4:8])),
		bitsPerSample: int(binary.LittleEndian.Uint16(b[14:16])),
	}
	if f.audioFormat != formatPCM && f.audioFormat != formatIEEEFloat {
		return format{}, fmt.Errorf("%w: format tag %d", ErrUnsupportedCodec, f.audioFormat)
	}
	if f.channels <= 0 {
		return format{}, errors.New("invalid channel count")
	}
	if f.sampleRate <= 0 {
		return format{}, errors.New("invalid sample rate")
	}
	return f, nil
}

// decodeSamples converts raw frames to the first channel's float samples.
func decodeSamples(data []byte, f format) ([]float64, error) {
	bytesPerSample := f.bitsPerSample / 8
	frameSize := bytesPerSample * f.channels
	if frameSize == 0 {
		return nil, errors.New("invalid bits per sample")
	}
	frames := len(data) / frameSize
	out := make([]float64, 0, frames)

	for i := 0; i < frames; i++ {
		s := data[i*frameSize:] // first channel sits at the frame start
		var v float64
		switch {
		case f.audioFormat == formatIEEEFloat && f.bitsPerSample == 32:
			v = float64(math.Float32frombits(binary.LittleEndian.Uint32(s)))
		case f.bitsPerSample == 8:
			// 8-bit WAV is unsigned with 128 as zero.
			v = (float64(s[0]) - 128) / 128
		case f.bitsPerSample == 16:
			v = float64(int16(binary.LittleEndian.Uint16(s))) / 32768
		case f.bitsPerSample == 24:
			raw := int32(s[0]) | int32(s[1])<<8 | int32(s[2])<<16
			if raw&0x800000 != 0 {
				raw |= ^int32(0xFFFFFF) // sign extend
			}
			v = float64(raw) / 8388608
		case f.bitsPerSample == 32:
			v = float64(int32(binary.LittleEndian.Uint32(s))) / 2147483648
		default:
			return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedCodec, f.bitsPerSample)
		}
		out = append(out, clamp(v))
	}
	return out, nil
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
