package synth

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Producer defines the interface for producing an audio artifact from a text
// description. This interface serves as a boundary between the task layer and
// the synthesis routine, so a real music-generation backend can replace the
// built-in tone synthesizer without touching task scheduling.
type Producer interface {
	// Produce renders a complete audio blob for the given description.
	// The returned bytes are a self-contained playable file.
	Produce(ctx context.Context, description string) ([]byte, error)
}

// Audio rendering parameters for the tone producer.
const (
	sampleRate = 44100
	duration   = 5.0 // seconds
	fadeTime   = 0.1 // seconds of fade in/out

	baseFrequency = 440.0 // A4
	lowFrequency  = 220.0 // A3
	highFrequency = 880.0 // A5
)

// ToneProducer renders a short tonal WAV clip whose pitch is derived from
// keywords in the description. Deterministic given its input; stateless and
// safe for concurrent use.
//
// The keyword mapping is a placeholder policy standing in for a real
// music-generation model, not part of the producer contract.
type ToneProducer struct{}

// NewToneProducer creates a ToneProducer.
func NewToneProducer() *ToneProducer {
	return &ToneProducer{}
}

// Produce renders a 5-second mono 16-bit PCM WAV clip. The fundamental
// frequency drops an octave for "low"/"bass" descriptions and rises an octave
// for "high"/"treble" ones. It honors ctx cancellation between sample blocks.
func (p *ToneProducer) Produce(ctx context.Context, description string) ([]byte, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	frequency := frequencyFor(description)

	numSamples := int(sampleRate * duration)
	samples := make([]int16, 0, numSamples)

	for i := 0; i < numSamples; i++ {
		// Cancellation is only checked once per second of audio; rendering a
		// single block is fast enough that finer granularity buys nothing.
		if i%sampleRate == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("audio production cancelled: %w", err)
			}
		}

		t := float64(i) / sampleRate

		// Fundamental plus two harmonics for a richer sound.
		value := math.Sin(2*math.Pi*frequency*t)*0.3 +
			math.Sin(2*math.Pi*frequency*2*t)*0.2 +
			math.Sin(2*math.Pi*frequency*3*t)*0.1

		value *= envelope(t)

		samples = append(samples, int16(value*32767))
	}

	blob, err := encodeWAV(samples)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProductionFailed, err)
	}
	return blob, nil
}

// frequencyFor maps description keywords to a fundamental frequency.
func frequencyFor(description string) float64 {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "low") || strings.Contains(lower, "bass"):
		return lowFrequency
	case strings.Contains(lower, "high") || strings.Contains(lower, "treble"):
		return highFrequency
	default:
		return baseFrequency
	}
}

// envelope returns the amplitude scale at time t: a linear fade in over the
// first fadeTime seconds and a matching fade out at the end of the clip.
func envelope(t float64) float64 {
	switch {
	case t < fadeTime:
		return t / fadeTime
	case t > duration-fadeTime:
		return (duration - t) / fadeTime
	default:
		return 1.0
	}
}

// encodeWAV wraps mono 16-bit PCM samples in a RIFF/WAVE container.
func encodeWAV(samples []int16) ([]byte, error) {
	const (
		numChannels   = 1
		bitsPerSample = 16
		headerSize    = 36 // RIFF chunk payload before the data chunk
	)

	dataSize := len(samples) * 2
	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))

	buf.WriteString("RIFF")
	if err := binary.Write(buf, binary.LittleEndian, uint32(headerSize+dataSize)); err != nil {
		return nil, err
	}
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	for _, v := range []any{
		uint32(16), // fmt chunk size
		uint16(1),  // PCM
		uint16(numChannels),
		uint32(sampleRate),
		uint32(sampleRate * numChannels * bitsPerSample / 8), // byte rate
		uint16(numChannels * bitsPerSample / 8),              // block align
		uint16(bitsPerSample),
	} {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	buf.WriteString("data")
	if err := binary.Write(buf, binary.LittleEndian, uint32(dataSize)); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, samples); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
