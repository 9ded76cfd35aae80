// File: audio/wav_sink.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package audio writes the pipeline's demodulated PCM output to disk.
// WAVSink wraps the go-audio/wav encoder, configured for mono 16-bit
// samples at the pipeline's audio sample rate.
package audio

import (
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVSink writes mono 16-bit PCM samples to a WAV file.
type WAVSink struct {
	path       string
	sampleRate int
	file       *os.File
	encoder    *wav.Encoder
	intBuf     *goaudio.IntBuffer
}

// NewWAVSink creates a sink that will write to path once Open is called.
func NewWAVSink(path string, sampleRate int) *WAVSink {
	return &WAVSink{path: path, sampleRate: sampleRate}
}

// Open creates the backing file and WAV encoder. const bitDepth=16,
// numChannels=1, audioFormat=1 (PCM) match the reference receiver's
// mono 16-bit little-endian output.
func (s *WAVSink) Open() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}

	s.file = f
	s.encoder = wav.NewEncoder(f, s.sampleRate, 16, 1, 1)
	s.intBuf = &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  s.sampleRate,
		},
		SourceBitDepth: 16,
	}
	return nil
}

// WritePCM appends one batch of mono 16-bit samples to the file.
func (s *WAVSink) WritePCM(samples []int16) error {
	if s.intBuf.Data == nil || len(s.intBuf.Data) != len(samples) {
		s.intBuf.Data = make([]int, len(samples))
	}
	for i, v := range samples {
		s.intBuf.Data[i] = int(v)
	}
	return s.encoder.Write(s.intBuf)
}

// Close flushes the WAV header (now that the sample count is known) and
// closes the file.
func (s *WAVSink) Close() error {
	if s.encoder != nil {
		if err := s.encoder.Close(); err != nil {
			return err
		}
	}
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
