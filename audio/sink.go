// File: audio/sink.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package audio

import (
	"os"
	"strings"
)

// Sink accepts demodulated PCM batches from the pipeline's consumer stage.
type Sink interface {
	WritePCM(samples []int16) error
	Close() error
}

// Open selects a WAVSink when path ends in ".wav", a RawPCMSink writing to
// the created file otherwise, or a RawPCMSink over stdout when path is
// empty — mirroring the reference receiver's fopen-or-stdout fallback.
func Open(path string, sampleRate int) (Sink, error) {
	if path == "" {
		return NewRawPCMSink(os.Stdout), nil
	}

	if strings.HasSuffix(strings.ToLower(path), ".wav") {
		sink := NewWAVSink(path, sampleRate)
		if err := sink.Open(); err != nil {
			return nil, err
		}
		return sink, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &fileRawSink{RawPCMSink: *NewRawPCMSink(f), file: f}, nil
}

type fileRawSink struct {
	RawPCMSink
	file *os.File
}

func (s *fileRawSink) Close() error {
	return s.file.Close()
}
