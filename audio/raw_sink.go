// File: audio/raw_sink.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package audio

import (
	"encoding/binary"
	"io"

	"github.com/momentics/stagepipe/api"
	"github.com/momentics/stagepipe/pool"
)

// rawSinkByteBufSize is the size in bytes of the staging buffers the sink's
// BytePool hands out. BytePool.Acquire allocates a fresh buffer for any
// request larger than this, so it is only a sizing hint.
const rawSinkByteBufSize = 4096

// RawPCMSink writes little-endian int16 PCM samples to an io.Writer with
// no container — the format the reference receiver defaults to (`fwrite`
// straight to stdout) when the user pipes it into something like aplay.
// Its byte staging buffer is drawn from a BytePool instead of growing a
// private slice, so repeated WritePCM calls reuse memory the same way the
// pipeline's own buffer pools do.
type RawPCMSink struct {
	w     io.Writer
	bytes api.BytePool
}

// NewRawPCMSink wraps w (typically os.Stdout or a plain file).
func NewRawPCMSink(w io.Writer) *RawPCMSink {
	return &RawPCMSink{w: w, bytes: pool.NewBytePool(rawSinkByteBufSize, -1, false)}
}

// WritePCM appends one batch of mono 16-bit samples.
func (s *RawPCMSink) WritePCM(samples []int16) error {
	need := len(samples) * 2

	buf := s.bytes.Acquire(need)

	for i, v := range samples {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
	}

	_, err := s.w.Write(buf)
	s.bytes.Release(buf)
	return err
}

// Close is a no-op: RawPCMSink does not own w.
func (s *RawPCMSink) Close() error { return nil }
