package audio

import (
	"bytes"
	"testing"
)

func TestRawPCMSink_WritesLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	s := NewRawPCMSink(&buf)

	if err := s.WritePCM([]int16{1, -1, 256}); err != nil {
		t.Fatalf("WritePCM: %v", err)
	}

	want := []byte{1, 0, 0xff, 0xff, 0, 1}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got %v, want %v", buf.Bytes(), want)
	}
}
