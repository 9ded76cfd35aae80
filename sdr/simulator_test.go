package sdr

import (
	"context"
	"testing"
)

func TestSimulator_ReadRawFillsBuffer(t *testing.T) {
	s := NewSimulator(1000)
	cfg := DefaultConfig()
	cfg.SampleRateHz = 1_000_000
	cfg.WarmupIterations = 0

	if err := s.Open(context.Background(), cfg); err != nil {
		t.Fatalf("Open: %v", err)
	}

	buf := make([]byte, 256)
	n, err := s.ReadRaw(buf)
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("expected %d bytes, got %d", len(buf), n)
	}
}

func TestSimulator_ReconfigureTakesEffect(t *testing.T) {
	s := NewSimulator(1000)
	cfg := DefaultConfig()
	cfg.SampleRateHz = 1_000_000
	cfg.WarmupIterations = 0
	if err := s.Open(context.Background(), cfg); err != nil {
		t.Fatalf("Open: %v", err)
	}

	retuned := cfg
	retuned.CenterFrequencyHz = 99_000_000
	retuned.GainAuto = false
	if err := s.Reconfigure(retuned); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}

	if s.cfg.CenterFrequencyHz != 99_000_000 || s.cfg.GainAuto {
		t.Fatalf("Reconfigure did not take effect: %+v", s.cfg)
	}
}

func TestSimulator_ReadAfterCloseFails(t *testing.T) {
	s := NewSimulator(1000)
	cfg := DefaultConfig()
	cfg.WarmupIterations = 0
	s.Open(context.Background(), cfg)
	s.Close()

	if _, err := s.ReadRaw(make([]byte, 8)); err != ErrDeviceClosed {
		t.Fatalf("expected ErrDeviceClosed, got %v", err)
	}
}
