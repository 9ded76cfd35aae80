package control

import (
	"testing"
	"time"
)

func TestDropLog_EvictsOldestOnOverflow(t *testing.T) {
	d := NewDropLog(2)
	base := time.Unix(0, 0)

	d.Record("iq", 1, base)
	d.Record("iq", 2, base.Add(time.Second))
	d.Record("iq", 3, base.Add(2*time.Second))

	entries := d.Snapshot()
	if len(entries) != 2 {
		t.Fatalf("expected 2 retained entries, got %d", len(entries))
	}
	if entries[0].Dropped != 2 || entries[1].Dropped != 3 {
		t.Fatalf("expected the oldest entry to be evicted, got %+v", entries)
	}
}

func TestDropLog_Len(t *testing.T) {
	d := NewDropLog(5)
	if d.Len() != 0 {
		t.Fatalf("expected empty log, got %d", d.Len())
	}
	d.Record("pcm", 1, time.Now())
	if d.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", d.Len())
	}
}
