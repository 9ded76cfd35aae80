package concurrency

import (
	"testing"
	"time"
)

func TestSPSCRing_S1_BasicFIFO(t *testing.T) {
	r := NewSPSCRing[int](4, FlagsNonblockingReadNonblockingWrite)

	n, st := r.WriteN([]int{1, 2, 3})
	if n != 3 || st != OK {
		t.Fatalf("write: got (%d, %s)", n, st)
	}

	out := make([]int, 3)
	n, st = r.ReadN(out)
	if n != 3 || st != OK {
		t.Fatalf("read: got (%d, %s)", n, st)
	}
	if out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Fatalf("unexpected output: %v", out)
	}

	_, _, dropped, _ := r.GetCounters()
	if dropped != 0 {
		t.Fatalf("expected dropped=0, got %d", dropped)
	}
}

func TestSPSCRing_S2_OverflowNonblockingWrite(t *testing.T) {
	r := NewSPSCRing[int](2, FlagsNonblockingReadNonblockingWrite)

	n, st := r.WriteN([]int{1, 2})
	if n != 2 || st != OK {
		t.Fatalf("first write: got (%d, %s)", n, st)
	}

	n, st = r.WriteN([]int{3})
	if n != 0 || st != WouldBlock {
		t.Fatalf("overflow write: got (%d, %s)", n, st)
	}
	_, _, dropped, _ := r.GetCounters()
	if dropped != 1 {
		t.Fatalf("expected dropped=1, got %d", dropped)
	}

	out := make([]int, 2)
	n, st = r.ReadN(out)
	if n != 2 || st != OK || out[0] != 1 || out[1] != 2 {
		t.Fatalf("drain: got (%d, %s, %v)", n, st, out)
	}

	n, st = r.WriteN([]int{3, 4})
	if n != 2 || st != OK {
		t.Fatalf("refill write: got (%d, %s)", n, st)
	}
}

func TestSPSCRing_S3_PartialWriteClamp(t *testing.T) {
	r := NewSPSCRing[int](2, FlagsNonblockingReadNonblockingWrite)

	n, st := r.WriteN([]int{1, 2, 3, 4})
	if n != 2 || st != OK {
		t.Fatalf("clamp write: got (%d, %s)", n, st)
	}

	out := make([]int, 2)
	n, _ = r.ReadN(out)
	if n != 2 || out[0] != 1 || out[1] != 2 {
		t.Fatalf("unexpected storage: %v", out)
	}

	_, _, dropped, _ := r.GetCounters()
	if dropped != 0 {
		t.Fatalf("expected dropped=0 for a partially serviced write, got %d", dropped)
	}
}

func TestSPSCRing_S4_CancelledBlockingRead(t *testing.T) {
	r := NewSPSCRing[int](4, FlagsBlockingReadNonblockingWrite)

	resultCh := make(chan Status, 1)
	go func() {
		_, st := r.ReadOne()
		resultCh <- st
	}()

	time.Sleep(20 * time.Millisecond)
	r.Cancel(RoleConsumer)

	select {
	case st := <-resultCh:
		if st != OperationCancelled {
			t.Fatalf("expected OperationCancelled, got %s", st)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked reader did not observe cancel")
	}

	n, st := r.WriteOne(7)
	if n != 1 || st != OK {
		t.Fatalf("write after cancel: got (%d, %s)", n, st)
	}

	v, st := r.ReadOne()
	if st != OK || v != 7 {
		t.Fatalf("read after cancel: got (%d, %s)", v, st)
	}
}

func TestSPSCRing_S5_WrapAround(t *testing.T) {
	r := NewSPSCRing[int](4, FlagsNonblockingReadNonblockingWrite)

	n, st := r.WriteN([]int{1, 2, 3})
	if n != 3 || st != OK {
		t.Fatalf("first write: got (%d, %s)", n, st)
	}
	out := make([]int, 3)
	n, _ = r.ReadN(out)
	if n != 3 || out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Fatalf("first read: %v", out)
	}

	n, st = r.WriteN([]int{4, 5, 6, 7})
	if n != 4 || st != OK {
		t.Fatalf("wrapping write: got (%d, %s)", n, st)
	}
	out = make([]int, 4)
	n, _ = r.ReadN(out)
	if n != 4 || out[0] != 4 || out[1] != 5 || out[2] != 6 || out[3] != 7 {
		t.Fatalf("wrapping read: %v", out)
	}

	produced, consumed, _, _ := r.GetCounters()
	if produced != 7 || consumed != 7 {
		t.Fatalf("expected produced=consumed=7, got produced=%d consumed=%d", produced, consumed)
	}
}

func TestSPSCRing_ProducerResetAfterConsumerAdvance(t *testing.T) {
	r := NewSPSCRing[int](4, FlagsNonblockingReadNonblockingWrite)

	r.WriteN([]int{1, 2, 3})
	out := make([]int, 2)
	r.ReadN(out)

	_, preResetConsumed, _, _ := r.GetCounters()
	r.Reset(RoleProducer)

	n, st := r.WriteN([]int{8, 9})
	if n != 2 || st != OK {
		t.Fatalf("write after reset: got (%d, %s)", n, st)
	}

	produced, _, _, _ := r.GetCounters()
	if produced != preResetConsumed+2 {
		t.Fatalf("expected produced=%d, got %d", preResetConsumed+2, produced)
	}
}

func TestSPSCRing_WriteViaFailureDoesNotAdvanceProduced(t *testing.T) {
	r := NewSPSCRing[int](4, FlagsNonblockingReadNonblockingWrite)

	calls := 0
	n, st := r.WriteVia(func(v *int) bool {
		calls++
		if calls == 3 {
			return false
		}
		*v = calls
		return true
	}, 4)
	if n != 2 || st != InternalError {
		t.Fatalf("expected (2, InternalError), got (%d, %s)", n, st)
	}

	produced, _, dropped, _ := r.GetCounters()
	if produced != 0 {
		t.Fatalf("expected produced=0 after a failed callback, got %d", produced)
	}
	if dropped != 0 {
		t.Fatalf("expected dropped=0, a callback failure is not an overflow, got %d", dropped)
	}

	out := make([]int, 1)
	if n, _ := r.ReadN(out); n != 0 {
		t.Fatalf("expected nothing readable after the failed write, got %d", n)
	}
}

func TestSPSCRing_ReadViaFailureDoesNotAdvanceConsumed(t *testing.T) {
	r := NewSPSCRing[int](4, FlagsNonblockingReadNonblockingWrite)

	r.WriteN([]int{1, 2, 3, 4})

	calls := 0
	n, st := r.ReadVia(func(v *int) bool {
		calls++
		return calls != 2
	}, 4)
	if n != 1 || st != InternalError {
		t.Fatalf("expected (1, InternalError), got (%d, %s)", n, st)
	}

	produced, consumed, _, _ := r.GetCounters()
	if consumed != 0 {
		t.Fatalf("expected consumed=0 after a failed callback, got %d", consumed)
	}
	if produced != 4 {
		t.Fatalf("expected produced unchanged at 4, got %d", produced)
	}
}

func TestSPSCRing_BlockingWriteUnparkedByRead(t *testing.T) {
	r := NewSPSCRing[int](1, FlagsNonblockingReadBlockingWrite)

	n, st := r.WriteN([]int{1})
	if n != 1 || st != OK {
		t.Fatalf("fill: got (%d, %s)", n, st)
	}

	writeDone := make(chan struct{})
	go func() {
		r.WriteOne(2)
		close(writeDone)
	}()

	select {
	case <-writeDone:
		t.Fatal("write should block while the ring is full")
	case <-time.After(20 * time.Millisecond):
	}

	out := make([]int, 1)
	r.ReadN(out)
	if out[0] != 1 {
		t.Fatalf("expected to drain 1 first, got %d", out[0])
	}

	select {
	case <-writeDone:
	case <-time.After(time.Second):
		t.Fatal("blocked writer was not unparked by the read")
	}
}
