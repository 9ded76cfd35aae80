package concurrency

import (
	"testing"
	"time"
)

func TestBinarySemaphore_PostWait(t *testing.T) {
	bs := NewBinarySemaphore(false)

	done := make(chan struct{})
	go func() {
		bs.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before Post")
	case <-time.After(20 * time.Millisecond):
	}

	bs.Post()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Post")
	}

	if bs.Value() {
		t.Fatal("semaphore should be consumed after Wait")
	}
}

func TestBinarySemaphore_InitialReady(t *testing.T) {
	bs := NewBinarySemaphore(true)
	if !bs.Value() {
		t.Fatal("expected initial ready state")
	}

	done := make(chan struct{})
	go func() {
		bs.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait on an already-ready semaphore should not block")
	}
}

func TestBinarySemaphore_CoalescesPosts(t *testing.T) {
	bs := NewBinarySemaphore(false)

	bs.Post()
	bs.Post()
	bs.Post()

	bs.Wait()

	if bs.Value() {
		t.Fatal("semaphore should not remain ready after a single Wait")
	}
}

func TestBinarySemaphore_WaitTimeout(t *testing.T) {
	bs := NewBinarySemaphore(false)

	if bs.WaitTimeout(20 * time.Millisecond) {
		t.Fatal("expected timeout on an unposted semaphore")
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		bs.Post()
	}()

	if !bs.WaitTimeout(time.Second) {
		t.Fatal("expected WaitTimeout to observe the Post")
	}
}
