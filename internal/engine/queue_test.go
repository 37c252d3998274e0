package engine

import (
	"testing"
	"time"
)

func TestWorkQueuePushTryPop(t *testing.T) {
	q := NewWorkQueue()

	if _, ok := q.TryPop(); ok {
		t.Fatal("TryPop on an empty queue should return false")
	}

	q.Push(Prefix{})
	p, ok := q.TryPop()
	if !ok || p == nil {
		t.Fatal("TryPop should return the pushed prefix")
	}
	if !q.Empty() {
		t.Fatal("queue should be empty after draining its only item")
	}
}

func TestWorkQueuePopWaitTimesOut(t *testing.T) {
	q := NewWorkQueue()
	start := time.Now()
	_, ok := q.PopWait(30 * time.Millisecond)
	if ok {
		t.Fatal("PopWait on an empty, open queue should time out")
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("PopWait returned too early: %s", elapsed)
	}
}

func TestWorkQueuePopWaitWakesOnPush(t *testing.T) {
	q := NewWorkQueue()
	done := make(chan struct{})
	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Push(Prefix{})
		close(done)
	}()

	_, ok := q.PopWait(time.Second)
	if !ok {
		t.Fatal("PopWait should return the prefix pushed concurrently")
	}
	<-done
}

func TestWorkQueueDrainedAfterClose(t *testing.T) {
	q := NewWorkQueue()
	if q.Drained() {
		t.Fatal("a fresh open queue should not be drained")
	}
	q.Close()
	if !q.Drained() {
		t.Fatal("a closed empty queue should be drained")
	}

	_, ok := q.PopWait(time.Second)
	if ok {
		t.Fatal("PopWait on a drained queue should return immediately with ok=false")
	}
}
