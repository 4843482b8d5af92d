package launcher

import (
	"fmt"
	"sync"
	"testing"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	if got := q.Drain(); got != nil {
		t.Fatalf("Drain() on empty queue = %v, want nil", got)
	}

	q.Push("list")
	q.Push("set work on")
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}

	got := q.Drain()
	if len(got) != 2 || got[0] != "list" || got[1] != "set work on" {
		t.Errorf("Drain() = %v", got)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after Drain = %d, want 0", q.Len())
	}
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(fmt.Sprintf("%d-%d", i, j))
			}
		}(i)
	}
	wg.Wait()

	if got := len(q.Drain()); got != 1000 {
		t.Errorf("drained %d lines, want 1000", got)
	}
}
