package launcher

import "sync"

// Queue is an unbounded FIFO of raw command lines. Push never blocks, so
// producers (the prompt, the mode watcher) are never stalled by a slow tick.
//
// Safe for concurrent use.
type Queue struct {
	mu    sync.Mutex
	lines []string
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends line to the queue.
func (q *Queue) Push(line string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.lines = append(q.lines, line)
}

// Drain removes and returns every queued line in arrival order. It returns
// nil when the queue is empty.
func (q *Queue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	lines := q.lines
	q.lines = nil
	return lines
}

// Len returns the number of queued lines.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.lines)
}
