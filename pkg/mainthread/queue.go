package mainthread

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/zeromicro/go-zero/core/logx"
)

const defaultCapacity = 64

var (
	// ErrClosed is returned by Defer once the queue has been closed.
	ErrClosed = errors.New("mainthread: queue closed")
	// ErrQueueFull is returned by Defer when the pending callbacks reach capacity.
	ErrQueueFull = errors.New("mainthread: queue full")
	// ErrRunning is returned when a second Run loop is started on the same queue.
	ErrRunning = errors.New("mainthread: queue already running")
)

// Task is a callback executed on the queue's goroutine.
type Task func(ctx context.Context)

// Queue defers callbacks onto a single privileged goroutine, the way an editor
// runs delayed calls on its main loop. Defer never runs the callback inline.
type Queue struct {
	mu       sync.Mutex
	pending  []Task
	capacity int
	closed   bool

	wake    chan struct{}
	running atomic.Bool
}

// NewQueue constructs a queue holding at most capacity pending callbacks.
// Non-positive capacity selects the default of 64.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Queue{
		capacity: capacity,
		wake:     make(chan struct{}, 1),
	}
}

// Defer enqueues fn for the next pass of the run loop.
func (q *Queue) Defer(fn Task) error {
	if fn == nil {
		return errors.New("mainthread: nil task")
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	if len(q.pending) >= q.capacity {
		q.mu.Unlock()
		return fmt.Errorf("%w (%d pending)", ErrQueueFull, q.capacity)
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	q.signal()
	return nil
}

// Len reports the number of callbacks waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops accepting callbacks. Callbacks already queued still run on the
// next Drain or before Run returns.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

// Drain runs every callback queued at the time of the call on the calling
// goroutine and returns how many ran. Callbacks deferred while draining wait
// for the next pass. While Run is active the run loop owns the callbacks and
// Drain returns 0 without running anything.
func (q *Queue) Drain(ctx context.Context) int {
	if q.running.Load() {
		return 0
	}
	return q.drain(ctx)
}

func (q *Queue) drain(ctx context.Context) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		q.runTask(ctx, fn)
	}
	return len(batch)
}

// Run executes callbacks as they arrive until ctx is done or the queue is
// closed and empty. It returns nil after Close and ctx.Err() on cancellation.
func (q *Queue) Run(ctx context.Context) error {
	if !q.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer q.running.Store(false)

	for {
		q.drain(ctx)

		q.mu.Lock()
		finished := q.closed && len(q.pending) == 0
		q.mu.Unlock()
		if finished {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
		}
	}
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) runTask(ctx context.Context, fn Task) {
	defer func() {
		if r := recover(); r != nil {
			logx.WithContext(ctx).Errorf("[mainthread] deferred task panicked: %v\n%s", r, debug.Stack())
		}
	}()
	fn(ctx)
}
