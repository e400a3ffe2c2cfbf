// Package queue defines the contract for enqueuing and consuming build
// jobs. The service runs an in-memory bounded queue; enqueue is
// non-blocking and refusal is a normal outcome the caller must handle.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/benchwise/teamforge/pkg/metrics"
)

// Default queue configuration constants.
const defaultCapacity = 1024

// Kind discriminates the work a job carries.
type Kind string

// Job kinds.
const (
	// KindBuild runs a full ranking pass over a proposal.
	KindBuild Kind = "build"
	// KindUpload runs the simulated document parse for a proposal.
	KindUpload Kind = "upload"
)

// Job is one unit of asynchronous work tied to a proposal.
type Job struct {
	ID         string
	Kind       Kind
	ProposalID string
	EnqueuedAt time.Time
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job to the queue.
	// Returns false if the queue is full or closed.
	Enqueue(ctx context.Context, job Job) bool

	// Dequeue returns a channel delivering jobs as they become available.
	// The channel closes when the queue closes.
	Dequeue(ctx context.Context) <-chan Job

	// Len returns the current number of queued jobs.
	Len(ctx context.Context) int

	// Close shuts the queue down. After closing, Enqueue refuses and the
	// dequeue channel drains then closes.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates an in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}

	for _, opt := range opts {
		opt(q)
	}

	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)

	return q
}

// Enqueue adds a job to the queue without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, job Job) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueRefusal()
		return false
	}

	select {
	case q.jobs <- job:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.jobs))
		return true
	case <-ctx.Done():
		metrics.RecordQueueRefusal()
		return false
	default:
		metrics.RecordQueueRefusal()
		return false
	}
}

// Dequeue returns a channel delivering jobs until the queue closes or ctx
// is done.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Job {
	out := make(chan Job)
	go func() {
		defer close(out)
		for job := range q.jobs {
			select {
			case out <- job:
				metrics.RecordQueueDequeue()
				metrics.UpdateQueueSize(len(q.jobs))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.jobs)
}

// Close shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
