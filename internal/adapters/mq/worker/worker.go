// Package worker runs build jobs pulled off the queue.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/benchwise/teamforge/internal/adapters/mq/queue"
	"github.com/benchwise/teamforge/pkg/logger"
	"github.com/benchwise/teamforge/pkg/metrics"
)

// Processor executes one dequeued job. The application service implements
// this: KindBuild runs a ranking pass, KindUpload runs the simulated parse.
type Processor interface {
	Process(ctx context.Context, job queue.Job) error
}

// Source defines how workers receive jobs.
type Source interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes jobs until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is cancelled or the source closes.
	Run(ctx context.Context)

	// Shutdown stops the worker, waiting for an in-flight job to finish.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker against an in-process queue.
type InMemoryWorker struct {
	source    Source
	processor Processor
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker with configuration options.
func NewInMemoryWorker(source Source, processor Processor, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		source:    source,
		processor: processor,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.source.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			w.process(ctx, job)
		}
	}
}

func (w *InMemoryWorker) process(ctx context.Context, job queue.Job) {
	start := time.Now()
	err := w.processor.Process(ctx, job)
	metrics.RecordWorkerLatency(float64(time.Since(start).Milliseconds()))

	if err != nil {
		metrics.RecordWorkerError()
		w.logger.Error(ctx, "job failed",
			logger.String("job", job.ID),
			logger.String("kind", string(job.Kind)),
			logger.String("proposal", job.ProposalID),
			logger.Error(err),
		)
		return
	}

	w.logger.Debug(ctx, "job done",
		logger.String("job", job.ID),
		logger.String("kind", string(job.Kind)),
		logger.Duration("took", time.Since(start)),
	)
}

// Shutdown stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker shutdown timed out: %w", ctx.Err())
	}
}
