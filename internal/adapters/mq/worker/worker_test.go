package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/benchwise/teamforge/internal/adapters/mq/queue"
	"github.com/benchwise/teamforge/internal/adapters/mq/worker"
	"github.com/benchwise/teamforge/pkg/logger"
)

type recordingProcessor struct {
	mu   sync.Mutex
	jobs []queue.Job
	fail bool
}

func (p *recordingProcessor) Process(_ context.Context, job queue.Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, job)
	if p.fail {
		return errors.New("boom")
	}
	return nil
}

func (p *recordingProcessor) seen() []queue.Job {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]queue.Job, len(p.jobs))
	copy(out, p.jobs)
	return out
}

func TestInMemoryWorker(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}
	ctx := context.Background()

	Convey("Given a worker attached to a queue", t, func() {
		q := queue.NewInMemoryQueue()
		proc := &recordingProcessor{}
		w := worker.NewInMemoryWorker(q, proc, worker.WithName("build-worker-1"))

		go w.Run(ctx)

		Convey("When jobs are enqueued", func() {
			So(q.Enqueue(ctx, queue.Job{ID: "j1", Kind: queue.KindBuild, ProposalID: "p1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Job{ID: "j2", Kind: queue.KindUpload, ProposalID: "p1"}), ShouldBeTrue)

			Convey("Then the worker processes them in order", func() {
				So(func() []queue.Job { return proc.seen() }, shouldEventuallyHaveLength, 2)
				jobs := proc.seen()
				So(jobs[0].ID, ShouldEqual, "j1")
				So(jobs[1].Kind, ShouldEqual, queue.KindUpload)
			})
		})

		Reset(func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			So(w.Shutdown(shutdownCtx), ShouldBeNil)
			So(q.Close(), ShouldBeNil)
		})
	})

	Convey("Given a processor that fails", t, func() {
		q := queue.NewInMemoryQueue()
		proc := &recordingProcessor{fail: true}
		w := worker.NewInMemoryWorker(q, proc)

		go w.Run(ctx)
		So(q.Enqueue(ctx, queue.Job{ID: "j1", Kind: queue.KindBuild, ProposalID: "p1"}), ShouldBeTrue)

		Convey("Then the worker logs the failure and keeps running", func() {
			So(func() []queue.Job { return proc.seen() }, shouldEventuallyHaveLength, 1)

			So(q.Enqueue(ctx, queue.Job{ID: "j2", Kind: queue.KindBuild, ProposalID: "p1"}), ShouldBeTrue)
			So(func() []queue.Job { return proc.seen() }, shouldEventuallyHaveLength, 2)
		})

		Reset(func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()
			So(w.Shutdown(shutdownCtx), ShouldBeNil)
			So(q.Close(), ShouldBeNil)
		})
	})

	Convey("Given a worker whose source closes", t, func() {
		q := queue.NewInMemoryQueue()
		w := worker.NewInMemoryWorker(q, &recordingProcessor{})

		done := make(chan struct{})
		go func() {
			w.Run(ctx)
			close(done)
		}()

		So(q.Close(), ShouldBeNil)

		Convey("Then the run loop exits on its own", func() {
			select {
			case <-done:
			case <-time.After(time.Second):
				So("worker did not stop after queue close", ShouldBeEmpty)
			}
		})
	})
}

// shouldEventuallyHaveLength polls a job-slice getter until it reaches the
// wanted length or a deadline passes.
func shouldEventuallyHaveLength(actual any, expected ...any) string {
	get, ok := actual.(func() []queue.Job)
	if !ok {
		return "expected a func() []queue.Job getter"
	}
	want, ok := expected[0].(int)
	if !ok {
		return "expected an int length"
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(get()) == want {
			return ""
		}
		time.Sleep(5 * time.Millisecond)
	}
	return "timed out waiting for jobs to be processed"
}
