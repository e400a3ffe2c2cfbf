package queue_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/benchwise/teamforge/internal/adapters/mq/queue"
)

func buildJob(id string) queue.Job {
	return queue.Job{ID: id, Kind: queue.KindBuild, ProposalID: "p1", EnqueuedAt: time.Now()}
}

func TestInMemoryQueue(t *testing.T) {
	ctx := context.Background()

	Convey("Given a queue with default capacity", t, func() {
		q := queue.NewInMemoryQueue()

		Convey("When enqueuing jobs", func() {
			So(q.Enqueue(ctx, buildJob("j1")), ShouldBeTrue)
			So(q.Enqueue(ctx, buildJob("j2")), ShouldBeTrue)

			Convey("Then they are counted and delivered in order", func() {
				So(q.Len(ctx), ShouldEqual, 2)

				jobs := q.Dequeue(ctx)
				first := <-jobs
				second := <-jobs
				So(first.ID, ShouldEqual, "j1")
				So(second.ID, ShouldEqual, "j2")
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueue refuses and the drain channel closes", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, buildJob("late")), ShouldBeFalse)

				_, open := <-q.Dequeue(ctx)
				So(open, ShouldBeFalse)
			})

			Convey("And closing again is a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})

	Convey("Given a queue at capacity", t, func() {
		q := queue.NewInMemoryQueue(queue.WithCapacity(3))
		for i := 0; i < 3; i++ {
			So(q.Enqueue(ctx, buildJob(fmt.Sprintf("j%d", i))), ShouldBeTrue)
		}

		Convey("Then the next enqueue is refused without blocking", func() {
			So(q.Enqueue(ctx, buildJob("overflow")), ShouldBeFalse)
			So(q.Len(ctx), ShouldEqual, 3)
		})
	})

	Convey("Given a consumer with a cancelled context", t, func() {
		q := queue.NewInMemoryQueue()
		So(q.Enqueue(ctx, buildJob("j1")), ShouldBeTrue)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		Convey("Then the dequeue channel closes instead of delivering", func() {
			jobs := q.Dequeue(cancelled)
			// Let the drain goroutine observe the cancellation before we
			// stand ready to receive, otherwise delivery could still win.
			time.Sleep(50 * time.Millisecond)
			select {
			case _, open := <-jobs:
				So(open, ShouldBeFalse)
			case <-time.After(time.Second):
				So("timed out waiting for channel close", ShouldBeEmpty)
			}
		})
	})
}
