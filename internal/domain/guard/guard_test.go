package guard_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/benchwise/teamforge/internal/domain/guard"
)

func TestInMemoryGuard(t *testing.T) {
	Convey("Given a new in-memory guard", t, func() {
		g := guard.NewInMemoryGuard()

		Convey("Then it starts with nothing in flight", func() {
			So(g.InFlight(), ShouldEqual, 0)
		})

		Convey("When a proposal claims a pass", func() {
			ok := g.Acquire(context.Background(), "prop-1")

			Convey("Then the claim succeeds", func() {
				So(ok, ShouldBeTrue)
				So(g.InFlight(), ShouldEqual, 1)
			})

			Convey("And a second claim for the same proposal is refused", func() {
				So(g.Acquire(context.Background(), "prop-1"), ShouldBeFalse)
				So(g.InFlight(), ShouldEqual, 1)
			})

			Convey("And a claim for a different proposal still succeeds", func() {
				So(g.Acquire(context.Background(), "prop-2"), ShouldBeTrue)
				So(g.InFlight(), ShouldEqual, 2)
			})
		})

		Convey("When a claim is released", func() {
			g.Acquire(context.Background(), "prop-1")
			g.Release(context.Background(), "prop-1")

			Convey("Then the proposal can claim again", func() {
				So(g.InFlight(), ShouldEqual, 0)
				So(g.Acquire(context.Background(), "prop-1"), ShouldBeTrue)
			})
		})

		Convey("When releasing an id that was never claimed", func() {
			g.Release(context.Background(), "prop-404")

			Convey("Then nothing changes", func() {
				So(g.InFlight(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given many goroutines racing for the same proposal", t, func() {
		g := guard.NewInMemoryGuard()

		const racers = 50
		var wg sync.WaitGroup
		winners := make(chan string, racers)

		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if g.Acquire(context.Background(), "prop-1") {
					winners <- fmt.Sprintf("racer-%d", i)
				}
			}()
		}
		wg.Wait()
		close(winners)

		Convey("Then exactly one claim succeeds", func() {
			count := 0
			for range winners {
				count++
			}
			So(count, ShouldEqual, 1)
			So(g.InFlight(), ShouldEqual, 1)
		})
	})
}
