package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/benchwise/teamforge/pkg/metrics"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		m := metrics.NewManager(metrics.WithRegistry(registry))
		So(m, ShouldNotBeNil)

		Convey("Then every collector registers without collision", func() {
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			// Histograms and counters appear once observed; gauges are present
			// immediately. Registration itself must not panic or conflict.
			So(families, ShouldNotBeNil)
		})

		Convey("And registering the same names twice panics", func() {
			So(func() {
				metrics.NewManager(metrics.WithRegistry(registry))
			}, ShouldPanic)
		})
	})

	Convey("Given the package-level helpers", t, func() {
		Convey("Then recording through them does not panic", func() {
			So(func() {
				metrics.RecordBuildPass()
				metrics.RecordBuildRejected()
				metrics.RecordRankingLatency(12.5)
				metrics.RecordSuggestions(5)
				metrics.RecordSelectionOverride()
				metrics.UpdatePoolSize(55)
				metrics.UpdateProposalCount(3)
				metrics.UpdateQueueSize(1)
				metrics.UpdateQueueCapacity(64)
				metrics.RecordQueueEnqueue()
				metrics.RecordQueueDequeue()
				metrics.RecordQueueRefusal()
				metrics.UpdateWorkerCount(4)
				metrics.RecordWorkerLatency(3.2)
				metrics.RecordWorkerError()
				metrics.RecordHTTPRequest("/proposals", "POST", "201")
				metrics.RecordHTTPRequestDuration("/proposals", "POST", "201", 4.2)
			}, ShouldNotPanic)
		})

		Convey("Then the shared registry gathers the recorded series", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["teamforge_matching_build_passes_total"], ShouldBeTrue)
			So(names["teamforge_matching_pool_size"], ShouldBeTrue)
			So(names["teamforge_matching_http_requests_total"], ShouldBeTrue)
		})
	})
}
