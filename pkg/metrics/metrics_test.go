package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then defaults should apply", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "cookoff")
				So(manager.subsystem, ShouldEqual, "episodes")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("gen"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithPrometheusRegistry(registry),
			)
			manager.episodesCreated.Inc()

			Convey("Then metric names should carry the namespace and subsystem", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_gen_created_total")
			})
		})

		Convey("When passing empty values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "cookoff")
				So(manager.subsystem, ShouldEqual, "episodes")
				So(len(manager.histogramBuckets), ShouldEqual, len(prometheus.DefBuckets))
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording generation metrics", func() {
			Convey("Then created episodes should increment and set the last id", func() {
				before := testutil.ToFloat64(globalManager.episodesCreated)
				RecordEpisodeCreated(42)
				So(testutil.ToFloat64(globalManager.episodesCreated), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.lastEpisodeID), ShouldEqual, 42)
			})

			Convey("And failures should be counted by reason", func() {
				c := globalManager.episodesFailed.WithLabelValues("attempts_exhausted")
				before := testutil.ToFloat64(c)
				RecordEpisodeFailed("attempts_exhausted")
				So(testutil.ToFloat64(c), ShouldEqual, before+1)
			})

			Convey("And attempts should be counted by result", func() {
				ok := globalManager.selectionAttempts.WithLabelValues("success")
				unmet := globalManager.selectionAttempts.WithLabelValues("quota_unmet")
				okBefore, unmetBefore := testutil.ToFloat64(ok), testutil.ToFloat64(unmet)
				RecordSelectionAttempt("quota_unmet")
				RecordSelectionAttempt("quota_unmet")
				RecordSelectionAttempt("success")
				So(testutil.ToFloat64(ok), ShouldEqual, okBefore+1)
				So(testutil.ToFloat64(unmet), ShouldEqual, unmetBefore+2)
			})

			Convey("And winner resolutions should be counted by rule", func() {
				c := globalManager.winnerResolutions.WithLabelValues("coin_flip")
				before := testutil.ToFloat64(c)
				RecordWinnerResolution("coin_flip")
				So(testutil.ToFloat64(c), ShouldEqual, before+1)
			})

			Convey("And histograms should accept observations", func() {
				ObserveAttemptsPerRun(3)
				RecordRunDuration(12.5)
				RecordStoreLatency("save_episode", 1.5)
				So(testutil.CollectAndCount(globalManager.attemptsPerRun), ShouldEqual, 1)
				So(testutil.CollectAndCount(globalManager.storeLatency), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording HTTP metrics", func() {
			c := globalManager.httpRequests.WithLabelValues("/episodes", "POST", "201")
			before := testutil.ToFloat64(c)
			RecordHTTPRequest("/episodes", "POST", 201)
			RecordHTTPRequestDuration("/episodes", "POST", 201, 3.2)

			Convey("Then the status code should be used as a label", func() {
				So(testutil.ToFloat64(c), ShouldEqual, before+1)
			})
		})

		Convey("When recording errors and system metrics", func() {
			c := globalManager.errorsByComponent.WithLabelValues("store", "save")
			before := testutil.ToFloat64(c)
			RecordErrorByComponent("store", "save")
			UpdateSystemMemoryUsage(1024)
			UpdateSystemGoroutineCount(7)

			Convey("Then the values should be visible", func() {
				So(testutil.ToFloat64(c), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.systemMemoryUsage), ShouldEqual, 1024)
				So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 7)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		Convey("When gathering", func() {
			RecordEpisodeCreated(1)
			families, err := GetRegistry().Gather()

			Convey("Then generator metrics should be present without Go runtime collectors", func() {
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["cookoff_episodes_created_total"], ShouldBeTrue)
				So(names["go_goroutines"], ShouldBeFalse)
			})
		})
	})
}
