package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, defaultNamespace)
				So(manager.subsystem, ShouldEqual, defaultSubsystem)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.subsystem, ShouldEqual, "test_subsystem")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})
		})

		Convey("When empty options are passed", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, defaultNamespace)
				So(manager.subsystem, ShouldEqual, defaultSubsystem)
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When training metrics are recorded", func() {
			before := testutil.ToFloat64(globalManager.trainingRuns.WithLabelValues("turnover"))
			RecordTrainingRun("turnover", 120*time.Millisecond)
			UpdateModelScore("turnover", "accuracy", "test", 0.87)
			UpdateFeaturesUsed("turnover", 17)

			Convey("Then counters and gauges reflect them", func() {
				So(testutil.ToFloat64(globalManager.trainingRuns.WithLabelValues("turnover")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.modelScore.WithLabelValues("turnover", "accuracy", "test")), ShouldEqual, 0.87)
				So(testutil.ToFloat64(globalManager.featuresUsed.WithLabelValues("turnover")), ShouldEqual, 17.0)
			})
		})

		Convey("When the label positive rate is updated", func() {
			UpdateLabelPositiveRate(3, 12)
			So(testutil.ToFloat64(globalManager.labelPositiveRate), ShouldEqual, 0.25)

			UpdateLabelPositiveRate(0, 0)
			So(testutil.ToFloat64(globalManager.labelPositiveRate), ShouldEqual, 0.0)
		})

		Convey("When risk metrics are recorded", func() {
			UpdateHighRiskEmployees(7)
			UpdateRiskCategory("High", 7)
			UpdateRegisterRecords(150)

			Convey("Then the gauges are set", func() {
				So(testutil.ToFloat64(globalManager.highRiskEmployees), ShouldEqual, 7.0)
				So(testutil.ToFloat64(globalManager.riskCategory.WithLabelValues("High")), ShouldEqual, 7.0)
				So(testutil.ToFloat64(globalManager.registerRecords), ShouldEqual, 150.0)
			})
		})

		Convey("When the remaining helpers are called", func() {
			Convey("Then they should not panic", func() {
				So(func() {
					RecordTrainingError("engagement")
					UpdateFeatureRows(150)
					RecordUnknownCategory("department")
					RecordPredictions(150)
					RecordRegisterQueryLatency(0.4)
					RecordHTTPRequest("risks", "GET", "200")
					RecordHTTPRequestDuration("risks", "GET", "200", 1.5)
					RecordErrorByComponent("turnover", "not_trained")
					RecordErrorByEndpoint("factors", "GET", "not_found")
				}, ShouldNotPanic)
			})
		})

		Convey("When the registry is requested", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}
