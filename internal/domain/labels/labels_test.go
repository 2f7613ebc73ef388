package labels_test

import (
	"context"
	"testing"

	"github.com/okian/ignite/internal/domain/features"
	"github.com/okian/ignite/internal/domain/labels"
	"github.com/okian/ignite/internal/domain/model"
	"github.com/okian/ignite/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func row(id string, js, wlb, ms, comp, tenure float64) features.Record {
	return features.Record{
		EmployeeID:               id,
		TenureYears:              tenure,
		JobSatisfaction:          model.Float(js),
		WorkLifeBalance:          model.Float(wlb),
		ManagementSupport:        model.Float(ms),
		CompensationSatisfaction: model.Float(comp),
	}
}

func TestProbability(t *testing.T) {
	Convey("Given the weighted indicator sum", t, func() {
		Convey("Then a content mid-tenure employee scores zero", func() {
			So(labels.Probability(row("a", 8, 8, 8, 8, 2)), ShouldEqual, 0.0)
		})

		Convey("Then every indicator adds its weight", func() {
			So(labels.Probability(row("a", 4, 8, 8, 8, 2)), ShouldAlmostEqual, 0.3, 1e-12)
			So(labels.Probability(row("a", 8, 4, 8, 8, 2)), ShouldAlmostEqual, 0.2, 1e-12)
			So(labels.Probability(row("a", 8, 8, 4, 8, 2)), ShouldAlmostEqual, 0.2, 1e-12)
			So(labels.Probability(row("a", 8, 8, 8, 4, 2)), ShouldAlmostEqual, 0.1, 1e-12)
			So(labels.Probability(row("a", 8, 8, 8, 8, 0.2)), ShouldAlmostEqual, 0.1, 1e-12)
			So(labels.Probability(row("a", 8, 8, 8, 8, 6)), ShouldAlmostEqual, 0.1, 1e-12)
			So(labels.Probability(row("a", 1, 1, 1, 1, 0.1)), ShouldAlmostEqual, 0.9, 1e-12)
		})

		Convey("Then a score of five is not low enough", func() {
			So(labels.Probability(row("a", 5, 5, 5, 5, 2)), ShouldEqual, 0.0)
		})

		Convey("Then missing answers never contribute", func() {
			So(labels.Probability(features.Record{TenureYears: 2}), ShouldEqual, 0.0)
		})
	})
}

func TestSynthesize(t *testing.T) {
	ctx := context.Background()

	Convey("Given two rows differing only in job satisfaction and no noise", t, func() {
		s := labels.NewSynthesizer(labels.WithNoiseStdDev(0))
		out := s.Synthesize(ctx, []features.Record{
			row("low", 3, 8, 8, 8, 2),
			row("high", 7, 8, 8, 8, 2),
		})

		Convey("Then the low row's probability is higher by at least 0.3", func() {
			So(out[0].Label.TurnoverProbability-out[1].Label.TurnoverProbability, ShouldBeGreaterThanOrEqualTo, 0.3-1e-12)
		})

		Convey("Then labels use the 0.4 threshold", func() {
			So(out[0].Label.WillTurnover, ShouldEqual, 0)
			more := s.Synthesize(ctx, []features.Record{row("x", 3, 3, 8, 8, 2)})
			So(more[0].Label.WillTurnover, ShouldEqual, 1)
		})
	})

	Convey("Given noisy synthesis", t, func() {
		input := []features.Record{
			row("a", 1, 1, 1, 1, 0.1),
			row("b", 9, 9, 9, 9, 2),
			row("c", 4, 9, 9, 9, 6),
		}

		Convey("Then the same seed gives the same labels", func() {
			a := labels.NewSynthesizer(labels.WithSeed(7)).Synthesize(ctx, input)
			b := labels.NewSynthesizer(labels.WithSeed(7)).Synthesize(ctx, input)
			for i := range a {
				So(a[i].Label.TurnoverProbability, ShouldEqual, b[i].Label.TurnoverProbability)
			}
		})

		Convey("Then probabilities stay within [0, 1]", func() {
			s := labels.NewSynthesizer(labels.WithNoiseStdDev(2))
			for _, r := range s.Synthesize(ctx, input) {
				So(r.Label.TurnoverProbability, ShouldBeBetweenOrEqual, 0, 1)
			}
		})

		Convey("Then the input is left untouched", func() {
			labels.NewSynthesizer().Synthesize(ctx, input)
			So(input[0].Label, ShouldBeNil)
		})
	})
}
