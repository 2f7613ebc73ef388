package engagement_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/okian/ignite/internal/domain/engagement"
	"github.com/okian/ignite/internal/domain/features"
	"github.com/okian/ignite/internal/domain/model"
	"github.com/okian/ignite/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

// records builds rows whose engagement tracks job satisfaction. Every 25th
// row is missing its engagement score and every seventh its culture answer.
func records(n int) []features.Record {
	out := make([]features.Record, n)
	for i := range out {
		js := float64(1 + i%10)
		r := features.Record{
			EmployeeID:               fmt.Sprintf("EMP%04d", i+1),
			TenureYears:              float64(i%6) + 0.5,
			JobSatisfaction:          model.Float(js),
			WorkLifeBalance:          model.Float(float64(1 + (i*3)%10)),
			ManagementSupport:        model.Float(float64(1 + (i*7)%10)),
			CompensationSatisfaction: model.Float(float64(1 + (i*5)%10)),
		}
		if i%7 != 0 {
			r.CompanyCulture = model.Float(float64(1 + (i*9)%10))
		}
		if i%25 != 0 {
			r.EngagementScore = model.Float(js*0.8 + 1)
		}
		out[i] = r
	}
	return out
}

func TestEngagementPredictor(t *testing.T) {
	ctx := context.Background()

	Convey("Given records where engagement follows job satisfaction", t, func() {
		p := engagement.NewPredictor()
		tm, err := p.Train(ctx, records(150))

		Convey("Then the regressor fits well and reports both splits", func() {
			So(err, ShouldBeNil)
			So(p.Trained(), ShouldBeTrue)
			So(tm.TrainR2, ShouldBeGreaterThan, 0.8)
			So(tm.TrainRMSE, ShouldBeGreaterThanOrEqualTo, 0)
			So(tm.TestRMSE, ShouldBeGreaterThanOrEqualTo, 0)
			So(tm.TrainRows, ShouldEqual, 120)
			So(tm.TestRows, ShouldEqual, 30)
		})

		Convey("Then career development is never a predictor", func() {
			So(tm.FeaturesUsed, ShouldEqual, 6)
			So(p.Features(), ShouldResemble, features.EngagementColumns)
			So(p.Features(), ShouldNotContain, features.ColCareerDevelopment)
		})

		Convey("Then retraining with the same seed gives the same metrics", func() {
			again, err := engagement.NewPredictor().Train(ctx, records(150))
			So(err, ShouldBeNil)
			So(cmp.Diff(tm, again), ShouldBeEmpty)
		})
	})

	Convey("Given a column nobody answered", t, func() {
		rs := records(40)
		for i := range rs {
			rs[i].CompanyCulture = nil
		}
		p := engagement.NewPredictor(engagement.WithEstimators(10), engagement.WithMaxDepth(2), engagement.WithLearningRate(0.3))
		tm, err := p.Train(ctx, rs)

		Convey("Then it is left out", func() {
			So(err, ShouldBeNil)
			So(tm.FeaturesUsed, ShouldEqual, 5)
			So(p.Features(), ShouldNotContain, features.ColCompanyCulture)
		})
	})

	Convey("Given no records", t, func() {
		p := engagement.NewPredictor()
		_, err := p.Train(ctx, nil)

		Convey("Then training fails", func() {
			So(errors.Is(err, engagement.ErrEmptyDataset), ShouldBeTrue)
			So(p.Trained(), ShouldBeFalse)
		})
	})
}
