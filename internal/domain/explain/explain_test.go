package explain_test

import (
	"testing"

	"github.com/okian/ignite/internal/domain/explain"
	"github.com/okian/ignite/internal/domain/features"
	"github.com/okian/ignite/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFactors(t *testing.T) {
	Convey("Given a struggling new hire", t, func() {
		r := features.Record{
			TenureYears:       0.2,
			JobSatisfaction:   model.Float(5),
			WorkLifeBalance:   model.Float(3),
			ManagementSupport: model.Float(4),
			CareerDevelopment: model.Float(2),
			EngagementScore:   model.Float(5.9),
		}

		Convey("Then every factor is reported in order", func() {
			So(explain.Factors(r), ShouldResemble, []string{
				explain.LowJobSatisfaction,
				explain.PoorWorkLifeBalance,
				explain.WeakManagementSupport,
				explain.LimitedCareerDev,
				explain.NewEmployee,
				explain.LowEngagement,
			})
		})
	})

	Convey("Given a settled employee with good scores", t, func() {
		r := features.Record{
			TenureYears:       3,
			JobSatisfaction:   model.Float(6),
			WorkLifeBalance:   model.Float(8),
			ManagementSupport: model.Float(7),
			CareerDevelopment: model.Float(9),
			EngagementScore:   model.Float(6),
		}

		Convey("Then nothing is reported", func() {
			So(explain.Factors(r), ShouldBeEmpty)
		})
	})

	Convey("Given a record with no survey or metrics data", t, func() {
		r := features.Record{TenureYears: 1}

		Convey("Then missing values raise no factors", func() {
			So(explain.Factors(r), ShouldBeEmpty)
		})
	})

	Convey("Given an employee hired exactly six months ago", t, func() {
		So(explain.Factors(features.Record{TenureYears: 0.5}), ShouldBeEmpty)
	})
}
