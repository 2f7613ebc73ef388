package sampledata_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/okian/ignite/internal/sampledata"
	"github.com/okian/ignite/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func TestGenerate(t *testing.T) {
	asOf := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	Convey("Given a generator for 120 employees", t, func() {
		ctx := context.Background()
		ds := sampledata.New(sampledata.WithEmployees(120), sampledata.WithSeed(3), sampledata.WithAsOf(asOf)).Generate(ctx)

		Convey("Then every table has one row per employee", func() {
			So(ds.Employees, ShouldHaveLength, 120)
			So(ds.Surveys, ShouldHaveLength, 120)
			So(ds.Metrics, ShouldHaveLength, 120)
			So(ds.Employees[0].EmployeeID, ShouldEqual, "EMP0000")
			So(ds.Surveys[119].EmployeeID, ShouldEqual, "EMP0119")
			So(ds.Surveys[5].ResponseID, ShouldEqual, "RESP0005")
		})

		Convey("Then values stay within their ranges", func() {
			for i := range ds.Employees {
				e, s, m := ds.Employees[i], ds.Surveys[i], ds.Metrics[i]
				tenure := e.TenureDays(asOf)
				So(tenure, ShouldBeBetweenOrEqual, 30, 1824)
				So(sampledata.Departments, ShouldContain, e.Department)
				So(sampledata.WorkArrangements, ShouldContain, e.WorkArrangement)
				So(sampledata.Levels, ShouldContain, e.Level)
				for _, v := range []*float64{s.JobSatisfaction, s.WorkLifeBalance, s.CareerDevelopment,
					s.ManagementSupport, s.CompanyCulture, s.CompensationSatisfaction} {
					So(*v, ShouldBeBetweenOrEqual, 1.0, 10.0)
				}
				So(*s.SentimentScore, ShouldBeBetweenOrEqual, 0.2, 0.9)
				So(*m.ENPSScore, ShouldBeBetweenOrEqual, -100.0, 100.0)
				So(*m.EngagementScore, ShouldBeBetweenOrEqual, 1.0, 10.0)
				So(m.Department, ShouldEqual, e.Department)
			}
		})

		Convey("Then the same seed reproduces the data", func() {
			again := sampledata.New(sampledata.WithEmployees(120), sampledata.WithSeed(3), sampledata.WithAsOf(asOf)).Generate(ctx)
			So(cmp.Diff(ds, again), ShouldBeEmpty)
		})

		Convey("Then another seed does not", func() {
			other := sampledata.New(sampledata.WithEmployees(120), sampledata.WithSeed(4), sampledata.WithAsOf(asOf)).Generate(ctx)
			So(cmp.Diff(ds, other), ShouldNotBeEmpty)
		})
	})
}
