package model_test

import (
	"testing"
	"time"

	"github.com/okian/ignite/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCategorizeRisk(t *testing.T) {
	Convey("Given turnover probabilities across the range", t, func() {
		Convey("Then every bucket agrees with the thresholds", func() {
			for i := 0; i <= 1000; i++ {
				p := float64(i) / 1000
				a := model.NewRiskAssessment("EMP0001", "Employee 1", "Sales", p)

				So(a.HighRisk, ShouldEqual, p > 0.6)
				switch {
				case p <= 0.3:
					So(a.Category, ShouldEqual, model.RiskLow)
				case p <= 0.6:
					So(a.Category, ShouldEqual, model.RiskMedium)
				default:
					So(a.Category, ShouldEqual, model.RiskHigh)
				}
			}
		})

		Convey("Then the boundaries are inclusive on the upper side", func() {
			So(model.CategorizeRisk(0), ShouldEqual, model.RiskLow)
			So(model.CategorizeRisk(0.3), ShouldEqual, model.RiskLow)
			So(model.CategorizeRisk(0.6), ShouldEqual, model.RiskMedium)
			So(model.CategorizeRisk(0.6000001), ShouldEqual, model.RiskHigh)
			So(model.NewRiskAssessment("x", "", "", 0.6).HighRisk, ShouldBeFalse)
		})
	})
}

func TestEmployeeTenure(t *testing.T) {
	Convey("Given an employee hired on a known date", t, func() {
		hired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		e := model.EmployeeRecord{EmployeeID: "EMP0001", HireDate: hired}

		Convey("Then tenure counts whole days", func() {
			So(e.TenureDays(hired.Add(36*time.Hour)), ShouldEqual, 1)
			So(e.TenureDays(hired.AddDate(1, 0, 0)), ShouldEqual, 366)
		})

		Convey("Then future hires and missing dates count as zero", func() {
			So(e.TenureDays(hired.AddDate(0, 0, -3)), ShouldEqual, 0)
			So(model.EmployeeRecord{}.TenureDays(hired), ShouldEqual, 0)
		})
	})
}
