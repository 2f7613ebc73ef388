package ml_test

import (
	"errors"
	"testing"

	"github.com/okian/ignite/internal/domain/ml"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStandardScaler(t *testing.T) {
	Convey("Given a scaler fitted on two columns", t, func() {
		var s ml.StandardScaler
		scaled, err := s.FitTransform([][]float64{{1, 10}, {3, 10}})

		Convey("Then columns are centered and divided by the population std", func() {
			So(err, ShouldBeNil)
			So(s.Mean, ShouldResemble, []float64{2, 10})
			So(s.Scale, ShouldResemble, []float64{1, 1})
			So(scaled, ShouldResemble, [][]float64{{-1, 0}, {1, 0}})
		})

		Convey("Then new rows reuse the fitted parameters", func() {
			out, err := s.Transform([][]float64{{5, 12}})
			So(err, ShouldBeNil)
			So(out, ShouldResemble, [][]float64{{3, 2}})
		})

		Convey("Then a row of the wrong width is rejected", func() {
			_, err := s.Transform([][]float64{{1}})
			So(errors.Is(err, ml.ErrDimensionMismatch), ShouldBeTrue)
		})
	})

	Convey("Given an unfitted scaler", t, func() {
		var s ml.StandardScaler

		Convey("Then transform fails", func() {
			_, err := s.Transform([][]float64{{1}})
			So(errors.Is(err, ml.ErrNotFitted), ShouldBeTrue)
		})

		Convey("Then fitting nothing fails", func() {
			So(errors.Is(s.Fit(nil), ml.ErrEmptyInput), ShouldBeTrue)
		})

		Convey("Then ragged input fails", func() {
			So(errors.Is(s.Fit([][]float64{{1, 2}, {3}}), ml.ErrDimensionMismatch), ShouldBeTrue)
		})
	})
}

func TestTrainTestSplit(t *testing.T) {
	Convey("Given ten samples and a 20% test share", t, func() {
		train, test, err := ml.TrainTestSplit(10, 0.2, 42)

		Convey("Then the split is disjoint and complete", func() {
			So(err, ShouldBeNil)
			So(test, ShouldHaveLength, 2)
			So(train, ShouldHaveLength, 8)
			seen := map[int]bool{}
			for _, i := range append(append([]int{}, train...), test...) {
				So(seen[i], ShouldBeFalse)
				seen[i] = true
			}
			So(seen, ShouldHaveLength, 10)
		})

		Convey("Then the same seed gives the same split", func() {
			train2, test2, _ := ml.TrainTestSplit(10, 0.2, 42)
			So(train2, ShouldResemble, train)
			So(test2, ShouldResemble, test)
		})
	})

	Convey("Given fractional test sizes", t, func() {
		_, test, err := ml.TrainTestSplit(7, 0.2, 1)
		So(err, ShouldBeNil)
		So(test, ShouldHaveLength, 2)
	})

	Convey("Given degenerate input", t, func() {
		_, _, err := ml.TrainTestSplit(1, 0.2, 1)
		So(errors.Is(err, ml.ErrTooFewSamples), ShouldBeTrue)

		_, _, err = ml.TrainTestSplit(10, 0, 1)
		So(err, ShouldNotBeNil)

		_, _, err = ml.TrainTestSplit(10, 1, 1)
		So(err, ShouldNotBeNil)
	})
}

func TestTakeRows(t *testing.T) {
	Convey("Given a matrix and indices", t, func() {
		x := [][]float64{{0}, {1}, {2}}
		So(ml.Rows(x, []int{2, 0}), ShouldResemble, [][]float64{{2}, {0}})
		So(ml.Take([]int{7, 8, 9}, []int{1, 1}), ShouldResemble, []int{8, 8})
	})
}
