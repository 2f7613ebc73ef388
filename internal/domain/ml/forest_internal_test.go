package ml

import (
	"testing"

	"github.com/okian/ignite/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// votingForest returns a fitted-looking forest of stumps where votes of the
// total trees predict class 1.
func votingForest(votes, total int) *RandomForest {
	trees := make([]*Tree, total)
	for i := range trees {
		value := []float64{1, 0}
		if i < votes {
			value = []float64{0, 1}
		}
		trees[i] = &Tree{nodes: []node{{leaf: true, value: value}}, nFeatures: 1}
	}
	return &RandomForest{nTrees: total, trees: trees, nClasses: 2, nFeatures: 1}
}

func TestRandomForestVoteShares(t *testing.T) {
	Convey("Given forests sitting exactly on the risk band edges", t, func() {
		Convey("When 60 of 100 trees vote for turnover", func() {
			probs, err := votingForest(60, 100).PredictProba([][]float64{{0}})
			So(err, ShouldBeNil)

			Convey("Then the probability is exactly 0.6 and not high risk", func() {
				So(probs[0][1], ShouldEqual, 0.6)
				a := model.NewRiskAssessment("EMP0001", "", "", probs[0][1])
				So(a.HighRisk, ShouldBeFalse)
				So(a.Category, ShouldEqual, model.RiskMedium)
			})
		})

		Convey("When 30 of 100 trees vote for turnover", func() {
			probs, err := votingForest(30, 100).PredictProba([][]float64{{0}})
			So(err, ShouldBeNil)

			Convey("Then the probability is exactly 0.3 and low risk", func() {
				So(probs[0][1], ShouldEqual, 0.3)
				So(probs[0][0], ShouldEqual, 0.7)
				So(model.CategorizeRisk(probs[0][1]), ShouldEqual, model.RiskLow)
			})
		})

		Convey("When every share out of 100 is checked", func() {
			Convey("Then each equals the exact quotient", func() {
				for v := 0; v <= 100; v++ {
					probs, err := votingForest(v, 100).PredictProba([][]float64{{0}})
					So(err, ShouldBeNil)
					So(probs[0][1], ShouldEqual, float64(v)/100)
				}
			})
		})
	})
}
