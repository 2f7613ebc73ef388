package config_test

import (
	"testing"

	"github.com/okian/ignite/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.SampleSize, convey.ShouldEqual, 200)
			convey.So(cfg.Seed, convey.ShouldEqual, int64(42))
			convey.So(cfg.TestFraction, convey.ShouldEqual, 0.2)
			convey.So(cfg.ForestTrees, convey.ShouldEqual, 100)
			convey.So(cfg.BoostingEstimators, convey.ShouldEqual, 100)
			convey.So(cfg.BoostingLearningRate, convey.ShouldEqual, 0.1)
			convey.So(cfg.BoostingMaxDepth, convey.ShouldEqual, 3)
			convey.So(cfg.LabelNoiseStd, convey.ShouldEqual, 0.1)
			convey.So(cfg.UnknownCategoryPolicy, convey.ShouldEqual, config.UnknownPolicyReserve)
		})

		convey.Convey("Then the defaults validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
