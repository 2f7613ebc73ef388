package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"

	"github.com/okian/ignite/internal/adapters/dataset"
	"github.com/okian/ignite/pkg/logger"
)

func init() {
	_ = logger.Init(logger.WithWriter(io.Discard))
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	convey.Convey("Given an output directory", t, func() {
		dir := filepath.Join(t.TempDir(), "data")

		convey.Convey("When generate runs", func() {
			out, err := execute("generate", "--out", dir, "--employees", "30", "--seed", "5")

			convey.Convey("Then the three tables are written", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "wrote 30 employees")
				ds, err := dataset.LoadDir(context.Background(), dir)
				convey.So(err, convey.ShouldBeNil)
				convey.So(ds.Employees, convey.ShouldHaveLength, 30)
				convey.So(ds.Surveys, convey.ShouldHaveLength, 30)
				convey.So(ds.Metrics, convey.ShouldHaveLength, 30)
			})
		})

		convey.Convey("When the employee count is not positive", func() {
			_, err := execute("generate", "--out", dir, "--employees", "0")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestTrainCommand(t *testing.T) {
	convey.Convey("Given a generated data directory", t, func() {
		dir := t.TempDir()
		_, err := execute("generate", "--out", dir, "--employees", "40", "--seed", "3")
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When train prints JSON", func() {
			out, err := execute("train", "--data", dir, "--format", "json", "--top", "3", "--trees", "10")

			convey.Convey("Then the report covers the population", func() {
				convey.So(err, convey.ShouldBeNil)
				var got trainOutput
				convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
				convey.So(got.Report.Employees, convey.ShouldEqual, 40)
				convey.So(got.Report.Source, convey.ShouldEqual, dir)
				convey.So(got.TopRisks, convey.ShouldHaveLength, 3)
				convey.So(got.TopRisks[0].Rank, convey.ShouldEqual, 1)
				convey.So(got.Importance, convey.ShouldHaveLength, got.Report.Turnover.FeaturesUsed)
			})
		})

		convey.Convey("When train prints YAML", func() {
			out, err := execute("train", "--data", dir, "--top", "2", "--trees", "10")

			convey.Convey("Then the document has every section", func() {
				convey.So(err, convey.ShouldBeNil)
				var got map[string]any
				convey.So(yaml.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
				convey.So(got, convey.ShouldContainKey, "report")
				convey.So(got, convey.ShouldContainKey, "top_risks")
				convey.So(got, convey.ShouldContainKey, "importance")
			})
		})

		convey.Convey("When the format is unknown", func() {
			_, err := execute("train", "--data", dir, "--format", "xml")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the root command", t, func() {
		root := newRootCmd()

		convey.Convey("Then it exposes generate, train and serve", func() {
			names := []string{}
			for _, c := range root.Commands() {
				names = append(names, c.Name())
			}
			convey.So(names, convey.ShouldContain, "generate")
			convey.So(names, convey.ShouldContain, "train")
			convey.So(names, convey.ShouldContain, "serve")
		})

		convey.Convey("Then an unknown log level is rejected", func() {
			_, err := execute("--log-level", "loud", "generate", "--out", t.TempDir())
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
