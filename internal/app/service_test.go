package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/okian/ignite/internal/adapters/dataset"
	"github.com/okian/ignite/internal/adapters/repository"
	service "github.com/okian/ignite/internal/app"
	"github.com/okian/ignite/internal/config"
	"github.com/okian/ignite/internal/domain/model"
	"github.com/okian/ignite/internal/domain/types"
	"github.com/okian/ignite/internal/sampledata"
	"github.com/okian/ignite/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

var asOf = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func clock() time.Time { return asOf }

func smallConfig() *config.Config {
	cfg := config.New()
	cfg.SampleSize = 120
	cfg.ForestTrees = 15
	cfg.BoostingEstimators = 15
	return cfg
}

func TestService_BeforeInitialize(t *testing.T) {
	Convey("Given a service that has not been initialized", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithConfig(smallConfig()), service.WithClock(clock))

		Convey("Then reads report that the model is not ready", func() {
			_, err := svc.TopRisks(ctx, 5)
			So(errors.Is(err, types.ErrNotReady), ShouldBeTrue)

			_, err = svc.Risk(ctx, "EMP0000")
			So(errors.Is(err, types.ErrNotReady), ShouldBeTrue)

			_, err = svc.Factors(ctx, "EMP0000")
			So(errors.Is(err, types.ErrNotReady), ShouldBeTrue)

			_, err = svc.Importance(ctx)
			So(errors.Is(err, types.ErrNotReady), ShouldBeTrue)

			_, err = svc.DepartmentSummary(ctx)
			So(errors.Is(err, types.ErrNotReady), ShouldBeTrue)

			_, err = svc.Report()
			So(errors.Is(err, types.ErrNotReady), ShouldBeTrue)
		})

		Convey("Then stats show it as uninitialized", func() {
			So(svc.GetStats()["initialized"], ShouldEqual, false)
		})
	})
}

func TestService_Initialize(t *testing.T) {
	Convey("Given a service on a generated sample", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		svc := service.New(service.WithConfig(smallConfig()), service.WithClock(clock))

		report, err := svc.Initialize(ctx)
		So(err, ShouldBeNil)

		Convey("Then the report describes the run", func() {
			So(report.Source, ShouldEqual, service.SourceSample)
			So(report.Employees, ShouldEqual, 120)
			So(report.Turnover.FeaturesUsed, ShouldEqual, 17)
			So(report.Turnover.TrainRows+report.Turnover.TestRows, ShouldEqual, 120)
			So(report.Engagement.TestRows, ShouldEqual, 24)
			So(report.TopFeatures, ShouldHaveLength, 5)
			So(report.MeanRisk, ShouldBeBetweenOrEqual, 0.0, 1.0)
		})

		Convey("Then the top risks are ranked riskiest first", func() {
			top, err := svc.TopRisks(ctx, 10)
			So(err, ShouldBeNil)
			So(top, ShouldHaveLength, 10)
			for i := range top {
				So(top[i].Rank, ShouldEqual, i+1)
				if i > 0 {
					So(top[i].TurnoverRisk, ShouldBeLessThanOrEqualTo, top[i-1].TurnoverRisk)
				}
			}

			Convey("And a single lookup agrees with the list", func() {
				e, err := svc.Risk(ctx, top[0].EmployeeID)
				So(err, ShouldBeNil)
				So(e, ShouldResemble, top[0])
			})
		})

		Convey("Then invalid limits and unknown employees are reported", func() {
			_, err := svc.TopRisks(ctx, 0)
			So(errors.Is(err, types.ErrInvalidLimit), ShouldBeTrue)

			_, err = svc.Risk(ctx, "EMP9999")
			So(errors.Is(err, types.ErrNotFound), ShouldBeTrue)

			_, err = svc.Factors(ctx, "EMP9999")
			So(errors.Is(err, types.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then factors explain a known employee", func() {
			f, err := svc.Factors(ctx, "EMP0003")
			So(err, ShouldBeNil)
			So(f.EmployeeID, ShouldEqual, "EMP0003")
			So(f.OverallRisk, ShouldBeBetweenOrEqual, 0.0, 1.0)
			So(f.Factors, ShouldNotBeNil)
		})

		Convey("Then importances are ranked and sum to one", func() {
			imps, err := svc.Importance(ctx)
			So(err, ShouldBeNil)
			So(imps, ShouldHaveLength, 17)
			sum := 0.0
			for i, imp := range imps {
				So(imp.Rank, ShouldEqual, i+1)
				sum += imp.Importance
			}
			So(sum, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("Then departments cover the whole population", func() {
			deps, err := svc.DepartmentSummary(ctx)
			So(err, ShouldBeNil)
			So(len(deps), ShouldBeBetweenOrEqual, 1, len(sampledata.Departments))
			total := 0
			for i, d := range deps {
				total += d.Employees
				if i > 0 {
					So(d.MeanRisk, ShouldBeLessThanOrEqualTo, deps[i-1].MeanRisk)
				}
			}
			So(total, ShouldEqual, 120)
		})

		Convey("Then stats reflect the register", func() {
			stats := svc.GetStats()
			So(stats["initialized"], ShouldEqual, true)
			So(stats["employees"], ShouldEqual, 120)
			So(stats["highRisk"], ShouldEqual, report.HighRisk)
		})
	})
}

func TestService_Determinism(t *testing.T) {
	Convey("Given two services with the same settings", t, func() {
		ctx := context.Background()
		a := service.New(service.WithConfig(smallConfig()), service.WithClock(clock))
		b := service.New(service.WithConfig(smallConfig()), service.WithClock(clock))

		_, err := a.Initialize(ctx)
		So(err, ShouldBeNil)
		_, err = b.Initialize(ctx)
		So(err, ShouldBeNil)

		Convey("Then they rank the population identically", func() {
			topA, err := a.TopRisks(ctx, 120)
			So(err, ShouldBeNil)
			topB, err := b.TopRisks(ctx, 120)
			So(err, ShouldBeNil)
			So(cmp.Diff(topA, topB), ShouldBeEmpty)
		})
	})
}

// slowRegister flags Replace calls that overlap.
type slowRegister struct {
	*repository.TreapRegister
	inflight atomic.Int32
	overlap  atomic.Bool
}

func (r *slowRegister) Replace(ctx context.Context, assessments []model.RiskAssessment) error {
	if r.inflight.Add(1) > 1 {
		r.overlap.Store(true)
	}
	defer r.inflight.Add(-1)
	time.Sleep(20 * time.Millisecond)
	return r.TreapRegister.Replace(ctx, assessments)
}

func TestService_ConcurrentInitialize(t *testing.T) {
	Convey("Given a service retrained from several goroutines", t, func() {
		ctx := context.Background()
		reg := &slowRegister{TreapRegister: repository.NewTreapRegister()}
		svc := service.New(service.WithConfig(smallConfig()), service.WithClock(clock), service.WithRegister(reg))

		var wg sync.WaitGroup
		errs := make(chan error, 3)
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Initialize(ctx)
				errs <- err
			}()
		}

		var mismatched atomic.Bool
		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 200; i++ {
				if _, err := svc.TopRisks(ctx, 1); err != nil {
					continue
				}
				if _, err := svc.Report(); err != nil {
					mismatched.Store(true)
				}
			}
		}()

		wg.Wait()
		<-done
		close(errs)

		Convey("Then every run succeeds without overlapping publishes", func() {
			for err := range errs {
				So(err, ShouldBeNil)
			}
			So(reg.overlap.Load(), ShouldBeFalse)
			So(mismatched.Load(), ShouldBeFalse)
		})

		Convey("Then the register and the report agree", func() {
			report, err := svc.Report()
			So(err, ShouldBeNil)
			So(report.RunID, ShouldNotBeEmpty)
			stats := svc.GetStats()
			So(stats["highRisk"], ShouldEqual, report.HighRisk)
			So(stats["runId"], ShouldEqual, report.RunID)
			So(reg.Count(ctx), ShouldEqual, report.Employees)
		})
	})
}

func TestService_DataSources(t *testing.T) {
	Convey("Given a dataset written to a directory", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		ds := sampledata.New(sampledata.WithEmployees(80), sampledata.WithSeed(9), sampledata.WithAsOf(asOf)).Generate(ctx)
		So(dataset.SaveDir(ctx, dir, ds), ShouldBeNil)

		Convey("When the service loads the directory", func() {
			cfg := smallConfig()
			cfg.DataDir = dir
			svc := service.New(service.WithConfig(cfg), service.WithClock(clock))
			report, err := svc.Initialize(ctx)

			Convey("Then it trains on the files", func() {
				So(err, ShouldBeNil)
				So(report.Source, ShouldEqual, dir)
				So(report.Employees, ShouldEqual, 80)
			})
		})

		Convey("When the dataset is injected", func() {
			svc := service.New(service.WithConfig(smallConfig()), service.WithClock(clock), service.WithDataset(ds))
			report, err := svc.Initialize(ctx)

			Convey("Then it trains on it", func() {
				So(err, ShouldBeNil)
				So(report.Source, ShouldEqual, service.SourceProvided)
				So(report.Employees, ShouldEqual, 80)
			})
		})
	})

	Convey("Given a missing data directory", t, func() {
		cfg := smallConfig()
		cfg.DataDir = t.TempDir() + "/absent"
		svc := service.New(service.WithConfig(cfg))

		Convey("Then Initialize fails", func() {
			_, err := svc.Initialize(context.Background())
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given an unknown category policy", t, func() {
		cfg := smallConfig()
		cfg.UnknownCategoryPolicy = "ignore"
		svc := service.New(service.WithConfig(cfg))

		Convey("Then Initialize reports invalid config", func() {
			_, err := svc.Initialize(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
