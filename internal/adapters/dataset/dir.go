package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/okian/ignite/internal/domain/model"
	"github.com/okian/ignite/pkg/logger"
)

// File names inside a dataset directory.
const (
	EmployeesFile = "employees.csv"
	SurveysFile   = "surveys.csv"
	MetricsFile   = "metrics.csv"
)

// LoadDir reads the three tables from dir concurrently. The employees table
// is required; a missing survey or metrics file yields an empty table.
func LoadDir(ctx context.Context, dir string) (model.Dataset, error) {
	var ds model.Dataset
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := readFile(ctx, dir, EmployeesFile, false, ReadEmployees)
		ds.Employees = rows
		return err
	})
	g.Go(func() error {
		rows, err := readFile(ctx, dir, SurveysFile, true, ReadSurveys)
		ds.Surveys = rows
		return err
	})
	g.Go(func() error {
		rows, err := readFile(ctx, dir, MetricsFile, true, ReadMetrics)
		ds.Metrics = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return model.Dataset{}, err
	}
	logger.Get().Named("dataset").Info(ctx, "dataset loaded",
		logger.String("dir", dir),
		logger.Int("employees", len(ds.Employees)),
		logger.Int("surveys", len(ds.Surveys)),
		logger.Int("metrics", len(ds.Metrics)),
	)
	return ds, nil
}

// SaveDir writes the three tables into dir, creating it if needed.
func SaveDir(ctx context.Context, dir string, ds model.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeFile(ctx, dir, EmployeesFile, func(w io.Writer) error { return WriteEmployees(w, ds.Employees) })
	})
	g.Go(func() error {
		return writeFile(ctx, dir, SurveysFile, func(w io.Writer) error { return WriteSurveys(w, ds.Surveys) })
	})
	g.Go(func() error {
		return writeFile(ctx, dir, MetricsFile, func(w io.Writer) error { return WriteMetrics(w, ds.Metrics) })
	})
	return g.Wait()
}

func readFile[T any](ctx context.Context, dir, name string, optional bool, decode func(io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if optional && errors.Is(err, fs.ErrNotExist) {
		logger.Get().Named("dataset").Warn(ctx, "optional table missing", logger.String("path", path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	rows, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rows, nil
}

func writeFile(ctx context.Context, dir, name string, encode func(io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return f.Close()
}
