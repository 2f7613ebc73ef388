// Package sampledata generates a reproducible synthetic workforce: employees,
// one survey response each and one engagement metrics row each.
package sampledata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/okian/ignite/internal/domain/model"
	"github.com/okian/ignite/pkg/logger"
)

// Default generation constants.
const (
	defaultEmployees = 100
	defaultSeed      = 42

	minTenureDays = 30
	maxTenureDays = 1825

	minAnswer = 1
	maxAnswer = 10

	minSentiment = 0.2
	maxSentiment = 0.9

	minENPS = -100
	maxENPS = 100

	surveyType = "custom_satisfaction"
)

// Value pools.
var (
	Departments      = []string{"Engineering", "Sales", "Marketing", "HR", "Finance", "Operations"} //nolint:gochecknoglobals // fixed pool
	WorkArrangements = []string{"hybrid", "remote", "in-office"}                                      //nolint:gochecknoglobals // fixed pool
	Levels           = []string{"junior", "mid", "senior", "leadership"}                              //nolint:gochecknoglobals // fixed pool
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithEmployees sets the workforce size.
func WithEmployees(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.employees = n
		}
	}
}

// WithSeed sets the random seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithAsOf sets the reference time for hire dates and timestamps.
func WithAsOf(t time.Time) Option {
	return func(g *Generator) {
		if !t.IsZero() {
			g.asOf = t
		}
	}
}

// Generator produces datasets. The same options always produce the same data.
type Generator struct {
	employees int
	seed      int64
	asOf      time.Time
}

// New creates a generator for 100 employees with seed 42, as of now.
func New(opts ...Option) *Generator {
	g := &Generator{
		employees: defaultEmployees,
		seed:      defaultSeed,
		asOf:      time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the dataset.
func (g *Generator) Generate(ctx context.Context) model.Dataset {
	rng := rand.New(rand.NewSource(g.seed)) //nolint:gosec // reproducible sample data
	pick := func(pool []string) string { return pool[rng.Intn(len(pool))] }
	uniform := func(lo, hi float64) float64 { return lo + (hi-lo)*rng.Float64() }
	answer := func() *float64 { return model.Float(float64(minAnswer + rng.Intn(maxAnswer-minAnswer+1))) }

	ds := model.Dataset{
		Employees: make([]model.EmployeeRecord, g.employees),
		Surveys:   make([]model.SurveyRecord, g.employees),
		Metrics:   make([]model.MetricsRecord, g.employees),
	}
	for i := range ds.Employees {
		tenure := minTenureDays + rng.Intn(maxTenureDays-minTenureDays)
		ds.Employees[i] = model.EmployeeRecord{
			EmployeeID:      fmt.Sprintf("EMP%04d", i),
			Name:            fmt.Sprintf("Employee %d", i+1),
			Department:      pick(Departments),
			Role:            fmt.Sprintf("Role %d", i+1),
			HireDate:        g.asOf.AddDate(0, 0, -tenure),
			WorkArrangement: pick(WorkArrangements),
			Level:           pick(Levels),
		}
	}
	for i, e := range ds.Employees {
		ds.Surveys[i] = model.SurveyRecord{
			ResponseID:               fmt.Sprintf("RESP%04d", i),
			EmployeeID:               e.EmployeeID,
			SurveyType:               surveyType,
			JobSatisfaction:          answer(),
			WorkLifeBalance:          answer(),
			CareerDevelopment:        answer(),
			ManagementSupport:        answer(),
			CompanyCulture:           answer(),
			CompensationSatisfaction: answer(),
			SentimentScore:           model.Float(uniform(minSentiment, maxSentiment)),
			Timestamp:                g.asOf,
		}
	}
	for i, e := range ds.Employees {
		ds.Metrics[i] = model.MetricsRecord{
			EmployeeID:        e.EmployeeID,
			ENPSScore:         model.Float(float64(minENPS + rng.Intn(maxENPS-minENPS+1))),
			EngagementScore:   model.Float(uniform(minAnswer, maxAnswer)),
			SatisfactionScore: model.Float(uniform(minAnswer, maxAnswer)),
			TurnoverRisk:      model.Float(rng.Float64()),
			Department:        e.Department,
			LastUpdated:       g.asOf,
		}
	}

	logger.Get().Named("sampledata").Info(ctx, "generated sample data",
		logger.Int("employees", g.employees),
		logger.Int64("seed", g.seed),
	)
	return ds
}
