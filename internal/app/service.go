// Package service runs the analytics pipeline and implements the read
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/ignite/internal/adapters/dataset"
	repository "github.com/okian/ignite/internal/adapters/repository"
	"github.com/okian/ignite/internal/config"
	"github.com/okian/ignite/internal/domain/engagement"
	"github.com/okian/ignite/internal/domain/features"
	"github.com/okian/ignite/internal/domain/labels"
	"github.com/okian/ignite/internal/domain/model"
	"github.com/okian/ignite/internal/domain/turnover"
	"github.com/okian/ignite/internal/domain/types"
	"github.com/okian/ignite/internal/sampledata"
	"github.com/okian/ignite/pkg/logger"
)

// Source names reported for the loaded population.
const (
	SourceSample   = "sample"
	SourceProvided = "provided"

	topFeatures = 5
)

// Report summarizes one Initialize run.
type Report struct {
	RunID       string                  `json:"run_id" yaml:"run_id"`
	Source      string                  `json:"source" yaml:"source"`
	Employees   int                     `json:"employees" yaml:"employees"`
	HighRisk    int                     `json:"high_risk" yaml:"high_risk"`
	MeanRisk    float64                 `json:"mean_risk" yaml:"mean_risk"`
	Turnover    turnover.TrainMetrics   `json:"turnover" yaml:"turnover"`
	Engagement  engagement.TrainMetrics `json:"engagement" yaml:"engagement"`
	TopFeatures []turnover.Importance   `json:"top_features" yaml:"top_features"`
}

// Service implements the API dependencies for the risk read model.
type Service struct {
	// mu guards the published state and the register together; initMu
	// allows one Initialize at a time.
	mu     sync.RWMutex
	initMu sync.Mutex

	// Configuration
	cfg      config.Config
	dataset  *model.Dataset
	now      func() time.Time
	register repository.Register

	// State
	predictor *turnover.Predictor
	records   []features.Record
	report    *Report

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig replaces the default pipeline settings with cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = *cfg
		}
	}
}

// WithDataset trains on ds instead of loading the data directory or
// generating a sample.
func WithDataset(ds model.Dataset) Option {
	return func(s *Service) {
		s.dataset = &ds
	}
}

// WithClock sets the reference time for tenure and generated hire dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRegister sets the store that keeps the ranked population.
func WithRegister(r repository.Register) Option {
	return func(s *Service) {
		if r != nil {
			s.register = r
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg: *config.New(),
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.register == nil {
		s.register = repository.NewTreapRegister(repository.WithMaxLimit(s.cfg.MaxRiskLimit))
	}

	return s
}

// Initialize loads the population, trains both models, scores every employee
// and publishes the results. It may be called again to retrain; readers keep
// seeing the previous results until the new run succeeds. Concurrent calls
// run one after another.
func (s *Service) Initialize(ctx context.Context) (Report, error) {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	start := time.Now()
	ds, source, err := s.load(ctx)
	if err != nil {
		return Report{}, err
	}

	policy, err := features.ParseUnknownPolicy(s.cfg.UnknownCategoryPolicy)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	builder := features.NewBuilder(
		features.WithLogger(s.logger.Named("features")),
		features.WithClock(s.now),
		features.WithUnknownPolicy(policy),
	)
	predictor := turnover.NewPredictor(
		turnover.WithTrees(s.cfg.ForestTrees),
		turnover.WithSeed(s.cfg.Seed),
		turnover.WithTestFraction(s.cfg.TestFraction),
		turnover.WithBuilder(builder),
		turnover.WithLogger(s.logger.Named("turnover")),
	)

	records, err := predictor.PrepareFeatures(ctx, ds.Employees, ds.Surveys, ds.Metrics)
	if err != nil {
		return Report{}, fmt.Errorf("prepare features: %w", err)
	}

	labelled := labels.NewSynthesizer(
		labels.WithSeed(s.cfg.Seed),
		labels.WithNoiseStdDev(s.cfg.LabelNoiseStd),
		labels.WithLogger(s.logger.Named("labels")),
	).Synthesize(ctx, records)

	tm, err := predictor.Train(ctx, labelled)
	if err != nil {
		return Report{}, fmt.Errorf("train turnover model: %w", err)
	}

	em, err := engagement.NewPredictor(
		engagement.WithEstimators(s.cfg.BoostingEstimators),
		engagement.WithLearningRate(s.cfg.BoostingLearningRate),
		engagement.WithMaxDepth(s.cfg.BoostingMaxDepth),
		engagement.WithSeed(s.cfg.Seed),
		engagement.WithTestFraction(s.cfg.TestFraction),
		engagement.WithLogger(s.logger.Named("engagement")),
	).Train(ctx, records)
	if err != nil {
		return Report{}, fmt.Errorf("train engagement model: %w", err)
	}

	assessments, err := predictor.Predict(ctx, records)
	if err != nil {
		return Report{}, fmt.Errorf("score population: %w", err)
	}
	importances, err := predictor.FeatureImportance()
	if err != nil {
		return Report{}, err
	}
	run, err := predictor.LastRun()
	if err != nil {
		return Report{}, err
	}

	s.mu.Lock()
	if err := s.register.Replace(ctx, assessments); err != nil {
		s.mu.Unlock()
		return Report{}, fmt.Errorf("publish risks: %w", err)
	}
	summary := s.register.Summary(ctx)
	report := Report{
		RunID:       run.ID,
		Source:      source,
		Employees:   len(records),
		HighRisk:    summary.HighRisk,
		MeanRisk:    summary.MeanRisk,
		Turnover:    tm,
		Engagement:  em,
		TopFeatures: importances[:min(topFeatures, len(importances))],
	}
	s.predictor = predictor
	s.records = records
	s.report = &report
	s.mu.Unlock()

	s.logger.Info(ctx, "risk pipeline initialized",
		logger.String("run_id", run.ID),
		logger.String("source", source),
		logger.Int("employees", report.Employees),
		logger.Int("high_risk", report.HighRisk),
		logger.Float64("test_accuracy", tm.TestAccuracy),
		logger.Float64("engagement_test_r2", em.TestR2),
		logger.Duration("took", time.Since(start)),
	)
	return report, nil
}

// load picks the population: an injected dataset, the data directory, or a
// generated sample, in that order.
func (s *Service) load(ctx context.Context) (model.Dataset, string, error) {
	switch {
	case s.dataset != nil:
		return *s.dataset, SourceProvided, nil
	case s.cfg.DataDir != "":
		ds, err := dataset.LoadDir(ctx, s.cfg.DataDir)
		if err != nil {
			return model.Dataset{}, "", fmt.Errorf("load %s: %w", s.cfg.DataDir, err)
		}
		return ds, s.cfg.DataDir, nil
	default:
		ds := sampledata.New(
			sampledata.WithEmployees(s.cfg.SampleSize),
			sampledata.WithSeed(s.cfg.Seed),
			sampledata.WithAsOf(s.now()),
		).Generate(ctx)
		return ds, SourceSample, nil
	}
}

// state returns the published predictor and records, or ErrNotReady.
func (s *Service) state() (*turnover.Predictor, []features.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.ready(); err != nil {
		return nil, nil, err
	}
	return s.predictor, s.records, nil
}

// ready reports ErrNotReady until the first Initialize succeeds. Caller
// holds mu.
func (s *Service) ready() error {
	if s.predictor == nil {
		return fmt.Errorf("%w: %w", types.ErrNotReady, turnover.ErrNotTrained)
	}
	return nil
}

// Report returns the summary of the last successful Initialize.
func (s *Service) Report() (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report == nil {
		return Report{}, fmt.Errorf("%w: %w", types.ErrNotReady, turnover.ErrNotTrained)
	}
	return *s.report, nil
}

// TopRisks returns the n riskiest employees.
func (s *Service) TopRisks(ctx context.Context, n int) ([]types.RiskEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	entries, err := s.register.TopN(ctx, n)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidLimit) {
			return nil, fmt.Errorf("%w: %w", types.ErrInvalidLimit, err)
		}
		return nil, err
	}

	out := make([]types.RiskEntry, len(entries))
	for i, e := range entries {
		out[i] = toRiskEntry(e)
	}
	return out, nil
}

// Risk returns the rank and risk of one employee.
func (s *Service) Risk(ctx context.Context, employeeID string) (types.RiskEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.ready(); err != nil {
		return types.RiskEntry{}, err
	}
	e, err := s.register.Get(ctx, employeeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return types.RiskEntry{}, fmt.Errorf("%w: %s: %w", types.ErrNotFound, employeeID, err)
		}
		return types.RiskEntry{}, err
	}
	return toRiskEntry(e), nil
}

// Factors explains one employee's risk.
func (s *Service) Factors(ctx context.Context, employeeID string) (types.Factors, error) {
	predictor, records, err := s.state()
	if err != nil {
		return types.Factors{}, err
	}
	rf, err := predictor.ExplainFactors(ctx, employeeID, records)
	if err != nil {
		if errors.Is(err, turnover.ErrEmployeeNotFound) {
			return types.Factors{}, fmt.Errorf("%w: %w", types.ErrNotFound, err)
		}
		return types.Factors{}, err
	}
	return types.Factors{
		EmployeeID:  rf.EmployeeID,
		OverallRisk: rf.OverallRisk,
		Factors:     rf.Factors,
	}, nil
}

// Importance returns the ranked feature importances of the turnover model.
func (s *Service) Importance(ctx context.Context) ([]types.Importance, error) {
	predictor, _, err := s.state()
	if err != nil {
		return nil, err
	}
	imps, err := predictor.FeatureImportance()
	if err != nil {
		return nil, err
	}
	out := make([]types.Importance, len(imps))
	for i, imp := range imps {
		out[i] = types.Importance{Rank: i + 1, Feature: imp.Feature, Importance: imp.Importance}
	}
	return out, nil
}

// DepartmentSummary returns per-department risk totals, riskiest first.
func (s *Service) DepartmentSummary(ctx context.Context) ([]types.DepartmentRisk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	deps := s.register.Departments(ctx)
	out := make([]types.DepartmentRisk, len(deps))
	for i, d := range deps {
		out[i] = types.DepartmentRisk{
			Department: d.Department,
			Employees:  d.Employees,
			HighRisk:   d.HighRisk,
			MeanRisk:   d.MeanRisk,
		}
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report := s.report

	stats := map[string]interface{}{
		"initialized": report != nil,
	}
	if report == nil {
		return stats
	}

	ctx := context.Background()
	summary := s.register.Summary(ctx)
	byCategory := make(map[string]int, len(model.Categories))
	for _, c := range model.Categories {
		byCategory[string(c)] = summary.ByCategory[c]
	}
	top := make([]string, len(report.TopFeatures))
	for i, f := range report.TopFeatures {
		top[i] = f.Feature
	}

	stats["source"] = report.Source
	stats["employees"] = s.register.Count(ctx)
	stats["highRisk"] = summary.HighRisk
	stats["meanRisk"] = summary.MeanRisk
	stats["byCategory"] = byCategory
	stats["runId"] = report.RunID
	stats["testAccuracy"] = report.Turnover.TestAccuracy
	stats["featuresUsed"] = report.Turnover.FeaturesUsed
	stats["engagementTestR2"] = report.Engagement.TestR2
	stats["topFeatures"] = top
	return stats
}

func toRiskEntry(e repository.Entry) types.RiskEntry {
	return types.RiskEntry{
		Rank:         e.Rank,
		EmployeeID:   e.EmployeeID,
		Name:         e.Name,
		Department:   e.Department,
		TurnoverRisk: e.Risk,
		HighRisk:     e.HighRisk,
		RiskCategory: string(e.Category),
	}
}
