// Package turnover trains the turnover risk classifier and serves risk
// assessments and per-employee explanations from it.
package turnover

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ignite/internal/domain/explain"
	"github.com/okian/ignite/internal/domain/features"
	"github.com/okian/ignite/internal/domain/ml"
	"github.com/okian/ignite/internal/domain/model"
	"github.com/okian/ignite/pkg/logger"
	"github.com/okian/ignite/pkg/metrics"
)

// Default predictor configuration constants.
const (
	defaultTrees        = 100
	defaultSeed         = 42
	defaultTestFraction = 0.2

	metricsModel = "turnover"
)

// TrainMetrics summarizes the fit quality of one training run. Identical
// input and seed give identical metrics.
type TrainMetrics struct {
	TrainAccuracy float64 `json:"train_accuracy" yaml:"train_accuracy"`
	TestAccuracy  float64 `json:"test_accuracy" yaml:"test_accuracy"`
	FeaturesUsed  int     `json:"features_used" yaml:"features_used"`
	TrainRows     int     `json:"train_rows" yaml:"train_rows"`
	TestRows      int     `json:"test_rows" yaml:"test_rows"`
}

// Run identifies the training run behind the current model.
type Run struct {
	ID       string        `json:"id" yaml:"id"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Importance is one feature's share of the forest's impurity reduction.
type Importance struct {
	Feature    string  `json:"feature" yaml:"feature"`
	Importance float64 `json:"importance" yaml:"importance"`
}

// RiskFactors explains one employee's risk.
type RiskFactors struct {
	EmployeeID  string   `json:"employee_id" yaml:"employee_id"`
	OverallRisk float64  `json:"overall_risk" yaml:"overall_risk"`
	Factors     []string `json:"factors" yaml:"factors"`
}

// trainedModel is everything inference needs, replaced wholesale by Train.
type trainedModel struct {
	features    []string
	scaler      ml.StandardScaler
	forest      *ml.RandomForest
	importances []Importance
	run         Run
}

// Predictor owns the feature builder, its encoders and the trained model.
// Train swaps the model under a write lock; Predict and ExplainFactors only
// read it and may run concurrently.
type Predictor struct {
	mu           sync.RWMutex
	builder      *features.Builder
	trees        int
	seed         int64
	testFraction float64
	log          logger.Logger

	model *trainedModel
}

// NewPredictor creates an untrained predictor.
func NewPredictor(opts ...Option) *Predictor {
	p := &Predictor{
		trees:        defaultTrees,
		seed:         defaultSeed,
		testFraction: defaultTestFraction,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Get().Named("turnover")
	}
	if p.builder == nil {
		p.builder = features.NewBuilder(features.WithLogger(p.log.Named("features")))
	}
	return p
}

// PrepareFeatures builds feature records with the predictor's encoders, which
// are fitted on the first call and reused afterwards.
func (p *Predictor) PrepareFeatures(ctx context.Context, employees []model.EmployeeRecord, surveys []model.SurveyRecord, metricRows []model.MetricsRecord) ([]features.Record, error) {
	return p.builder.Build(ctx, employees, surveys, metricRows)
}

// Trained reports whether a model is available.
func (p *Predictor) Trained() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model != nil
}

// Train fits the classifier on labelled records. Candidate columns with no
// value in any record are left out; the rest keep their fixed order and are
// zero-filled.
func (p *Predictor) Train(ctx context.Context, records []features.Record) (TrainMetrics, error) {
	start := time.Now()
	m, tm, err := p.fit(records)
	if err != nil {
		metrics.RecordTrainingError(metricsModel)
		metrics.RecordErrorByComponent(metricsModel, "train")
		p.log.Error(ctx, "turnover training failed", logger.Error(err), logger.Int("records", len(records)))
		return TrainMetrics{}, err
	}
	m.run.Duration = time.Since(start)

	p.mu.Lock()
	p.model = m
	p.mu.Unlock()

	metrics.RecordTrainingRun(metricsModel, m.run.Duration)
	metrics.UpdateModelScore(metricsModel, "accuracy", "train", tm.TrainAccuracy)
	metrics.UpdateModelScore(metricsModel, "accuracy", "test", tm.TestAccuracy)
	metrics.UpdateFeaturesUsed(metricsModel, tm.FeaturesUsed)
	p.log.Info(ctx, "turnover model trained",
		logger.String("run_id", m.run.ID),
		logger.Float64("train_accuracy", tm.TrainAccuracy),
		logger.Float64("test_accuracy", tm.TestAccuracy),
		logger.Int("features", tm.FeaturesUsed),
		logger.Int("train_rows", tm.TrainRows),
		logger.Int("test_rows", tm.TestRows),
		logger.Duration("took", m.run.Duration),
	)
	return tm, nil
}

func (p *Predictor) fit(records []features.Record) (*trainedModel, TrainMetrics, error) {
	if len(records) == 0 {
		return nil, TrainMetrics{}, ErrEmptyDataset
	}
	y := make([]int, len(records))
	for i, r := range records {
		if r.Label == nil {
			return nil, TrainMetrics{}, fmt.Errorf("employee %s: %w", r.EmployeeID, ErrMissingLabel)
		}
		y[i] = r.Label.WillTurnover
	}

	cols := features.PresentColumns(records, features.ClassifierColumns)
	x := features.ZeroFill.Matrix(records, cols)

	trainIdx, testIdx, err := ml.TrainTestSplit(len(records), p.testFraction, p.seed)
	if err != nil {
		return nil, TrainMetrics{}, fmt.Errorf("split: %w", err)
	}

	m := &trainedModel{features: cols, run: Run{ID: uuid.NewString()}}
	xTrain, err := m.scaler.FitTransform(ml.Rows(x, trainIdx))
	if err != nil {
		return nil, TrainMetrics{}, fmt.Errorf("scale: %w", err)
	}
	xTest, err := m.scaler.Transform(ml.Rows(x, testIdx))
	if err != nil {
		return nil, TrainMetrics{}, fmt.Errorf("scale: %w", err)
	}
	yTrain, yTest := ml.Take(y, trainIdx), ml.Take(y, testIdx)

	m.forest = ml.NewRandomForest(ml.WithTrees(p.trees), ml.WithForestSeed(p.seed))
	if err := m.forest.Fit(xTrain, yTrain); err != nil {
		return nil, TrainMetrics{}, fmt.Errorf("fit forest: %w", err)
	}

	trainPred, err := m.forest.Predict(xTrain)
	if err != nil {
		return nil, TrainMetrics{}, err
	}
	testPred, err := m.forest.Predict(xTest)
	if err != nil {
		return nil, TrainMetrics{}, err
	}

	weights, err := m.forest.FeatureImportances()
	if err != nil {
		return nil, TrainMetrics{}, err
	}
	m.importances = make([]Importance, len(cols))
	for i, c := range cols {
		m.importances[i] = Importance{Feature: c, Importance: weights[i]}
	}
	sort.SliceStable(m.importances, func(i, j int) bool {
		return m.importances[i].Importance > m.importances[j].Importance
	})

	return m, TrainMetrics{
		TrainAccuracy: ml.Accuracy(yTrain, trainPred),
		TestAccuracy:  ml.Accuracy(yTest, testPred),
		FeaturesUsed:  len(cols),
		TrainRows:     len(trainIdx),
		TestRows:      len(testIdx),
	}, nil
}

// Predict scores records with the trained model, replaying the stored
// feature list and scaler. Results are sorted by risk, highest first, with
// ties broken by employee id.
func (p *Predictor) Predict(ctx context.Context, records []features.Record) ([]model.RiskAssessment, error) {
	p.mu.RLock()
	m := p.model
	p.mu.RUnlock()
	if m == nil {
		return nil, ErrNotTrained
	}

	probs, err := m.probabilities(records)
	if err != nil {
		return nil, err
	}
	out := make([]model.RiskAssessment, len(records))
	high := 0
	for i, r := range records {
		out[i] = model.NewRiskAssessment(r.EmployeeID, r.Name, r.Department, probs[i])
		if out[i].HighRisk {
			high++
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Risk != out[j].Risk {
			return out[i].Risk > out[j].Risk
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})

	metrics.RecordPredictions(len(out))
	p.log.Debug(ctx, "turnover risk predicted",
		logger.Int("employees", len(out)),
		logger.Int("high_risk", high),
		logger.String("run_id", m.run.ID),
	)
	return out, nil
}

// ExplainFactors reports the model's risk and the rule-based factors for one
// employee in records.
func (p *Predictor) ExplainFactors(ctx context.Context, employeeID string, records []features.Record) (RiskFactors, error) {
	p.mu.RLock()
	m := p.model
	p.mu.RUnlock()
	if m == nil {
		return RiskFactors{}, ErrNotTrained
	}

	idx := -1
	for i := range records {
		if records[i].EmployeeID == employeeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return RiskFactors{}, fmt.Errorf("%s: %w", employeeID, ErrEmployeeNotFound)
	}

	probs, err := m.probabilities(records[idx : idx+1])
	if err != nil {
		return RiskFactors{}, err
	}
	rf := RiskFactors{
		EmployeeID:  employeeID,
		OverallRisk: probs[0],
		Factors:     explain.Factors(records[idx]),
	}
	p.log.Debug(ctx, "risk factors explained",
		logger.String("employee_id", employeeID),
		logger.Int("factors", len(rf.Factors)),
	)
	return rf, nil
}

// FeatureImportance returns the ranked importances of the trained model.
func (p *Predictor) FeatureImportance() ([]Importance, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.model == nil {
		return nil, ErrNotTrained
	}
	return append([]Importance(nil), p.model.importances...), nil
}

// LastRun returns the run that produced the current model.
func (p *Predictor) LastRun() (Run, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.model == nil {
		return Run{}, ErrNotTrained
	}
	return p.model.run, nil
}

// Features returns the ordered feature list of the trained model.
func (p *Predictor) Features() ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.model == nil {
		return nil, ErrNotTrained
	}
	return append([]string(nil), p.model.features...), nil
}

// probabilities returns P(turnover) per record.
func (m *trainedModel) probabilities(records []features.Record) ([]float64, error) {
	if len(records) == 0 {
		return []float64{}, nil
	}
	x, err := m.scaler.Transform(features.ZeroFill.Matrix(records, m.features))
	if err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	probs, err := m.forest.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	out := make([]float64, len(probs))
	for i, p := range probs {
		out[i] = p[1]
	}
	return out, nil
}
