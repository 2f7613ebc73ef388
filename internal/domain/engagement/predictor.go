// Package engagement trains a regressor for the engagement score from survey
// answers and tenure. Only training metrics are exposed.
package engagement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/ignite/internal/domain/features"
	"github.com/okian/ignite/internal/domain/ml"
	"github.com/okian/ignite/pkg/logger"
	"github.com/okian/ignite/pkg/metrics"
)

// Default predictor configuration constants.
const (
	defaultEstimators   = 100
	defaultLearningRate = 0.1
	defaultMaxDepth     = 3
	defaultSeed         = 42
	defaultTestFraction = 0.2

	metricsModel = "engagement"
)

// TrainMetrics summarizes the fit quality of one training run.
type TrainMetrics struct {
	TrainR2      float64 `json:"train_r2" yaml:"train_r2"`
	TestR2       float64 `json:"test_r2" yaml:"test_r2"`
	TrainRMSE    float64 `json:"train_rmse" yaml:"train_rmse"`
	TestRMSE     float64 `json:"test_rmse" yaml:"test_rmse"`
	FeaturesUsed int     `json:"features_used" yaml:"features_used"`
	TrainRows    int     `json:"train_rows" yaml:"train_rows"`
	TestRows     int     `json:"test_rows" yaml:"test_rows"`
}

// Predictor fits a gradient boosted regressor. Missing predictors and a
// missing target are filled with their column mean over all records before
// the split.
type Predictor struct {
	mu           sync.Mutex
	estimators   int
	learningRate float64
	maxDepth     int
	seed         int64
	testFraction float64
	log          logger.Logger

	features []string
	scaler   ml.StandardScaler
	model    *ml.GradientBoostingRegressor
}

// NewPredictor creates an untrained predictor.
func NewPredictor(opts ...Option) *Predictor {
	p := &Predictor{
		estimators:   defaultEstimators,
		learningRate: defaultLearningRate,
		maxDepth:     defaultMaxDepth,
		seed:         defaultSeed,
		testFraction: defaultTestFraction,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.Get().Named("engagement")
	}
	return p
}

// Trained reports whether Train has succeeded.
func (p *Predictor) Trained() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.model != nil
}

// Features returns the predictors used by the last Train.
func (p *Predictor) Features() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.features...)
}

// Train fits the regressor on records and reports fit quality on both splits.
func (p *Predictor) Train(ctx context.Context, records []features.Record) (TrainMetrics, error) {
	start := time.Now()
	tm, err := p.train(records)
	if err != nil {
		metrics.RecordTrainingError(metricsModel)
		metrics.RecordErrorByComponent(metricsModel, "train")
		p.log.Error(ctx, "engagement training failed", logger.Error(err), logger.Int("records", len(records)))
		return TrainMetrics{}, err
	}
	took := time.Since(start)

	metrics.RecordTrainingRun(metricsModel, took)
	metrics.UpdateModelScore(metricsModel, "r2", "train", tm.TrainR2)
	metrics.UpdateModelScore(metricsModel, "r2", "test", tm.TestR2)
	metrics.UpdateModelScore(metricsModel, "rmse", "train", tm.TrainRMSE)
	metrics.UpdateModelScore(metricsModel, "rmse", "test", tm.TestRMSE)
	metrics.UpdateFeaturesUsed(metricsModel, tm.FeaturesUsed)
	p.log.Info(ctx, "engagement model trained",
		logger.Float64("train_r2", tm.TrainR2),
		logger.Float64("test_r2", tm.TestR2),
		logger.Float64("train_rmse", tm.TrainRMSE),
		logger.Float64("test_rmse", tm.TestRMSE),
		logger.Int("features", tm.FeaturesUsed),
		logger.Duration("took", took),
	)
	return tm, nil
}

func (p *Predictor) train(records []features.Record) (TrainMetrics, error) {
	if len(records) == 0 {
		return TrainMetrics{}, ErrEmptyDataset
	}
	cols := features.PresentColumns(records, features.EngagementColumns)
	x := features.MeanFill.Matrix(records, cols)
	y := features.MeanFill.Column(records, features.ColEngagementScore)

	trainIdx, testIdx, err := ml.TrainTestSplit(len(records), p.testFraction, p.seed)
	if err != nil {
		return TrainMetrics{}, fmt.Errorf("split: %w", err)
	}

	var scaler ml.StandardScaler
	xTrain, err := scaler.FitTransform(ml.Rows(x, trainIdx))
	if err != nil {
		return TrainMetrics{}, fmt.Errorf("scale: %w", err)
	}
	xTest, err := scaler.Transform(ml.Rows(x, testIdx))
	if err != nil {
		return TrainMetrics{}, fmt.Errorf("scale: %w", err)
	}
	yTrain, yTest := ml.Take(y, trainIdx), ml.Take(y, testIdx)

	reg := ml.NewGradientBoostingRegressor(
		ml.WithEstimators(p.estimators),
		ml.WithLearningRate(p.learningRate),
		ml.WithBoostingMaxDepth(p.maxDepth),
		ml.WithBoostingSeed(p.seed),
	)
	if err := reg.Fit(xTrain, yTrain); err != nil {
		return TrainMetrics{}, fmt.Errorf("fit regressor: %w", err)
	}
	trainPred, err := reg.Predict(xTrain)
	if err != nil {
		return TrainMetrics{}, err
	}
	testPred, err := reg.Predict(xTest)
	if err != nil {
		return TrainMetrics{}, err
	}

	p.mu.Lock()
	p.features, p.scaler, p.model = cols, scaler, reg
	p.mu.Unlock()

	return TrainMetrics{
		TrainR2:      ml.R2(yTrain, trainPred),
		TestR2:       ml.R2(yTest, testPred),
		TrainRMSE:    ml.RMSE(yTrain, trainPred),
		TestRMSE:     ml.RMSE(yTest, testPred),
		FeaturesUsed: len(cols),
		TrainRows:    len(trainIdx),
		TestRows:     len(testIdx),
	}, nil
}
