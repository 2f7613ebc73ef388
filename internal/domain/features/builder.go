// Package features joins employee, survey and metrics records into one
// feature row per employee and derives the model inputs.
package features

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/ignite/internal/domain/model"
	"github.com/okian/ignite/pkg/logger"
	"github.com/okian/ignite/pkg/metrics"
)

// Builder turns raw tables into feature records. The categorical encoders are
// fitted on the first Build and reused by every later call.
type Builder struct {
	mu       sync.Mutex
	encoders map[string]*Encoder
	policy   UnknownPolicy
	now      func() time.Time
	log      logger.Logger
}

// NewBuilder creates a builder with unfitted encoders.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		policy: ReserveUnknown,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.Get().Named("features")
	}
	b.encoders = newEncoders()
	return b
}

func newEncoders() map[string]*Encoder {
	m := make(map[string]*Encoder, len(CategoricalColumns))
	for _, c := range CategoricalColumns {
		m[c] = NewEncoder(c)
	}
	return m
}

// Encoder returns the encoder for a categorical column, or nil.
func (b *Builder) Encoder(column string) *Encoder {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.encoders[column]
}

// Reset drops the fitted encoders so the next Build refits them.
func (b *Builder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.encoders = newEncoders()
}

// Build left-joins employees to their survey and metrics rows. Every distinct
// employee yields exactly one record; when an id repeats, the first employee
// row wins. When several survey or metrics rows share an employee, the most
// recent one is used.
func (b *Builder) Build(ctx context.Context, employees []model.EmployeeRecord, surveys []model.SurveyRecord, metricRows []model.MetricsRecord) ([]Record, error) {
	surveyByID, err := latestSurveys(surveys)
	if err != nil {
		return nil, err
	}
	metricsByID, err := latestMetrics(metricRows)
	if err != nil {
		return nil, err
	}

	unique := make([]model.EmployeeRecord, 0, len(employees))
	seen := make(map[string]struct{}, len(employees))
	for i, e := range employees {
		if e.EmployeeID == "" {
			return nil, fmt.Errorf("employee row %d: %w", i, ErrMissingColumn)
		}
		if _, dup := seen[e.EmployeeID]; dup {
			b.log.Debug(ctx, "duplicate employee ignored", logger.String("employee_id", e.EmployeeID))
			continue
		}
		seen[e.EmployeeID] = struct{}{}
		unique = append(unique, e)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.fitIfNeeded(ctx, unique)

	asOf := b.now()
	out := make([]Record, 0, len(unique))
	for _, e := range unique {
		r := Record{
			EmployeeID:      e.EmployeeID,
			Name:            e.Name,
			Department:      e.Department,
			Role:            e.Role,
			WorkArrangement: e.WorkArrangement,
			Level:           e.Level,
			TenureDays:      e.TenureDays(asOf),
		}
		r.TenureYears = float64(r.TenureDays) / model.DaysPerYear

		if s, ok := surveyByID[e.EmployeeID]; ok {
			r.JobSatisfaction = clone(s.JobSatisfaction)
			r.WorkLifeBalance = clone(s.WorkLifeBalance)
			r.CareerDevelopment = clone(s.CareerDevelopment)
			r.ManagementSupport = clone(s.ManagementSupport)
			r.CompanyCulture = clone(s.CompanyCulture)
			r.CompensationSatisfaction = clone(s.CompensationSatisfaction)
			r.SentimentScore = clone(s.SentimentScore)
		}
		if m, ok := metricsByID[e.EmployeeID]; ok {
			r.EngagementScore = clone(m.EngagementScore)
			r.SatisfactionScore = clone(m.SatisfactionScore)
			r.ENPSScore = clone(m.ENPSScore)
		}

		deriveScores(&r)
		if err := b.encode(ctx, &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	metrics.UpdateFeatureRows(len(out))
	b.log.Debug(ctx, "features built",
		logger.Int("employees", len(employees)),
		logger.Int("rows", len(out)),
		logger.Int("surveys", len(surveyByID)),
		logger.Int("metrics", len(metricsByID)),
	)
	return out, nil
}

// deriveScores fills the normalized dimensions and the low-score indicators.
// A missing score never raises an indicator.
func deriveScores(r *Record) {
	r.Normalized = make(map[string]float64, len(SurveyDimensions))
	for _, dim := range SurveyDimensions {
		if v := r.Value(dim); v != nil {
			r.Normalized[dim+NormalizedSuffix] = *v / 10
		}
	}
	r.LowSatisfaction = lowScore(r.JobSatisfaction)
	r.PoorWorkLifeBalance = lowScore(r.WorkLifeBalance)
	r.LimitedCareerDev = lowScore(r.CareerDevelopment)
	r.WeakManagement = lowScore(r.ManagementSupport)
}

func lowScore(v *float64) int {
	if v != nil && *v <= LowScoreCeiling {
		return 1
	}
	return 0
}

func (b *Builder) fitIfNeeded(ctx context.Context, employees []model.EmployeeRecord) {
	for _, col := range CategoricalColumns {
		enc := b.encoders[col]
		if enc.Fitted() {
			continue
		}
		values := make([]string, len(employees))
		for i, e := range employees {
			values[i] = categoryValue(e, col)
		}
		enc.Fit(values)
		b.log.Info(ctx, "category encoder fitted",
			logger.String("column", col),
			logger.Int("classes", len(enc.classes)),
			logger.String("version", enc.Version()),
		)
	}
}

func (b *Builder) encode(ctx context.Context, r *Record) error {
	targets := map[string]*int{
		CatDepartment:      &r.DepartmentCode,
		CatWorkArrangement: &r.WorkArrangementCode,
		CatLevel:           &r.LevelCode,
	}
	values := map[string]string{
		CatDepartment:      r.Department,
		CatWorkArrangement: r.WorkArrangement,
		CatLevel:           r.Level,
	}
	for _, col := range CategoricalColumns {
		code, err := b.encoders[col].Encode(values[col], b.policy)
		if err != nil {
			metrics.RecordErrorByComponent("features", "unknown_category")
			return fmt.Errorf("employee %s: %w", r.EmployeeID, err)
		}
		if code == UnknownCode {
			metrics.RecordUnknownCategory(col)
			b.log.Warn(ctx, "unseen category encoded as unknown",
				logger.String("employee_id", r.EmployeeID),
				logger.String("column", col),
				logger.String("value", values[col]),
			)
		}
		*targets[col] = code
	}
	return nil
}

func categoryValue(e model.EmployeeRecord, col string) string {
	switch col {
	case CatDepartment:
		return e.Department
	case CatWorkArrangement:
		return e.WorkArrangement
	case CatLevel:
		return e.Level
	}
	return ""
}

func latestSurveys(rows []model.SurveyRecord) (map[string]model.SurveyRecord, error) {
	out := make(map[string]model.SurveyRecord, len(rows))
	for i, s := range rows {
		if s.EmployeeID == "" {
			return nil, fmt.Errorf("survey row %d: %w", i, ErrMissingColumn)
		}
		if prev, ok := out[s.EmployeeID]; ok && s.Timestamp.Before(prev.Timestamp) {
			continue
		}
		out[s.EmployeeID] = s
	}
	return out, nil
}

func latestMetrics(rows []model.MetricsRecord) (map[string]model.MetricsRecord, error) {
	out := make(map[string]model.MetricsRecord, len(rows))
	for i, m := range rows {
		if m.EmployeeID == "" {
			return nil, fmt.Errorf("metrics row %d: %w", i, ErrMissingColumn)
		}
		if prev, ok := out[m.EmployeeID]; ok && m.LastUpdated.Before(prev.LastUpdated) {
			continue
		}
		out[m.EmployeeID] = m
	}
	return out, nil
}
