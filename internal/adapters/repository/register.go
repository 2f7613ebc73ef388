package repository

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/ignite/internal/domain/model"
	"github.com/okian/ignite/pkg/metrics"
)

const defaultMaxLimit = 500

var _ Register = (*TreapRegister)(nil)

// record holds the non-key fields of a tracked employee.
// The flag and bucket come from the assessment, not the fixed-point risk.
type record struct {
	risk       riskFP
	name       string
	department string
	highRisk   bool
	category   model.RiskCategory
}

// snapshot is the aggregate view rebuilt after every write.
type snapshot struct {
	summary     Summary
	departments []DepartmentSummary
}

// TreapRegister is an in-memory Register backed by a treap with subtree
// sizes, giving O(log n) expected rank lookups and ordered top-N scans.
type TreapRegister struct {
	mu       sync.RWMutex
	root     *node
	byID     map[string]record
	maxLimit int

	snap atomic.Pointer[snapshot]
}

// NewTreapRegister constructs an empty register.
func NewTreapRegister(opts ...Option) *TreapRegister {
	r := &TreapRegister{
		byID:     make(map[string]record),
		maxLimit: defaultMaxLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.snap.Store(&snapshot{summary: emptySummary()})
	return r
}

// Replace implements Register.Replace.
func (r *TreapRegister) Replace(ctx context.Context, assessments []model.RiskAssessment) error {
	var root *node
	byID := make(map[string]record, len(assessments))
	for _, a := range assessments {
		risk := toFixedPoint(a.Risk)
		if old, ok := byID[a.EmployeeID]; ok {
			root = deleteNode(root, a.EmployeeID, old.risk)
		}
		byID[a.EmployeeID] = newRecord(risk, a)
		root = insert(root, a.EmployeeID, risk)
	}

	r.mu.Lock()
	r.root, r.byID = root, byID
	r.publish()
	r.mu.Unlock()

	metrics.UpdateRegisterRecords(len(byID))
	return nil
}

// Upsert implements Register.Upsert.
func (r *TreapRegister) Upsert(ctx context.Context, a model.RiskAssessment) (bool, error) {
	risk := toFixedPoint(a.Risk)

	r.mu.Lock()
	old, exists := r.byID[a.EmployeeID]
	if exists {
		r.root = deleteNode(r.root, a.EmployeeID, old.risk)
	}
	r.byID[a.EmployeeID] = newRecord(risk, a)
	r.root = insert(r.root, a.EmployeeID, risk)
	r.publish()
	count := len(r.byID)
	r.mu.Unlock()

	metrics.UpdateRegisterRecords(count)
	return !exists, nil
}

// Get returns the entry and rank for an employee in O(log n).
func (r *TreapRegister) Get(ctx context.Context, employeeID string) (Entry, error) {
	defer observe(time.Now())

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[employeeID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, ErrNotFound
	}
	e := entry(employeeID, rec)
	e.Rank = rankOf(r.root, employeeID, rec.risk)
	return e, nil
}

// TopN returns up to n entries, capped at the configured maximum.
func (r *TreapRegister) TopN(ctx context.Context, n int) ([]Entry, error) {
	defer observe(time.Now())

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	n = min(n, r.maxLimit)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, min(n, len(r.byID)))
	walk(r.root, func(nd *node) bool {
		e := entry(nd.id, r.byID[nd.id])
		e.Rank = len(out) + 1
		out = append(out, e)
		return len(out) < n
	})
	return out, nil
}

// Count returns the number of tracked employees.
func (r *TreapRegister) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Summary returns the totals of the last write without locking.
func (r *TreapRegister) Summary(ctx context.Context) Summary {
	s := r.snap.Load().summary
	byCat := make(map[model.RiskCategory]int, len(s.ByCategory))
	for k, v := range s.ByCategory {
		byCat[k] = v
	}
	s.ByCategory = byCat
	return s
}

// Departments returns per-department totals of the last write.
func (r *TreapRegister) Departments(ctx context.Context) []DepartmentSummary {
	return append([]DepartmentSummary(nil), r.snap.Load().departments...)
}

// publish rebuilds the aggregate snapshot and the risk gauges. Caller holds
// the write lock.
func (r *TreapRegister) publish() {
	s := emptySummary()
	depts := map[string]*DepartmentSummary{}
	sum := 0.0
	for id, rec := range r.byID {
		e := entry(id, rec)
		s.Total++
		s.ByCategory[e.Category]++
		sum += e.Risk

		d, ok := depts[rec.department]
		if !ok {
			d = &DepartmentSummary{Department: rec.department}
			depts[rec.department] = d
		}
		d.Employees++
		d.MeanRisk += e.Risk
		if e.HighRisk {
			s.HighRisk++
			d.HighRisk++
		}
	}
	if s.Total > 0 {
		s.MeanRisk = sum / float64(s.Total)
	}

	out := make([]DepartmentSummary, 0, len(depts))
	for _, d := range depts {
		d.MeanRisk /= float64(d.Employees)
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanRisk != out[j].MeanRisk {
			return out[i].MeanRisk > out[j].MeanRisk
		}
		return out[i].Department < out[j].Department
	})

	r.snap.Store(&snapshot{summary: s, departments: out})

	metrics.UpdateHighRiskEmployees(s.HighRisk)
	for _, c := range model.Categories {
		metrics.UpdateRiskCategory(string(c), s.ByCategory[c])
	}
}

func emptySummary() Summary {
	s := Summary{ByCategory: make(map[model.RiskCategory]int, len(model.Categories))}
	for _, c := range model.Categories {
		s.ByCategory[c] = 0
	}
	return s
}

func newRecord(risk riskFP, a model.RiskAssessment) record {
	return record{
		risk:       risk,
		name:       a.Name,
		department: a.Department,
		highRisk:   a.HighRisk,
		category:   a.Category,
	}
}

func entry(id string, rec record) Entry {
	return Entry{
		EmployeeID: id,
		Name:       rec.name,
		Department: rec.department,
		Risk:       toFloat(rec.risk),
		HighRisk:   rec.highRisk,
		Category:   rec.category,
	}
}

func observe(start time.Time) {
	metrics.RecordRegisterQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}
