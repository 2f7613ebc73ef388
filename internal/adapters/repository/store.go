// Package repository keeps the scored population ranked by turnover risk.
package repository

import (
	"context"

	"github.com/okian/ignite/internal/domain/model"
)

// Entry is one ranked employee.
type Entry struct {
	Rank       int
	EmployeeID string
	Name       string
	Department string
	Risk       float64
	HighRisk   bool
	Category   model.RiskCategory
}

// Summary aggregates the register.
type Summary struct {
	Total      int
	HighRisk   int
	MeanRisk   float64
	ByCategory map[model.RiskCategory]int
}

// DepartmentSummary aggregates one department.
type DepartmentSummary struct {
	Department string
	Employees  int
	HighRisk   int
	MeanRisk   float64
}

// Register provides read/write access to the ranked risk state.
type Register interface {
	// Replace swaps the whole population for assessments.
	Replace(ctx context.Context, assessments []model.RiskAssessment) error
	// Upsert inserts or updates one employee. Returns true when the employee
	// was not tracked before.
	Upsert(ctx context.Context, a model.RiskAssessment) (bool, error)

	// Get returns the employee's entry and rank.
	// Returns ErrNotFound if the employee is unknown.
	Get(ctx context.Context, employeeID string) (Entry, error)

	// TopN returns the n riskiest employees, ordered by risk desc then id asc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of tracked employees.
	Count(ctx context.Context) int

	// Summary returns population totals.
	Summary(ctx context.Context) Summary

	// Departments returns per-department totals sorted by mean risk desc.
	Departments(ctx context.Context) []DepartmentSummary
}
