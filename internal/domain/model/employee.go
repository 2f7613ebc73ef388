// Package model contains domain models passed between layers.
package model

import (
	"math"
	"time"
)

// DaysPerYear converts tenure days into years.
const DaysPerYear = 365.25

// EmployeeRecord is one employee as produced by the data source. Immutable.
type EmployeeRecord struct {
	EmployeeID      string    `json:"employee_id" validate:"required"`
	Name            string    `json:"name"`
	Department      string    `json:"department"`
	Role            string    `json:"role"`
	HireDate        time.Time `json:"hire_date"`
	WorkArrangement string    `json:"work_arrangement"` // hybrid, remote, in-office
	Level           string    `json:"level"`            // junior, mid, senior, leadership
	ManagerID       string    `json:"manager_id,omitempty"`
}

// TenureDays returns whole days between the hire date and asOf. Hire dates
// in the future count as zero.
func (e EmployeeRecord) TenureDays(asOf time.Time) int {
	if e.HireDate.IsZero() || asOf.Before(e.HireDate) {
		return 0
	}
	return int(math.Floor(asOf.Sub(e.HireDate).Hours() / 24))
}

// SurveyRecord holds one employee's survey answers on a 1-10 scale.
// Nil means the question was not answered.
type SurveyRecord struct {
	ResponseID               string    `json:"response_id"`
	EmployeeID               string    `json:"employee_id" validate:"required"`
	SurveyType               string    `json:"survey_type"`
	JobSatisfaction          *float64  `json:"job_satisfaction,omitempty" validate:"omitempty,min=1,max=10"`
	WorkLifeBalance          *float64  `json:"work_life_balance,omitempty" validate:"omitempty,min=1,max=10"`
	CareerDevelopment        *float64  `json:"career_development,omitempty" validate:"omitempty,min=1,max=10"`
	ManagementSupport        *float64  `json:"management_support,omitempty" validate:"omitempty,min=1,max=10"`
	CompanyCulture           *float64  `json:"company_culture,omitempty" validate:"omitempty,min=1,max=10"`
	CompensationSatisfaction *float64  `json:"compensation_satisfaction,omitempty" validate:"omitempty,min=1,max=10"`
	SentimentScore           *float64  `json:"sentiment_score,omitempty" validate:"omitempty,min=0,max=1"`
	Timestamp                time.Time `json:"timestamp"`
}

// MetricsRecord holds per-employee engagement metrics.
type MetricsRecord struct {
	EmployeeID        string    `json:"employee_id" validate:"required"`
	ENPSScore         *float64  `json:"enps_score,omitempty" validate:"omitempty,min=-100,max=100"`
	EngagementScore   *float64  `json:"engagement_score,omitempty" validate:"omitempty,min=1,max=10"`
	SatisfactionScore *float64  `json:"satisfaction_score,omitempty" validate:"omitempty,min=1,max=10"`
	TurnoverRisk      *float64  `json:"turnover_risk,omitempty" validate:"omitempty,min=0,max=1"`
	Department        string    `json:"department"`
	LastUpdated       time.Time `json:"last_updated"`
}

// Dataset bundles the three input tables.
type Dataset struct {
	Employees []EmployeeRecord
	Surveys   []SurveyRecord
	Metrics   []MetricsRecord
}

// Float returns a pointer to v, for building optional fields.
func Float(v float64) *float64 { return &v }
