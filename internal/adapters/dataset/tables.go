package dataset

import (
	"io"

	"github.com/okian/ignite/internal/domain/model"
)

// Table headers, in the order they are written.
var (
	EmployeeHeader = []string{"employee_id", "name", "department", "role", "hire_date", "work_arrangement", "level", "manager_id"} //nolint:gochecknoglobals // fixed header
	SurveyHeader   = []string{ //nolint:gochecknoglobals // fixed header
		"response_id", "employee_id", "survey_type",
		"job_satisfaction", "work_life_balance", "career_development",
		"management_support", "company_culture", "compensation_satisfaction",
		"sentiment_score", "timestamp",
	}
	MetricsHeader = []string{"employee_id", "enps_score", "engagement_score", "satisfaction_score", "turnover_risk", "department", "last_updated"} //nolint:gochecknoglobals // fixed header
)

// ReadEmployees decodes an employees table.
func ReadEmployees(r io.Reader) ([]model.EmployeeRecord, error) {
	var out []model.EmployeeRecord
	err := readRows(r, func(rw row) error {
		hired, err := rw.time("hire_date")
		if err != nil {
			return err
		}
		e := model.EmployeeRecord{
			EmployeeID:      rw.str("employee_id"),
			Name:            rw.str("name"),
			Department:      rw.str("department"),
			Role:            rw.str("role"),
			HireDate:        hired,
			WorkArrangement: rw.str("work_arrangement"),
			Level:           rw.str("level"),
			ManagerID:       rw.str("manager_id"),
		}
		if err := rw.check(e); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

// WriteEmployees encodes an employees table.
func WriteEmployees(w io.Writer, rows []model.EmployeeRecord) error {
	return writeRows(w, EmployeeHeader, len(rows), func(i int) []string {
		e := rows[i]
		return []string{e.EmployeeID, e.Name, e.Department, e.Role, formatDate(e.HireDate), e.WorkArrangement, e.Level, e.ManagerID}
	})
}

// ReadSurveys decodes a survey table. Blank answers stay missing.
func ReadSurveys(r io.Reader) ([]model.SurveyRecord, error) {
	var out []model.SurveyRecord
	err := readRows(r, func(rw row) error {
		s := model.SurveyRecord{
			ResponseID: rw.str("response_id"),
			EmployeeID: rw.str("employee_id"),
			SurveyType: rw.str("survey_type"),
		}
		targets := []struct {
			col string
			dst **float64
		}{
			{"job_satisfaction", &s.JobSatisfaction},
			{"work_life_balance", &s.WorkLifeBalance},
			{"career_development", &s.CareerDevelopment},
			{"management_support", &s.ManagementSupport},
			{"company_culture", &s.CompanyCulture},
			{"compensation_satisfaction", &s.CompensationSatisfaction},
			{"sentiment_score", &s.SentimentScore},
		}
		for _, t := range targets {
			v, err := rw.float(t.col)
			if err != nil {
				return err
			}
			*t.dst = v
		}
		ts, err := rw.time("timestamp")
		if err != nil {
			return err
		}
		s.Timestamp = ts
		if err := rw.check(s); err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out, err
}

// WriteSurveys encodes a survey table.
func WriteSurveys(w io.Writer, rows []model.SurveyRecord) error {
	return writeRows(w, SurveyHeader, len(rows), func(i int) []string {
		s := rows[i]
		return []string{
			s.ResponseID, s.EmployeeID, s.SurveyType,
			formatFloat(s.JobSatisfaction), formatFloat(s.WorkLifeBalance), formatFloat(s.CareerDevelopment),
			formatFloat(s.ManagementSupport), formatFloat(s.CompanyCulture), formatFloat(s.CompensationSatisfaction),
			formatFloat(s.SentimentScore), formatTime(s.Timestamp),
		}
	})
}

// ReadMetrics decodes an engagement metrics table.
func ReadMetrics(r io.Reader) ([]model.MetricsRecord, error) {
	var out []model.MetricsRecord
	err := readRows(r, func(rw row) error {
		m := model.MetricsRecord{
			EmployeeID: rw.str("employee_id"),
			Department: rw.str("department"),
		}
		targets := []struct {
			col string
			dst **float64
		}{
			{"enps_score", &m.ENPSScore},
			{"engagement_score", &m.EngagementScore},
			{"satisfaction_score", &m.SatisfactionScore},
			{"turnover_risk", &m.TurnoverRisk},
		}
		for _, t := range targets {
			v, err := rw.float(t.col)
			if err != nil {
				return err
			}
			*t.dst = v
		}
		updated, err := rw.time("last_updated")
		if err != nil {
			return err
		}
		m.LastUpdated = updated
		if err := rw.check(m); err != nil {
			return err
		}
		out = append(out, m)
		return nil
	})
	return out, err
}

// WriteMetrics encodes an engagement metrics table.
func WriteMetrics(w io.Writer, rows []model.MetricsRecord) error {
	return writeRows(w, MetricsHeader, len(rows), func(i int) []string {
		m := rows[i]
		return []string{
			m.EmployeeID, formatFloat(m.ENPSScore), formatFloat(m.EngagementScore),
			formatFloat(m.SatisfactionScore), formatFloat(m.TurnoverRisk), m.Department, formatTime(m.LastUpdated),
		}
	})
}
