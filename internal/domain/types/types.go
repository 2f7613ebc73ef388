// Package types contains the payloads served by the read API
package types

// RiskEntry is one ranked employee.
type RiskEntry struct {
	Rank         int     `json:"rank"`
	EmployeeID   string  `json:"employee_id"`
	Name         string  `json:"name"`
	Department   string  `json:"department"`
	TurnoverRisk float64 `json:"turnover_risk"`
	HighRisk     bool    `json:"high_risk"`
	RiskCategory string  `json:"risk_category"`
}

// Factors lists the reasons behind one employee's risk
type Factors struct {
	EmployeeID  string   `json:"employee_id"`
	OverallRisk float64  `json:"overall_risk"`
	Factors     []string `json:"factors"`
}

// Importance is one model feature and its weight
type Importance struct {
	Rank       int     `json:"rank"`
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// DepartmentRisk aggregates one department
type DepartmentRisk struct {
	Department string  `json:"department"`
	Employees  int     `json:"employees"`
	HighRisk   int     `json:"high_risk"`
	MeanRisk   float64 `json:"mean_risk"`
}
