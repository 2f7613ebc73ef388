package model

// Risk thresholds. A probability above HighRiskThreshold is high risk.
const (
	LowRiskCeiling    = 0.3
	HighRiskThreshold = 0.6
)

// RiskCategory buckets a turnover probability.
type RiskCategory string

// Risk categories.
const (
	RiskLow    RiskCategory = "Low"
	RiskMedium RiskCategory = "Medium"
	RiskHigh   RiskCategory = "High"
)

// Categories lists the buckets from lowest to highest.
var Categories = []RiskCategory{RiskLow, RiskMedium, RiskHigh}

// CategorizeRisk maps p to Low (<= 0.3), Medium (<= 0.6) or High.
func CategorizeRisk(p float64) RiskCategory {
	switch {
	case p <= LowRiskCeiling:
		return RiskLow
	case p <= HighRiskThreshold:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// RiskAssessment is the model's verdict for one employee.
type RiskAssessment struct {
	EmployeeID string       `json:"employee_id"`
	Name       string       `json:"name"`
	Department string       `json:"department"`
	Risk       float64      `json:"turnover_risk"`
	HighRisk   bool         `json:"high_risk"`
	Category   RiskCategory `json:"risk_category"`
}

// NewRiskAssessment derives the flag and bucket from p.
func NewRiskAssessment(employeeID, name, department string, p float64) RiskAssessment {
	return RiskAssessment{
		EmployeeID: employeeID,
		Name:       name,
		Department: department,
		Risk:       p,
		HighRisk:   p > HighRiskThreshold,
		Category:   CategorizeRisk(p),
	}
}
