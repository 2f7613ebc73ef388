package features

// Label is the synthetic training target attached by the label synthesizer.
type Label struct {
	WillTurnover        int     `json:"will_turnover"`
	TurnoverProbability float64 `json:"turnover_probability"`
}

// Record is one employee's joined and derived feature row. Survey and
// metrics fields are nil when the source row or value was missing.
type Record struct {
	EmployeeID      string `json:"employee_id"`
	Name            string `json:"name"`
	Department      string `json:"department"`
	Role            string `json:"role"`
	WorkArrangement string `json:"work_arrangement"`
	Level           string `json:"level"`

	TenureDays  int     `json:"tenure_days"`
	TenureYears float64 `json:"tenure_years"`

	JobSatisfaction          *float64 `json:"job_satisfaction,omitempty"`
	WorkLifeBalance          *float64 `json:"work_life_balance,omitempty"`
	CareerDevelopment        *float64 `json:"career_development,omitempty"`
	ManagementSupport        *float64 `json:"management_support,omitempty"`
	CompanyCulture           *float64 `json:"company_culture,omitempty"`
	CompensationSatisfaction *float64 `json:"compensation_satisfaction,omitempty"`
	SentimentScore           *float64 `json:"sentiment_score,omitempty"`

	EngagementScore   *float64 `json:"engagement_score,omitempty"`
	SatisfactionScore *float64 `json:"satisfaction_score,omitempty"`
	ENPSScore         *float64 `json:"enps_score,omitempty"`

	// Normalized holds <dimension>_normalized for each answered dimension.
	Normalized map[string]float64 `json:"normalized,omitempty"`

	LowSatisfaction     int `json:"low_satisfaction"`
	PoorWorkLifeBalance int `json:"poor_work_life_balance"`
	LimitedCareerDev    int `json:"limited_career_dev"`
	WeakManagement      int `json:"weak_management"`

	DepartmentCode      int `json:"department_encoded"`
	WorkArrangementCode int `json:"work_arrangement_encoded"`
	LevelCode           int `json:"level_encoded"`

	Label *Label `json:"label,omitempty"`
}

// Value returns the named column, or nil if the record has no value for it.
func (r Record) Value(col string) *float64 {
	switch col {
	case ColTenureYears:
		return ptr(r.TenureYears)
	case ColJobSatisfaction:
		return r.JobSatisfaction
	case ColWorkLifeBalance:
		return r.WorkLifeBalance
	case ColCareerDevelopment:
		return r.CareerDevelopment
	case ColManagementSupport:
		return r.ManagementSupport
	case ColCompanyCulture:
		return r.CompanyCulture
	case ColCompensationSatisfaction:
		return r.CompensationSatisfaction
	case ColSentimentScore:
		return r.SentimentScore
	case ColEngagementScore:
		return r.EngagementScore
	case ColSatisfactionScore:
		return r.SatisfactionScore
	case ColENPSScore:
		return r.ENPSScore
	case ColDepartmentEncoded:
		return ptr(float64(r.DepartmentCode))
	case ColWorkArrangementEncoded:
		return ptr(float64(r.WorkArrangementCode))
	case ColLevelEncoded:
		return ptr(float64(r.LevelCode))
	case ColLowSatisfaction:
		return ptr(float64(r.LowSatisfaction))
	case ColPoorWorkLifeBalance:
		return ptr(float64(r.PoorWorkLifeBalance))
	case ColLimitedCareerDev:
		return ptr(float64(r.LimitedCareerDev))
	case ColWeakManagement:
		return ptr(float64(r.WeakManagement))
	}
	if v, ok := r.Normalized[col]; ok {
		return ptr(v)
	}
	return nil
}

// ValueOr returns the named column or def when it is missing.
func (r Record) ValueOr(col string, def float64) float64 {
	if v := r.Value(col); v != nil {
		return *v
	}
	return def
}

func ptr(v float64) *float64 { return &v }

func clone(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return ptr(*p)
}
