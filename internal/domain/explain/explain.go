// Package explain turns one employee's feature record into readable risk factors.
package explain

import "github.com/okian/ignite/internal/domain/features"

// Factor messages.
const (
	LowJobSatisfaction    = "Low job satisfaction"
	PoorWorkLifeBalance   = "Poor work-life balance"
	WeakManagementSupport = "Weak management support"
	LimitedCareerDev      = "Limited career development"
	NewEmployee           = "New employee (< 6 months)"
	LowEngagement         = "Low engagement score"
)

const (
	newEmployeeYears       = 0.5
	lowEngagementThreshold = 6
)

type rule struct {
	column  string
	missing float64 // used when the record has no value, chosen so it never fires
	fires   func(v float64) bool
	message string
}

func atMost(limit float64) func(float64) bool { return func(v float64) bool { return v <= limit } }
func below(limit float64) func(float64) bool  { return func(v float64) bool { return v < limit } }

var rules = []rule{ //nolint:gochecknoglobals // fixed rule table
	{features.ColJobSatisfaction, 10, atMost(features.LowScoreCeiling), LowJobSatisfaction},
	{features.ColWorkLifeBalance, 10, atMost(features.LowScoreCeiling), PoorWorkLifeBalance},
	{features.ColManagementSupport, 10, atMost(features.LowScoreCeiling), WeakManagementSupport},
	{features.ColCareerDevelopment, 10, atMost(features.LowScoreCeiling), LimitedCareerDev},
	{features.ColTenureYears, 0, below(newEmployeeYears), NewEmployee},
	{features.ColEngagementScore, 10, below(lowEngagementThreshold), LowEngagement},
}

// Factors lists the risk factors present in r, in a fixed order. Missing
// survey and engagement values never produce a factor.
func Factors(r features.Record) []string {
	out := []string{}
	for _, ru := range rules {
		if ru.fires(r.ValueOr(ru.column, ru.missing)) {
			out = append(out, ru.message)
		}
	}
	return out
}
