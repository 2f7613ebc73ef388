package features

// Column names shared by the builder, the models and the explainer.
const (
	ColTenureYears              = "tenure_years"
	ColJobSatisfaction          = "job_satisfaction"
	ColWorkLifeBalance          = "work_life_balance"
	ColCareerDevelopment        = "career_development"
	ColManagementSupport        = "management_support"
	ColCompanyCulture           = "company_culture"
	ColCompensationSatisfaction = "compensation_satisfaction"
	ColEngagementScore          = "engagement_score"
	ColSatisfactionScore        = "satisfaction_score"
	ColSentimentScore           = "sentiment_score"
	ColENPSScore                = "enps_score"
	ColDepartmentEncoded        = "department_encoded"
	ColWorkArrangementEncoded   = "work_arrangement_encoded"
	ColLevelEncoded             = "level_encoded"
	ColLowSatisfaction          = "low_satisfaction"
	ColPoorWorkLifeBalance      = "poor_work_life_balance"
	ColLimitedCareerDev         = "limited_career_dev"
	ColWeakManagement           = "weak_management"
)

// Categorical source columns.
const (
	CatDepartment      = "department"
	CatWorkArrangement = "work_arrangement"
	CatLevel           = "level"
)

// NormalizedSuffix is appended to a survey dimension for its value / 10.
const NormalizedSuffix = "_normalized"

// LowScoreCeiling is the highest raw score that still raises an indicator.
const LowScoreCeiling = 5

// SurveyDimensions are the six Likert questions, in survey order.
var SurveyDimensions = []string{ //nolint:gochecknoglobals // fixed column list
	ColJobSatisfaction,
	ColWorkLifeBalance,
	ColCareerDevelopment,
	ColManagementSupport,
	ColCompanyCulture,
	ColCompensationSatisfaction,
}

// CategoricalColumns are encoded to integer codes.
var CategoricalColumns = []string{CatDepartment, CatWorkArrangement, CatLevel} //nolint:gochecknoglobals // fixed column list

// ClassifierColumns are the turnover model candidates. Order is part of the
// trained model and must not change.
var ClassifierColumns = []string{ //nolint:gochecknoglobals // fixed column list
	ColTenureYears,
	ColJobSatisfaction,
	ColWorkLifeBalance,
	ColCareerDevelopment,
	ColManagementSupport,
	ColCompanyCulture,
	ColCompensationSatisfaction,
	ColEngagementScore,
	ColSatisfactionScore,
	ColSentimentScore,
	ColDepartmentEncoded,
	ColWorkArrangementEncoded,
	ColLevelEncoded,
	ColLowSatisfaction,
	ColPoorWorkLifeBalance,
	ColLimitedCareerDev,
	ColWeakManagement,
}

// EngagementColumns are the regressor predictors. career_development is not
// one of them.
var EngagementColumns = []string{ //nolint:gochecknoglobals // fixed column list
	ColTenureYears,
	ColJobSatisfaction,
	ColWorkLifeBalance,
	ColManagementSupport,
	ColCompanyCulture,
	ColCompensationSatisfaction,
}
