// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and IGNITE_* environment variables on top of New().
// - Validation failures wrap ErrInvalidConfig; loader failures wrap ErrLoadConfig.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds employees.csv, surveys.csv and metrics.csv. Empty means
	// the service generates a sample population instead.
	DataDir string `koanf:"data_dir"`

	// SampleSize is the number of generated employees when DataDir is empty.
	SampleSize int `koanf:"sample_size"`

	// Seed drives every random step: sample data, label noise, split, ensembles.
	Seed int64 `koanf:"seed"`

	// TestFraction is the held-out share of rows for model evaluation.
	TestFraction float64 `koanf:"test_fraction"`

	// ForestTrees is the number of trees in the turnover classifier.
	ForestTrees int `koanf:"forest_trees"`

	// Boosting* configure the engagement regressor.
	BoostingEstimators   int     `koanf:"boosting_estimators"`
	BoostingLearningRate float64 `koanf:"boosting_learning_rate"`
	BoostingMaxDepth     int     `koanf:"boosting_max_depth"`

	// LabelNoiseStd is the standard deviation of the synthetic label noise.
	LabelNoiseStd float64 `koanf:"label_noise_std"`

	// UnknownCategoryPolicy is "reserve" (map to the unknown code) or "fail".
	UnknownCategoryPolicy string `koanf:"unknown_category_policy"`

	// MaxRiskLimit caps GET /risks?limit.
	MaxRiskLimit int `koanf:"max_risk_limit"`
}

// Unknown category policy names accepted by the config.
const (
	UnknownPolicyReserve = "reserve"
	UnknownPolicyFail    = "fail"
)

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		SampleSize:            200,
		Seed:                  42,
		TestFraction:          0.2,
		ForestTrees:           100,
		BoostingEstimators:    100,
		BoostingLearningRate:  0.1,
		BoostingMaxDepth:      3,
		LabelNoiseStd:         0.1,
		UnknownCategoryPolicy: UnknownPolicyReserve,
		MaxRiskLimit:          500,
	}
}
