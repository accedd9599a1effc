package model

// Regression is an OLS fit over (index, value) pairs.
type Regression struct {
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	Fitted    []float64 `json:"fitted"`
}

// CorrelationResult relates one sub-metric to the overall score.
type CorrelationResult struct {
	Metric        Metric  `json:"metric"`
	R             float64 `json:"r"`
	R2            float64 `json:"r2"`
	N             int     `json:"n"`
	Confidence    float64 `json:"confidence"`
	Avg           float64 `json:"avg"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Weight        float64 `json:"weight"`
	SubScore      float64 `json:"subScore"`
	PotentialGain float64 `json:"potentialGain"`
	Rating        string  `json:"rating"`
}

// CorrelationReport lists results by potential gain and names the metrics
// that had too few paired samples.
type CorrelationReport struct {
	Outlet       string              `json:"outlet"`
	Results      []CorrelationResult `json:"results"`
	Insufficient []Metric            `json:"insufficient"`
}

// TargetStep is the change one sub-metric needs in a target plan.
type TargetStep struct {
	Metric          Metric  `json:"metric"`
	CurrentValue    float64 `json:"currentValue"`
	TargetValue     float64 `json:"targetValue"`
	CurrentSubScore float64 `json:"currentSubScore"`
	TargetSubScore  float64 `json:"targetSubScore"`
	WeightedGain    float64 `json:"weightedGain"`
	GoodThreshold   float64 `json:"goodThreshold"`
	MeetsGood       bool    `json:"meetsGood"`
}

// TargetPlan is the greedy allocation of score points across sub-metrics.
type TargetPlan struct {
	CurrentScore    float64      `json:"currentScore"`
	TargetScore     float64      `json:"targetScore"`
	Gap             float64      `json:"gap"`
	AlreadyAchieved bool         `json:"alreadyAchieved"`
	Feasible        bool         `json:"feasible"`
	MaxAchievable   float64      `json:"maxAchievable"`
	Steps           []TargetStep `json:"steps"`
}
