package model

type PredictionEstimate struct {
	ProjectedCapital        float64 `json:"projected_capital"`
	EstimatedMonthlyPension float64 `json:"estimated_monthly_pension"`
	ReplacementRatePercent  float64 `json:"replacement_rate_percent"`
	YearsUntilRetirement    *int    `json:"years_until_retirement"`
	Advice                  string  `json:"llm_analysis,omitempty"`
}

// PredictionResult holds either an estimate or the description of why the
// upstream call failed. It is never both.
type PredictionResult struct {
	Estimate *PredictionEstimate `json:"estimate,omitempty"`
	Error    string              `json:"error,omitempty"`
}

func (r *PredictionResult) HasEstimate() bool {
	return r != nil && r.Estimate != nil && r.Error == ""
}

type ProjectionPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}
