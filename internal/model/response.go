package model

type ExportMetadata struct {
	ExportID          string `json:"export_id"`
	ExportStartedAt   string `json:"export_started_at"`
	ExportCompletedAt string `json:"export_completed_at"`
	ExportDurationMs  int64  `json:"export_duration_ms"`
	ExportOutcome     string `json:"export_outcome"`
}

type ExportResponse struct {
	Metadata     ExportMetadata `json:"export_metadata"`
	Filename     string         `json:"filename,omitempty"`
	Notification Notification   `json:"notification"`
	Warnings     []Notification `json:"warnings,omitempty"`
}

type PredictionResponse struct {
	Result     PredictionResult  `json:"result"`
	Summary    EstimateSummary   `json:"summary"`
	Projection []ProjectionPoint `json:"projection"`
}

// EstimateSummary is the display form of a prediction result. Missing values
// render as a dash.
type EstimateSummary struct {
	ProjectedCapital        string `json:"projected_capital"`
	EstimatedMonthlyPension string `json:"estimated_monthly_pension"`
	ReplacementRatePercent  string `json:"replacement_rate_percent"`
	YearsUntilRetirement    string `json:"years_until_retirement"`
	Error                   string `json:"error,omitempty"`
}

type CatalogResponse struct {
	Profiles          []Profile          `json:"profiles"`
	InvestmentOptions []InvestmentOption `json:"investment_options"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
