package model

// PredictionRequest is the superset of fields accepted by the prediction
// service. Only fields that were supplied are sent upstream.
type PredictionRequest struct {
	UserID              string   `json:"user_id"`
	CurrentIncome       *float64 `json:"current_income,omitempty"`
	Savings             *float64 `json:"savings,omitempty"`
	RetirementAgeYears  *int     `json:"retirement_age_years,omitempty"`
	RetirementAgeMonths *int     `json:"retirement_age_months,omitempty"`
	Gender              string   `json:"gender,omitempty"`
	BirthYear           *int     `json:"birth_year,omitempty"`
	BirthMonth          *int     `json:"birth_month,omitempty"`
	TotalContributions  *float64 `json:"total_contributions,omitempty"`
	Capital             *float64 `json:"capital,omitempty"`
	Subaccount          *float64 `json:"subaccount,omitempty"`
	YearlyContributions *float64 `json:"yearly_contributions,omitempty"`
	LastZUSYear         *int     `json:"last_zus_year,omitempty"`
	StartWorkYear       *int     `json:"start_work_year,omitempty"`
	OFEMember           *bool    `json:"ofe_member,omitempty"`
	FutureIncomePercent *float64 `json:"future_income_percent,omitempty"`
}

// FormSnapshot is the point-in-time copy of the user's form values taken when
// an export or prediction is requested. A nil ExpectedPension means the
// field was left empty.
type FormSnapshot struct {
	Income              float64  `json:"current_income"`
	Savings             float64  `json:"savings"`
	ExpectedPension     *float64 `json:"expected_pension,omitempty"`
	RetirementAgeYears  int      `json:"retirement_age_years"`
	RetirementAgeMonths int      `json:"retirement_age_months"`
	IncludesSickLeave   bool     `json:"includes_sick_leave"`
	PostalCode          string   `json:"postal_code"`
}

type ExportRequest struct {
	UserID    string       `json:"user_id"`
	ProfileID string       `json:"profile_id"`
	Form      FormSnapshot `json:"form"`
}

type UsageExportRequest struct {
	Records []ReportRecord `json:"records"`
}
