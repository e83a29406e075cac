package report

import (
	"math"
	"time"

	"pension-report/internal/config"
	"pension-report/internal/model"
)

const (
	DateLayout = "02.01.2006"
	TimeLayout = "15:04:05"
)

type Assembler struct {
	loc                    *time.Location
	now                    func() time.Time
	defaultExpectedPension float64
	defaultPostalCode      string
}

func NewAssembler(cfg *config.Config, now func() time.Time) *Assembler {
	if now == nil {
		now = time.Now
	}
	return &Assembler{
		loc:                    cfg.Location(),
		now:                    now,
		defaultExpectedPension: cfg.Report.DefaultExpectedPension,
		defaultPostalCode:      cfg.Report.DefaultPostalCode,
	}
}

// Assemble freezes the form, profile and latest prediction into a record.
// The estimate may be absent; its numbers then default to zero.
func (a *Assembler) Assemble(form model.FormSnapshot, profile *model.Profile, result *model.PredictionResult) (model.ReportRecord, error) {
	if profile == nil || !profile.Sex.Valid() || profile.BirthYear <= 0 {
		return model.ReportRecord{}, model.ErrMissingProfile
	}

	now := a.now().In(a.loc)

	var actual, adjusted float64
	if result.HasEstimate() {
		actual = result.Estimate.EstimatedMonthlyPension
		adjusted = result.Estimate.ReplacementRatePercent
	}

	expected := a.defaultExpectedPension
	if form.ExpectedPension != nil {
		expected = *form.ExpectedPension
	}
	postal := form.PostalCode
	if postal == "" {
		postal = a.defaultPostalCode
	}

	age := now.Year() - profile.BirthYear
	if age < 0 {
		age = 0
	}

	return model.ReportRecord{
		GeneratedDate:     now.Format(DateLayout),
		GeneratedTime:     now.Format(TimeLayout),
		ExpectedPension:   finite(expected),
		Age:               age,
		Gender:            profile.Sex,
		Income:            finite(form.Income),
		IncludesSickLeave: form.IncludesSickLeave,
		Savings:           finite(form.Savings),
		ActualPension:     finite(actual),
		AdjustedPension:   finite(adjusted),
		PostalCode:        postal,
	}, nil
}

// finite maps NaN, infinities and negatives to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Valid reports whether every numeric field of rec is finite and non-negative.
func Valid(rec model.ReportRecord) bool {
	for _, v := range []float64{rec.ExpectedPension, rec.Income, rec.Savings, rec.ActualPension, rec.AdjustedPension} {
		if finite(v) != v {
			return false
		}
	}
	return rec.Age >= 0
}
