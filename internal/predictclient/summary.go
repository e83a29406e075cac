package predictclient

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"pension-report/internal/model"
)

const Placeholder = "—"

var printer = message.NewPrinter(language.Polish)

// Summary formats a prediction result for display in the Polish locale.
// Error results and absent estimates show placeholders only.
func Summary(result *model.PredictionResult) model.EstimateSummary {
	s := model.EstimateSummary{
		ProjectedCapital:        Placeholder,
		EstimatedMonthlyPension: Placeholder,
		ReplacementRatePercent:  Placeholder,
		YearsUntilRetirement:    Placeholder,
	}
	if result == nil {
		return s
	}
	if !result.HasEstimate() {
		s.Error = result.Error
		return s
	}

	est := result.Estimate
	s.ProjectedCapital = printer.Sprint(number.Decimal(est.ProjectedCapital, number.MaxFractionDigits(2)))
	s.EstimatedMonthlyPension = printer.Sprint(number.Decimal(est.EstimatedMonthlyPension, number.MaxFractionDigits(2)))
	s.ReplacementRatePercent = printer.Sprint(number.Decimal(est.ReplacementRatePercent, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	if est.YearsUntilRetirement != nil {
		s.YearsUntilRetirement = strconv.Itoa(*est.YearsUntilRetirement)
	}
	return s
}
