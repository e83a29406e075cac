package document

import (
	"strconv"

	"github.com/shopspring/decimal"

	"pension-report/internal/model"
)

var Header = []string{"Parametr", "Wartość"}

// Row labels, in the order they appear in the report.
const (
	LabelExpectedPension = "Oczekiwana emerytura"
	LabelAge             = "Wiek"
	LabelGender          = "Płeć"
	LabelIncome          = "Wynagrodzenie"
	LabelSickLeave       = "Uwzględniał okresy choroby"
	LabelSavings         = "Środki na koncie i Subkoncie"
	LabelActualPension   = "Emerytura rzeczywista"
	LabelAdjustedPension = "Emerytura urealniona"
	LabelPostalCode      = "Kod pocztowy"
)

const (
	Yes = "Tak"
	No  = "Nie"
)

// Table builds the two-column parameter table for rec.
func Table(rec model.ReportRecord, currency string) [][2]string {
	money := func(v float64) string {
		return decimal.NewFromFloat(v).String() + " " + currency
	}
	sick := No
	if rec.IncludesSickLeave {
		sick = Yes
	}

	return [][2]string{
		{LabelExpectedPension, money(rec.ExpectedPension)},
		{LabelAge, strconv.Itoa(rec.Age)},
		{LabelGender, string(rec.Gender)},
		{LabelIncome, money(rec.Income)},
		{LabelSickLeave, sick},
		{LabelSavings, money(rec.Savings)},
		{LabelActualPension, money(rec.ActualPension)},
		{LabelAdjustedPension, money(rec.AdjustedPension)},
		{LabelPostalCode, rec.PostalCode},
	}
}
