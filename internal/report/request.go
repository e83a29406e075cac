package report

import "pension-report/internal/model"

// Shares of the savings balance reported as each ZUS account component, and
// the contribution rate applied to yearly income.
const (
	contributionsShare = 0.6
	capitalShare       = 0.3
	subaccountShare    = 0.1
	contributionRate   = 0.2
)

// BuildPredictionRequest derives the upstream request from a profile and the
// current form.
func BuildPredictionRequest(profile *model.Profile, form model.FormSnapshot) (*model.PredictionRequest, error) {
	if profile == nil || !profile.Sex.Valid() {
		return nil, model.ErrMissingProfile
	}

	income := form.Income
	savings := form.Savings
	retYears := form.RetirementAgeYears
	retMonths := form.RetirementAgeMonths
	birthYear := profile.BirthYear
	birthMonth := profile.BirthMonth
	total := savings * contributionsShare
	capital := savings * capitalShare
	sub := savings * subaccountShare
	yearly := income * 12 * contributionRate

	return &model.PredictionRequest{
		UserID:              profile.ID,
		CurrentIncome:       &income,
		Savings:             &savings,
		RetirementAgeYears:  &retYears,
		RetirementAgeMonths: &retMonths,
		Gender:              profile.Sex.Polish(),
		BirthYear:           &birthYear,
		BirthMonth:          &birthMonth,
		TotalContributions:  &total,
		Capital:             &capital,
		Subaccount:          &sub,
		YearlyContributions: &yearly,
	}, nil
}
