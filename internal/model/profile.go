package model

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Polish returns the label the prediction service expects.
func (g Gender) Polish() string {
	if g == GenderMale {
		return "Mężczyzna"
	}
	return "Kobieta"
}

type Profile struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	BirthYear     int    `json:"birth_year" yaml:"birth_year"`
	BirthMonth    int    `json:"birth_month" yaml:"birth_month"`
	Sex           Gender `json:"sex" yaml:"sex"`
	Workclass     string `json:"workclass,omitempty" yaml:"workclass"`
	Education     string `json:"education,omitempty" yaml:"education"`
	MaritalStatus string `json:"marital_status,omitempty" yaml:"marital_status"`
	Occupation    string `json:"occupation,omitempty" yaml:"occupation"`
	Relationship  string `json:"relationship,omitempty" yaml:"relationship"`
	Race          string `json:"race,omitempty" yaml:"race"`
	NativeCountry string `json:"native_country,omitempty" yaml:"native_country"`
}

type InvestmentOption struct {
	Name        string `json:"name" yaml:"name"`
	Return      string `json:"return" yaml:"return"`
	Risk        string `json:"risk" yaml:"risk"`
	Description string `json:"description" yaml:"description"`
}
