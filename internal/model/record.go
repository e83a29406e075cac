package model

// ReportRecord is the frozen snapshot shared by the PDF and XLSX exporters.
// Field order is significant: the spreadsheet columns follow it.
type ReportRecord struct {
	GeneratedDate     string  `json:"generatedDate"`
	GeneratedTime     string  `json:"generatedTime"`
	ExpectedPension   float64 `json:"expectedPension"`
	Age               int     `json:"age"`
	Gender            Gender  `json:"gender"`
	Income            float64 `json:"income"`
	IncludesSickLeave bool    `json:"includesSickLeave"`
	Savings           float64 `json:"savings"`
	ActualPension     float64 `json:"actualPension"`
	AdjustedPension   float64 `json:"adjustedPension"`
	PostalCode        string  `json:"postalCode"`
}

// ReportRecordFields lists the column names in declaration order.
var ReportRecordFields = []string{
	"generatedDate",
	"generatedTime",
	"expectedPension",
	"age",
	"gender",
	"income",
	"includesSickLeave",
	"savings",
	"actualPension",
	"adjustedPension",
	"postalCode",
}

// Values returns the record's fields in declaration order.
func (r ReportRecord) Values() []interface{} {
	return []interface{}{
		r.GeneratedDate,
		r.GeneratedTime,
		r.ExpectedPension,
		r.Age,
		string(r.Gender),
		r.Income,
		r.IncludesSickLeave,
		r.Savings,
		r.ActualPension,
		r.AdjustedPension,
		r.PostalCode,
	}
}

type ReportArtifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
