package document

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"pension-report/internal/logging"
	"pension-report/internal/model"
	"pension-report/internal/report"
)

const (
	Title          = "Raport prognozy emerytury"
	metadataPrefix = "Data wygenerowania: "
	filenamePrefix = "raport_emerytura_"

	marginLeft = 14.0
	rowHeight  = 8.0
)

var columnWidths = [2]float64{90, 92}

const fontFamily = "DejaVu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldFont []byte
)

// Renderer turns a single report record into a PDF document. It holds no
// per-render state.
type Renderer struct {
	currency string
	compress bool
	logger   zerolog.Logger
}

func NewRenderer(currency string, logger zerolog.Logger) *Renderer {
	return &Renderer{
		currency: currency,
		compress: true,
		logger:   logging.Component(logger, "document"),
	}
}

func Filename(rec model.ReportRecord) string {
	date := strings.NewReplacer("/", "-", "\\", "-").Replace(rec.GeneratedDate)
	return filenamePrefix + date + ".pdf"
}

// Render builds the PDF. Any failure, including a panic inside the PDF
// library, is returned as ErrRenderFailure.
func (r *Renderer) Render(rec model.ReportRecord) (artifact *model.ReportArtifact, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error().Interface("panic", p).Msg("pdf render panicked")
			artifact = nil
			err = fmt.Errorf("%w: %v", model.ErrRenderFailure, p)
		}
	}()

	if !report.Valid(rec) {
		r.logger.Error().Str("date", rec.GeneratedDate).Msg("refusing to render malformed record")
		return nil, fmt.Errorf("%w: record has non-finite or negative values", model.ErrRenderFailure)
	}

	data, err := r.build(rec)
	if err != nil {
		r.logger.Error().Err(err).Msg("pdf render failed")
		return nil, fmt.Errorf("%w: %v", model.ErrRenderFailure, err)
	}

	return &model.ReportArtifact{
		Filename:    Filename(rec),
		ContentType: model.ContentTypePDF,
		Data:        data,
	}, nil
}

func (r *Renderer) build(rec model.ReportRecord) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCompression(r.compress)
	stamp := generatedAt(rec)
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetMargins(marginLeft, 14, marginLeft)

	pdf.AddUTF8FontFromBytes(fontFamily, "", regularFont)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", boldFont)
	pdf.SetTitle(Title, true)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "", 18)
	pdf.Text(marginLeft, 20, Title)

	pdf.SetFont(fontFamily, "", 12)
	pdf.Text(marginLeft, 30, metadataPrefix+rec.GeneratedDate+" "+rec.GeneratedTime)

	pdf.SetXY(marginLeft, 40)
	pdf.SetFont(fontFamily, "B", 11)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range Header {
		pdf.CellFormat(columnWidths[i], rowHeight, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(fontFamily, "", 11)
	pdf.SetTextColor(0, 0, 0)
	for n, row := range Table(rec, r.currency) {
		if n%2 == 1 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetX(marginLeft)
		for i, cell := range row {
			pdf.CellFormat(columnWidths[i], rowHeight, cell, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// generatedAt recovers the record's timestamp so the document metadata is
// stable across renders of the same record.
func generatedAt(rec model.ReportRecord) time.Time {
	t, err := time.Parse(report.DateLayout+" "+report.TimeLayout, rec.GeneratedDate+" "+rec.GeneratedTime)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}
