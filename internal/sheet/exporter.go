package sheet

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"pension-report/internal/logging"
	"pension-report/internal/model"
)

const (
	SheetName      = "Raport Użycia"
	filenamePrefix = "raport_uzycia_"
)

// Exporter writes batches of report records into a single-sheet workbook.
type Exporter struct {
	logger zerolog.Logger
}

func NewExporter(logger zerolog.Logger) *Exporter {
	return &Exporter{logger: logging.Component(logger, "sheet")}
}

// Filename stamps the UTC calendar date of now.
func Filename(now time.Time) string {
	return filenamePrefix + now.UTC().Format("2006-01-02") + ".xlsx"
}

// Export writes one header row and one row per record. An empty batch is a
// header-only sheet.
func (e *Exporter) Export(records []model.ReportRecord, now time.Time) (artifact *model.ReportArtifact, err error) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Error().Interface("panic", p).Msg("xlsx export panicked")
			artifact = nil
			err = fmt.Errorf("%w: %v", model.ErrExportFailure, p)
		}
	}()

	data, err := e.build(records)
	if err != nil {
		e.logger.Error().Err(err).Int("records", len(records)).Msg("xlsx export failed")
		return nil, fmt.Errorf("%w: %v", model.ErrExportFailure, err)
	}

	return &model.ReportArtifact{
		Filename:    Filename(now),
		ContentType: model.ContentTypeXLSX,
		Data:        data,
	}, nil
}

func (e *Exporter) build(records []model.ReportRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(model.ReportRecordFields))
	for i, name := range model.ReportRecordFields {
		header[i] = name
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := rec.Values()
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
