package model

import "errors"

var (
	ErrInvalidHorizon     = errors.New("invalid projection horizon")
	ErrMissingProfile     = errors.New("no demographic profile selected")
	ErrRenderFailure      = errors.New("document render failed")
	ErrExportFailure      = errors.New("spreadsheet export failed")
	ErrPreconditionNotMet = errors.New("no prediction estimate in session")
	ErrSaveFailure        = errors.New("artifact save failed")
)
