package export

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"pension-report/internal/logging"
	"pension-report/internal/model"
)

type Renderer interface {
	Render(rec model.ReportRecord) (*model.ReportArtifact, error)
}

type SheetExporter interface {
	Export(records []model.ReportRecord, now time.Time) (*model.ReportArtifact, error)
}

type Assembler interface {
	Assemble(form model.FormSnapshot, profile *model.Profile, result *model.PredictionResult) (model.ReportRecord, error)
}

// Saver persists a finished artifact: an HTTP response, a file, a test buffer.
type Saver interface {
	Save(artifact *model.ReportArtifact) error
}

type Sessions interface {
	Get(userID string) (*model.PredictionResult, bool)
}

type Profiles interface {
	Get(id string) (*model.Profile, bool)
}

type UsageLog interface {
	Append(rec model.ReportRecord) (string, error)
	List() ([]model.ReportRecord, error)
}

// Outcome is what an export reports back to its caller. Err is nil on
// success; otherwise it wraps one of the model sentinel errors.
type Outcome struct {
	Metadata     model.ExportMetadata
	Filename     string
	Notification model.Notification
	Warnings     []model.Notification
	Err          error
}

func (o Outcome) Response() model.ExportResponse {
	return model.ExportResponse{
		Metadata:     o.Metadata,
		Filename:     o.Filename,
		Notification: o.Notification,
		Warnings:     o.Warnings,
	}
}

// User-visible messages.
const (
	msgNoEstimate     = "Najpierw oblicz prognozę, aby pobrać raport!"
	msgNoProfile      = "Wybierz profil, aby wygenerować raport."
	msgPDFFailed      = "Nie udało się wygenerować raportu PDF."
	msgXLSXFailed     = "Nie udało się pobrać raportu XLSX."
	msgSaveFailed     = "Nie udało się zapisać raportu."
	msgUsageLogFailed = "Raport nie został dodany do rejestru użycia."
	msgExported       = "Raport został wygenerowany."
)

type Dispatcher struct {
	sessions  Sessions
	profiles  Profiles
	assembler Assembler
	renderer  Renderer
	sheets    SheetExporter
	usage     UsageLog
	now       func() time.Time
	logger    zerolog.Logger
}

type Dependencies struct {
	Sessions  Sessions
	Profiles  Profiles
	Assembler Assembler
	Renderer  Renderer
	Sheets    SheetExporter
	Usage     UsageLog
	Now       func() time.Time
}

func NewDispatcher(deps Dependencies, logger zerolog.Logger) *Dispatcher {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		sessions:  deps.Sessions,
		profiles:  deps.Profiles,
		assembler: deps.Assembler,
		renderer:  deps.Renderer,
		sheets:    deps.Sheets,
		usage:     deps.Usage,
		now:       now,
		logger:    logging.Component(logger, "export"),
	}
}

// ExportDocument renders the PDF report for userID. The renderer is only
// invoked once the user's session holds an estimate.
func (d *Dispatcher) ExportDocument(userID, profileID string, form model.FormSnapshot, saver Saver) Outcome {
	run := d.start()
	log := d.logger.With().Str("export_id", run.id).Str("user_id", userID).Logger()

	result, ok := d.sessions.Get(userID)
	if !ok || !result.HasEstimate() {
		log.Info().Msg("document export refused: no estimate")
		return run.fail(model.ErrPreconditionNotMet, model.CodePreconditionNotMet, msgNoEstimate)
	}

	var profile *model.Profile
	if d.profiles != nil {
		profile, _ = d.profiles.Get(profileID)
	}
	rec, err := d.assembler.Assemble(form, profile, result)
	if err != nil {
		log.Warn().Err(err).Str("profile_id", profileID).Msg("document export refused")
		return run.fail(err, model.CodeMissingProfile, msgNoProfile)
	}

	artifact, err := d.renderer.Render(rec)
	if err != nil {
		log.Error().Err(err).Msg("document render failed")
		return run.fail(tag(err, model.ErrRenderFailure), model.CodeRenderFailure, msgPDFFailed)
	}

	if err := save(saver, artifact); err != nil {
		log.Error().Err(err).Str("filename", artifact.Filename).Msg("document save failed")
		return run.fail(err, model.CodeSaveFailure, msgSaveFailed)
	}

	out := run.succeed(artifact.Filename)
	if d.usage != nil {
		if _, err := d.usage.Append(rec); err != nil {
			log.Warn().Err(err).Msg("usage log append failed")
			out.Warnings = append(out.Warnings, model.Notification{
				Level:   model.LevelWarning,
				Code:    model.CodeUsageLogFailure,
				Message: msgUsageLogFailed,
			})
		}
	}
	log.Info().Str("filename", artifact.Filename).Int64("duration_ms", out.Metadata.ExportDurationMs).Msg("document exported")
	return out
}

// ExportUsage writes records into the usage spreadsheet.
func (d *Dispatcher) ExportUsage(records []model.ReportRecord, saver Saver) Outcome {
	run := d.start()
	log := d.logger.With().Str("export_id", run.id).Int("records", len(records)).Logger()

	artifact, err := d.sheets.Export(records, run.started)
	if err != nil {
		log.Error().Err(err).Msg("usage export failed")
		return run.fail(tag(err, model.ErrExportFailure), model.CodeExportFailure, msgXLSXFailed)
	}

	if err := save(saver, artifact); err != nil {
		log.Error().Err(err).Str("filename", artifact.Filename).Msg("usage save failed")
		return run.fail(err, model.CodeSaveFailure, msgSaveFailed)
	}

	log.Info().Str("filename", artifact.Filename).Msg("usage exported")
	return run.succeed(artifact.Filename)
}

// ExportUsageLog exports every record in the usage log.
func (d *Dispatcher) ExportUsageLog(saver Saver) Outcome {
	if d.usage == nil {
		return d.ExportUsage(nil, saver)
	}
	records, err := d.usage.List()
	if err != nil {
		d.logger.Error().Err(err).Msg("usage log read failed")
		run := d.start()
		return run.fail(tag(err, model.ErrExportFailure), model.CodeExportFailure, msgXLSXFailed)
	}
	return d.ExportUsage(records, saver)
}

func save(saver Saver, artifact *model.ReportArtifact) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = tag(errors.New("saver panicked"), model.ErrSaveFailure)
		}
	}()
	if saver == nil {
		return tag(errors.New("no save mechanism"), model.ErrSaveFailure)
	}
	if err := saver.Save(artifact); err != nil {
		return tag(err, model.ErrSaveFailure)
	}
	return nil
}

// tag makes sure err matches sentinel under errors.Is.
func tag(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return errors.Join(sentinel, err)
}

type exportRun struct {
	id      string
	started time.Time
	now     func() time.Time
}

func (d *Dispatcher) start() *exportRun {
	return &exportRun{id: uuid.New().String(), started: d.now(), now: d.now}
}

func (r *exportRun) metadata(outcome string) model.ExportMetadata {
	done := r.now()
	return model.ExportMetadata{
		ExportID:          r.id,
		ExportStartedAt:   r.started.UTC().Format(time.RFC3339),
		ExportCompletedAt: done.UTC().Format(time.RFC3339),
		ExportDurationMs:  done.Sub(r.started).Milliseconds(),
		ExportOutcome:     outcome,
	}
}

func (r *exportRun) fail(err error, code, message string) Outcome {
	return Outcome{
		Metadata: r.metadata(model.OutcomeFailure),
		Notification: model.Notification{
			Level:   model.LevelCritical,
			Code:    code,
			Message: message,
		},
		Err: err,
	}
}

func (r *exportRun) succeed(filename string) Outcome {
	return Outcome{
		Metadata: r.metadata(model.OutcomeSuccess),
		Filename: filename,
		Notification: model.Notification{
			Level:   model.LevelInfo,
			Code:    model.CodeExported,
			Message: msgExported,
		},
	}
}
