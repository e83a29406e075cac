package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pension-report/internal/config"
	"pension-report/internal/document"
	"pension-report/internal/model"
	"pension-report/internal/profile"
	"pension-report/internal/report"
	"pension-report/internal/session"
	"pension-report/internal/sheet"
)

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(rec model.ReportRecord) (*model.ReportArtifact, error) {
	args := m.Called(rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReportArtifact), args.Error(1)
}

type mockSaver struct {
	mock.Mock
}

func (m *mockSaver) Save(artifact *model.ReportArtifact) error {
	args := m.Called(artifact)
	return args.Error(0)
}

type mockUsage struct {
	mock.Mock
}

func (m *mockUsage) Append(rec model.ReportRecord) (string, error) {
	args := m.Called(rec)
	return args.String(0), args.Error(1)
}

func (m *mockUsage) List() ([]model.ReportRecord, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReportRecord), args.Error(1)
}

var fixedNow = time.Date(2025, 10, 4, 9, 5, 7, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Report: config.ReportConfig{
			Currency:               "PLN",
			Timezone:               "UTC",
			DefaultExpectedPension: 5000,
			DefaultPostalCode:      "00-001",
		},
	}
}

func newDispatcher(sessions *session.Store, renderer Renderer, usage UsageLog) *Dispatcher {
	now := func() time.Time { return fixedNow }
	return NewDispatcher(Dependencies{
		Sessions:  sessions,
		Profiles:  profile.Default(),
		Assembler: report.NewAssembler(testConfig(), now),
		Renderer:  renderer,
		Sheets:    sheet.NewExporter(zerolog.Nop()),
		Usage:     usage,
		Now:       now,
	}, zerolog.Nop())
}

func withEstimate(userID string) *session.Store {
	s := session.NewStore()
	s.Put(userID, &model.PredictionResult{Estimate: &model.PredictionEstimate{
		EstimatedMonthlyPension: 3120.57,
		ReplacementRatePercent:  39.01,
	}})
	return s
}

func TestExportDocumentWithoutEstimate(t *testing.T) {
	renderer := &mockRenderer{}
	saver := &mockSaver{}

	for _, sessions := range []*session.Store{session.NewStore(), func() *session.Store {
		s := session.NewStore()
		s.Put("user_001", &model.PredictionResult{Error: "connection refused"})
		return s
	}()} {
		d := newDispatcher(sessions, renderer, nil)
		out := d.ExportDocument("user_001", "user_001", model.FormSnapshot{}, saver)

		assert.True(t, errors.Is(out.Err, model.ErrPreconditionNotMet))
		assert.Equal(t, model.CodePreconditionNotMet, out.Notification.Code)
		assert.Equal(t, model.OutcomeFailure, out.Metadata.ExportOutcome)
		assert.Empty(t, out.Filename)
	}

	renderer.AssertNotCalled(t, "Render", mock.Anything)
	saver.AssertNotCalled(t, "Save", mock.Anything)
}

func TestExportDocumentMissingProfile(t *testing.T) {
	renderer := &mockRenderer{}
	d := newDispatcher(withEstimate("u"), renderer, nil)

	out := d.ExportDocument("u", "no_such_profile", model.FormSnapshot{}, &mockSaver{})

	assert.True(t, errors.Is(out.Err, model.ErrMissingProfile))
	assert.Equal(t, model.CodeMissingProfile, out.Notification.Code)
	renderer.AssertNotCalled(t, "Render", mock.Anything)
}

func TestExportDocumentSuccess(t *testing.T) {
	usage := &mockUsage{}
	usage.On("Append", mock.Anything).Return("id-1", nil)
	saver := &mockSaver{}
	saver.On("Save", mock.Anything).Return(nil)

	d := newDispatcher(withEstimate("u"), document.NewRenderer("PLN", zerolog.Nop()), usage)
	form := model.FormSnapshot{Income: 8000, Savings: 20000}

	out := d.ExportDocument("u", "user_002", form, saver)

	require.NoError(t, out.Err)
	assert.Equal(t, "raport_emerytura_04.10.2025.pdf", out.Filename)
	assert.Equal(t, model.OutcomeSuccess, out.Metadata.ExportOutcome)
	assert.Equal(t, model.LevelInfo, out.Notification.Level)
	assert.NotEmpty(t, out.Metadata.ExportID)
	assert.Empty(t, out.Warnings)

	saved := saver.Calls[0].Arguments.Get(0).(*model.ReportArtifact)
	assert.Equal(t, model.ContentTypePDF, saved.ContentType)

	logged := usage.Calls[0].Arguments.Get(0).(model.ReportRecord)
	assert.Equal(t, 3120.57, logged.ActualPension)
	assert.Equal(t, 35, logged.Age)
	assert.Equal(t, model.GenderFemale, logged.Gender)
}

func TestExportDocumentRenderFailure(t *testing.T) {
	renderer := &mockRenderer{}
	renderer.On("Render", mock.Anything).Return(nil, errors.New("font missing"))
	saver := &mockSaver{}
	usage := &mockUsage{}

	d := newDispatcher(withEstimate("u"), renderer, usage)
	out := d.ExportDocument("u", "user_001", model.FormSnapshot{}, saver)

	assert.True(t, errors.Is(out.Err, model.ErrRenderFailure))
	assert.Equal(t, model.CodeRenderFailure, out.Notification.Code)
	saver.AssertNotCalled(t, "Save", mock.Anything)
	usage.AssertNotCalled(t, "Append", mock.Anything)
}

func TestExportDocumentSaveFailure(t *testing.T) {
	saver := &mockSaver{}
	saver.On("Save", mock.Anything).Return(errors.New("disk full"))
	usage := &mockUsage{}

	d := newDispatcher(withEstimate("u"), document.NewRenderer("PLN", zerolog.Nop()), usage)
	out := d.ExportDocument("u", "user_001", model.FormSnapshot{}, saver)

	assert.True(t, errors.Is(out.Err, model.ErrSaveFailure))
	assert.Equal(t, model.CodeSaveFailure, out.Notification.Code)
	usage.AssertNotCalled(t, "Append", mock.Anything)
}

type panickingSaver struct{}

func (panickingSaver) Save(*model.ReportArtifact) error { panic("browser gone") }

func TestExportDocumentSaverPanicIsContained(t *testing.T) {
	d := newDispatcher(withEstimate("u"), document.NewRenderer("PLN", zerolog.Nop()), nil)

	out := d.ExportDocument("u", "user_001", model.FormSnapshot{}, panickingSaver{})

	assert.True(t, errors.Is(out.Err, model.ErrSaveFailure))
}

func TestExportDocumentUsageLogFailureIsWarning(t *testing.T) {
	usage := &mockUsage{}
	usage.On("Append", mock.Anything).Return("", errors.New("db locked"))
	saver := &mockSaver{}
	saver.On("Save", mock.Anything).Return(nil)

	d := newDispatcher(withEstimate("u"), document.NewRenderer("PLN", zerolog.Nop()), usage)
	out := d.ExportDocument("u", "user_001", model.FormSnapshot{}, saver)

	require.NoError(t, out.Err)
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, model.CodeUsageLogFailure, out.Warnings[0].Code)
	assert.Equal(t, out.Warnings, out.Response().Warnings)
}

func TestExportUsageLog(t *testing.T) {
	records := []model.ReportRecord{{GeneratedDate: "04.10.2025", Gender: model.GenderMale}}
	usage := &mockUsage{}
	usage.On("List").Return(records, nil)
	saver := &mockSaver{}
	saver.On("Save", mock.Anything).Return(nil)

	d := newDispatcher(session.NewStore(), &mockRenderer{}, usage)
	out := d.ExportUsageLog(saver)

	require.NoError(t, out.Err)
	assert.Equal(t, "raport_uzycia_2025-10-04.xlsx", out.Filename)
	saved := saver.Calls[0].Arguments.Get(0).(*model.ReportArtifact)
	assert.Equal(t, model.ContentTypeXLSX, saved.ContentType)
}

func TestExportUsageLogReadFailure(t *testing.T) {
	usage := &mockUsage{}
	usage.On("List").Return(nil, errors.New("no such table"))
	saver := &mockSaver{}

	d := newDispatcher(session.NewStore(), &mockRenderer{}, usage)
	out := d.ExportUsageLog(saver)

	assert.True(t, errors.Is(out.Err, model.ErrExportFailure))
	saver.AssertNotCalled(t, "Save", mock.Anything)
}

func TestExportUsageEmptyBatch(t *testing.T) {
	saver := &mockSaver{}
	saver.On("Save", mock.Anything).Return(nil)

	d := newDispatcher(session.NewStore(), &mockRenderer{}, nil)
	out := d.ExportUsage(nil, saver)

	require.NoError(t, out.Err)
	assert.Equal(t, model.OutcomeSuccess, out.Metadata.ExportOutcome)
}

func TestFileSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s := FileSaver{Dir: dir}

	err := s.Save(&model.ReportArtifact{Filename: "../raport.pdf", Data: []byte("%PDF-")})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "raport.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data))
}
