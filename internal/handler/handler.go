package handler

import (
	"errors"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"pension-report/internal/export"
	"pension-report/internal/logging"
	"pension-report/internal/model"
	"pension-report/internal/predictclient"
	"pension-report/internal/profile"
	"pension-report/internal/projection"
	"pension-report/internal/report"
	"pension-report/internal/session"
)

const warningsHeader = "X-Export-Warnings"

type Predictor interface {
	Predict(req *model.PredictionRequest) *model.PredictionResult
}

type Handler struct {
	predictor  Predictor
	sessions   *session.Store
	catalog    *profile.Catalog
	projection *projection.Generator
	dispatcher *export.Dispatcher
	now        func() time.Time
	logger     zerolog.Logger
}

type Dependencies struct {
	Predictor  Predictor
	Sessions   *session.Store
	Catalog    *profile.Catalog
	Projection *projection.Generator
	Dispatcher *export.Dispatcher
	Now        func() time.Time
}

func New(deps Dependencies, logger zerolog.Logger) *Handler {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		predictor:  deps.Predictor,
		sessions:   deps.Sessions,
		catalog:    deps.Catalog,
		projection: deps.Projection,
		dispatcher: deps.Dispatcher,
		now:        now,
		logger:     logging.Component(logger, "http"),
	}
}

// Handle is the fasthttp entry point.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())
	method := string(ctx.Method())

	defer func() {
		if p := recover(); p != nil {
			h.logger.Error().Interface("panic", p).Str("path", path).Msg("handler panicked")
			writeError(ctx, fasthttp.StatusInternalServerError, "Internal server error")
		}
		h.logger.Info().
			Str("method", method).
			Str("path", path).
			Int("status", ctx.Response.StatusCode()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}()

	switch {
	case path == "/api/predict" && ctx.IsPost():
		h.predict(ctx)
	case path == "/api/projection" && ctx.IsGet():
		h.projectionSeries(ctx)
	case path == "/api/profiles" && ctx.IsGet():
		h.profiles(ctx)
	case path == "/api/report/pdf" && ctx.IsPost():
		h.reportPDF(ctx)
	case path == "/api/report/xlsx" && ctx.IsPost():
		h.reportXLSX(ctx)
	case path == "/api/admin/usage.xlsx" && ctx.IsGet():
		h.usageXLSX(ctx)
	case isKnownPath(path):
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func isKnownPath(path string) bool {
	switch path {
	case "/api/predict", "/api/projection", "/api/profiles", "/api/report/pdf", "/api/report/xlsx", "/api/admin/usage.xlsx":
		return true
	}
	return false
}

// predictBody accepts either a raw prediction request or a profile reference
// plus form values, from which the request is built.
type predictBody struct {
	model.PredictionRequest
	ProfileID string              `json:"profile_id"`
	Form      *model.FormSnapshot `json:"form"`
}

func (h *Handler) predict(ctx *fasthttp.RequestCtx) {
	var body predictBody
	if err := json.Unmarshal(ctx.PostBody(), &body); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req := &body.PredictionRequest
	if body.ProfileID != "" {
		p, ok := h.catalog.Get(body.ProfileID)
		if !ok {
			writeError(ctx, fasthttp.StatusUnprocessableEntity, "Unknown profile: "+body.ProfileID)
			return
		}
		var form model.FormSnapshot
		if body.Form != nil {
			form = *body.Form
		}
		built, err := report.BuildPredictionRequest(p, form)
		if err != nil {
			writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
			return
		}
		if body.UserID != "" {
			built.UserID = body.UserID
		}
		req = built
	}

	if req.UserID == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "user_id is required")
		return
	}

	result := h.predictor.Predict(req)
	h.sessions.Put(req.UserID, result)

	points, err := h.projection.ForResult(result, h.now())
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, model.PredictionResponse{
		Result:     *result,
		Summary:    predictclient.Summary(result),
		Projection: points,
	})
}

func (h *Handler) projectionSeries(ctx *fasthttp.RequestCtx) {
	userID := string(ctx.QueryArgs().Peek("user_id"))
	result, _ := h.sessions.Get(userID)

	points, err := h.projection.ForResult(result, h.now())
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, points)
}

func (h *Handler) profiles(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, model.CatalogResponse{
		Profiles:          h.catalog.Profiles,
		InvestmentOptions: h.catalog.InvestmentOptions,
	})
}

func (h *Handler) reportPDF(ctx *fasthttp.RequestCtx) {
	var req model.ExportRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	writeOutcome(ctx, h.dispatcher.ExportDocument(req.UserID, req.ProfileID, req.Form, responseSaver{ctx}))
}

func (h *Handler) reportXLSX(ctx *fasthttp.RequestCtx) {
	var req model.UsageExportRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	writeOutcome(ctx, h.dispatcher.ExportUsage(req.Records, responseSaver{ctx}))
}

func (h *Handler) usageXLSX(ctx *fasthttp.RequestCtx) {
	writeOutcome(ctx, h.dispatcher.ExportUsageLog(responseSaver{ctx}))
}

// responseSaver hands the artifact to the client as a download.
type responseSaver struct {
	ctx *fasthttp.RequestCtx
}

func (s responseSaver) Save(artifact *model.ReportArtifact) error {
	s.ctx.Response.Header.Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	s.ctx.SetContentType(artifact.ContentType)
	s.ctx.SetStatusCode(fasthttp.StatusOK)
	s.ctx.SetBody(artifact.Data)
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrPreconditionNotMet):
		return fasthttp.StatusConflict
	case errors.Is(err, model.ErrMissingProfile):
		return fasthttp.StatusUnprocessableEntity
	default:
		return fasthttp.StatusInternalServerError
	}
}

// writeOutcome leaves a saved artifact as the body. Warnings on a successful
// export travel in the X-Export-Warnings header as comma-separated codes.
func writeOutcome(ctx *fasthttp.RequestCtx, out export.Outcome) {
	if out.Err == nil {
		codes := make([]string, 0, len(out.Warnings))
		for _, w := range out.Warnings {
			codes = append(codes, w.Code)
		}
		if len(codes) > 0 {
			ctx.Response.Header.Set(warningsHeader, strings.Join(codes, ","))
		}
		return
	}
	ctx.Response.Header.Del("Content-Disposition")
	writeJSON(ctx, statusFor(out.Err), out.Response())
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = fasthttp.StatusInternalServerError
		body = []byte(`{"status":500,"message":"encode response"}`)
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
