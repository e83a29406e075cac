package predictclient

import (
	"fmt"
	"math"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"pension-report/internal/logging"
	"pension-report/internal/model"
)

// Client performs one request/response cycle against the prediction service.
// Failures never surface as errors: they are carried in PredictionResult.Error.
type Client struct {
	url     string
	timeout time.Duration
	http    *fasthttp.Client
	logger  zerolog.Logger
}

func New(url string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		url:     url,
		timeout: timeout,
		http: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 90 * time.Second,
			MaxConnsPerHost:     100,
		},
		logger: logging.Component(logger, "predictclient"),
	}
}

func (c *Client) Predict(in *model.PredictionRequest) *model.PredictionResult {
	if in == nil {
		return c.fail("", fmt.Errorf("empty prediction request"))
	}
	body, err := json.Marshal(in)
	if err != nil {
		return c.fail(in.UserID, fmt.Errorf("encode request: %w", err))
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBodyRaw(body)

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return c.fail(in.UserID, err)
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return c.fail(in.UserID, fmt.Errorf("prediction service returned status %d", code))
	}

	estimate, err := DecodeEstimate(resp.Body())
	if err != nil {
		return c.fail(in.UserID, err)
	}

	c.logger.Debug().Str("user_id", in.UserID).Float64("monthly", estimate.EstimatedMonthlyPension).Msg("prediction received")
	return &model.PredictionResult{Estimate: estimate}
}

func (c *Client) fail(userID string, err error) *model.PredictionResult {
	c.logger.Warn().Err(err).Str("user_id", userID).Msg("prediction request failed")
	return &model.PredictionResult{Error: err.Error()}
}

// DecodeEstimate reads the fields the report needs from a prediction
// response. The body must be a JSON object; individual fields that are
// missing or have the wrong type resolve to zero.
func DecodeEstimate(body []byte) (*model.PredictionEstimate, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode response: not a JSON object")
	}

	est := &model.PredictionEstimate{
		ProjectedCapital:        jsonNumber(raw["projected_capital"]),
		EstimatedMonthlyPension: jsonNumber(raw["estimated_monthly_pension"]),
		ReplacementRatePercent:  jsonNumber(raw["replacement_rate_percent"]),
	}

	if v, ok := raw["years_until_retirement"]; ok {
		var f float64
		if err := json.Unmarshal(v, &f); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			years := int(f)
			est.YearsUntilRetirement = &years
		}
	}

	if v, ok := raw["llm_analysis"]; ok {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			est.Advice = s
		}
	}

	return est, nil
}

func jsonNumber(v json.RawMessage) float64 {
	if len(v) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
