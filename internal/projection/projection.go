package projection

import (
	"fmt"
	"math"
	"time"

	"pension-report/internal/config"
	"pension-report/internal/model"
)

type Growth string

const (
	GrowthCompound Growth = "compound"
	GrowthAdditive Growth = "additive"
)

// Generate returns horizon points starting at currentYear. Compound growth is
// v0*(1+r)^i, additive growth is v0*(1+r*i). Non-positive or non-finite bases
// are treated as zero.
func Generate(v0 float64, horizon int, rate float64, currentYear int, growth Growth) ([]model.ProjectionPoint, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidHorizon, horizon)
	}
	if math.IsNaN(v0) || math.IsInf(v0, 0) || v0 < 0 {
		v0 = 0
	}

	points := make([]model.ProjectionPoint, horizon)
	for i := 0; i < horizon; i++ {
		var factor float64
		switch growth {
		case GrowthAdditive:
			factor = 1 + rate*float64(i)
		default:
			factor = math.Pow(1+rate, float64(i))
		}
		points[i] = model.ProjectionPoint{
			Year:  currentYear + i,
			Value: v0 * factor,
		}
	}
	return points, nil
}

// Generator applies the configured projection policy to prediction results.
type Generator struct {
	horizon         int
	estimateRate    float64
	placeholderRate float64
	placeholderBase float64
	growth          Growth
}

func NewGenerator(cfg config.ProjectionConfig) *Generator {
	return &Generator{
		horizon:         cfg.Horizon,
		estimateRate:    cfg.EstimateRate,
		placeholderRate: cfg.PlaceholderRate,
		placeholderBase: cfg.PlaceholderBase,
		growth:          Growth(cfg.Growth),
	}
}

// ForResult projects the monthly pension of result. Without an estimate the
// placeholder base and rate are used.
func (g *Generator) ForResult(result *model.PredictionResult, now time.Time) ([]model.ProjectionPoint, error) {
	if !result.HasEstimate() {
		return Generate(g.placeholderBase, g.horizon, g.placeholderRate, now.Year(), g.growth)
	}

	base := result.Estimate.EstimatedMonthlyPension
	if base == 0 {
		base = g.placeholderBase
	}
	return Generate(base, g.horizon, g.estimateRate, now.Year(), g.growth)
}
