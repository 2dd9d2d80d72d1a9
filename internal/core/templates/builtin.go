package templates

import "github.com/ewilliams-labs/setcurve/internal/core/domain"

const (
	WarmUp       = "Warm Up (Opening Set)"
	PeakTime     = "Peak Time"
	ClosingSet   = "Closing Set (Cool Down)"
	Journey      = "Journey"
	SteadyGroove = "Steady Groove"
)

var defaultTolerance = domain.Tolerance{Tempo: 3, Energy: 0.1}

// Builtin returns the static template registry in presentation order.
func Builtin() []domain.Template {
	return []domain.Template{
		{
			Name:          WarmUp,
			Description:   "A gentle opener: tempo and energy climb slowly so the room can settle in.",
			DefaultLength: domain.Length{Mode: domain.LengthByCount, Target: 15},
			Tolerance:     defaultTolerance,
			Curve: []domain.ControlPoint{
				{Position: 0, Tempo: 116, Energy: 0.35},
				{Position: 0.5, Tempo: 120, Energy: 0.5},
				{Position: 1, Tempo: 124, Energy: 0.65},
			},
		},
		{
			Name:          PeakTime,
			Description:   "Builds fast to a sustained peak, then releases slightly for the hand-off.",
			DefaultLength: domain.Length{Mode: domain.LengthByCount, Target: 15},
			Tolerance:     defaultTolerance,
			Curve: []domain.ControlPoint{
				{Position: 0, Tempo: 124, Energy: 0.65},
				{Position: 0.35, Tempo: 128, Energy: 0.85},
				{Position: 0.75, Tempo: 130, Energy: 0.95},
				{Position: 1, Tempo: 127, Energy: 0.8},
			},
		},
		{
			Name:          ClosingSet,
			Description:   "Starts where the night peaked and winds down to a mellow finish.",
			DefaultLength: domain.Length{Mode: domain.LengthByCount, Target: 12},
			Tolerance:     defaultTolerance,
			Curve: []domain.ControlPoint{
				{Position: 0, Tempo: 126, Energy: 0.8},
				{Position: 0.5, Tempo: 120, Energy: 0.55},
				{Position: 1, Tempo: 110, Energy: 0.3},
			},
		},
		{
			Name:          Journey,
			Description:   "Two waves of tension and release across the set.",
			DefaultLength: domain.Length{Mode: domain.LengthByDuration, Target: 90 * 60},
			Tolerance:     defaultTolerance,
			Curve: []domain.ControlPoint{
				{Position: 0, Tempo: 112, Energy: 0.35},
				{Position: 0.25, Tempo: 122, Energy: 0.65},
				{Position: 0.5, Tempo: 118, Energy: 0.45},
				{Position: 0.8, Tempo: 128, Energy: 0.9},
				{Position: 1, Tempo: 122, Energy: 0.6},
			},
		},
		{
			Name:          SteadyGroove,
			Description:   "Holds a constant mid-tempo groove for background sets.",
			DefaultLength: domain.Length{Mode: domain.LengthByDuration, Target: 60 * 60},
			Tolerance:     defaultTolerance,
			Curve: []domain.ControlPoint{
				{Position: 0, Tempo: 122, Energy: 0.6},
				{Position: 1, Tempo: 122, Energy: 0.6},
			},
		},
	}
}
