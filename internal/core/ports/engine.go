package ports

import (
	"github.com/ewilliams-labs/setcurve/internal/core/domain"
)

// CurveEvaluator reads target values off a template curve.
type CurveEvaluator interface {
	TargetAt(tpl domain.Template, position float64) (domain.Target, error)
	Deviation(track domain.Track, target domain.Target) float64
	Sample(tpl domain.Template, points int) ([]domain.Target, error)
}

// Sequencer orders a track pool along a template curve.
type Sequencer interface {
	Generate(req domain.MixRequest) (domain.MixResult, error)
}
