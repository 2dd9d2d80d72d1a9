// Package curve evaluates template progression curves and scores how far a
// track sits from a curve target.
package curve

import (
	"fmt"
	"math"

	"github.com/ewilliams-labs/setcurve/internal/core/domain"
)

const (
	DefaultTempoWeight  = 0.5
	DefaultEnergyWeight = 0.5
	// DefaultTempoSpread is the BPM difference that counts as one unit of
	// tempo deviation, putting tempo on the same scale as energy.
	DefaultTempoSpread = 30.0
)

// Config tunes the deviation metric.
type Config struct {
	TempoWeight  float64
	EnergyWeight float64
	TempoSpread  float64
}

// DefaultConfig returns equal tempo and energy weights over a 30 BPM spread.
func DefaultConfig() Config {
	return Config{
		TempoWeight:  DefaultTempoWeight,
		EnergyWeight: DefaultEnergyWeight,
		TempoSpread:  DefaultTempoSpread,
	}
}

// Evaluator is stateless after construction and safe for concurrent use.
type Evaluator struct {
	cfg Config
}

// NewEvaluator builds an Evaluator. A non-positive spread or a pair of
// zero/negative weights falls back to the defaults.
func NewEvaluator(cfg Config) *Evaluator {
	if !(cfg.TempoSpread > 0) {
		cfg.TempoSpread = DefaultTempoSpread
	}
	if cfg.TempoWeight < 0 || cfg.EnergyWeight < 0 || cfg.TempoWeight+cfg.EnergyWeight <= 0 {
		cfg.TempoWeight = DefaultTempoWeight
		cfg.EnergyWeight = DefaultEnergyWeight
	}
	return &Evaluator{cfg: cfg}
}

// Config returns the effective configuration.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// TargetAt returns the curve value at position by linear interpolation
// between the bracketing control points.
func (e *Evaluator) TargetAt(tpl domain.Template, position float64) (domain.Target, error) {
	if math.IsNaN(position) || position < 0 || position > 1 {
		return domain.Target{}, fmt.Errorf("curve: %w: %v", domain.ErrInvalidPosition, position)
	}
	if len(tpl.Curve) < 2 {
		return domain.Target{}, fmt.Errorf("curve: %w: %q has %d control points", domain.ErrInvalidTemplate, tpl.Name, len(tpl.Curve))
	}

	target := domain.Target{
		Position:        position,
		TempoTolerance:  tpl.Tolerance.Tempo,
		EnergyTolerance: tpl.Tolerance.Energy,
	}

	for i := 1; i < len(tpl.Curve); i++ {
		lo, hi := tpl.Curve[i-1], tpl.Curve[i]
		if position > hi.Position {
			continue
		}
		switch position {
		case lo.Position:
			target.Tempo, target.Energy = lo.Tempo, lo.Energy
		case hi.Position:
			target.Tempo, target.Energy = hi.Tempo, hi.Energy
		default:
			span := hi.Position - lo.Position
			if span <= 0 {
				return domain.Target{}, fmt.Errorf("curve: %w: %q positions not increasing", domain.ErrInvalidTemplate, tpl.Name)
			}
			f := (position - lo.Position) / span
			target.Tempo = lo.Tempo + (hi.Tempo-lo.Tempo)*f
			target.Energy = lo.Energy + (hi.Energy-lo.Energy)*f
		}
		return target, nil
	}

	// position lies outside the curve's covered range
	return domain.Target{}, fmt.Errorf("curve: %w: %q does not cover %v", domain.ErrInvalidTemplate, tpl.Name, position)
}

// Deviation is the weighted distance between track and target. Zero is an
// exact match.
func (e *Evaluator) Deviation(track domain.Track, target domain.Target) float64 {
	tempo := math.Abs(track.Features.Tempo-target.Tempo) / e.cfg.TempoSpread
	energy := math.Abs(track.Features.Energy - target.Energy)
	return e.cfg.TempoWeight*tempo + e.cfg.EnergyWeight*energy
}

// Sample returns points evenly spaced targets from position 0 to 1.
func (e *Evaluator) Sample(tpl domain.Template, points int) ([]domain.Target, error) {
	if points < 2 {
		return nil, fmt.Errorf("curve: need at least 2 sample points, got %d", points)
	}
	out := make([]domain.Target, points)
	for i := range out {
		pos := float64(i) / float64(points-1)
		t, err := e.TargetAt(tpl, pos)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
