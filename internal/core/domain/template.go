package domain

import (
	"fmt"
	"math"
)

// LengthMode selects how a mix length target is measured.
type LengthMode string

const (
	// LengthByCount measures the target in tracks.
	LengthByCount LengthMode = "tracks"
	// LengthByDuration measures the target in seconds of playing time.
	LengthByDuration LengthMode = "duration"
)

// Length is a mix length target.
type Length struct {
	Mode   LengthMode `json:"mode"`
	Target int        `json:"target"`
}

// IsZero reports whether no length was given.
func (l Length) IsZero() bool {
	return l == Length{}
}

// Validate checks the mode is known and the target positive.
func (l Length) Validate() error {
	if l.Mode != LengthByCount && l.Mode != LengthByDuration {
		return invalidRequest("unknown length mode %q", l.Mode)
	}
	if l.Target <= 0 {
		return invalidRequest("length target must be positive, got %d", l.Target)
	}
	return nil
}

// ControlPoint anchors a template curve at a normalized position.
type ControlPoint struct {
	Position float64 `json:"position" mapstructure:"position"`
	Tempo    float64 `json:"tempo" mapstructure:"tempo"`
	Energy   float64 `json:"energy" mapstructure:"energy"`
}

// Tolerance is the band around the curve a track may sit in and still count
// as on target.
type Tolerance struct {
	Tempo  float64 `json:"tempo" mapstructure:"tempo"`
	Energy float64 `json:"energy" mapstructure:"energy"`
}

// Template is a named progression curve.
type Template struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	DefaultLength Length         `json:"default_length"`
	Tolerance     Tolerance      `json:"tolerance"`
	Curve         []ControlPoint `json:"curve"`
}

// TemplateSummary is the presentation view of a template.
type TemplateSummary struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	DefaultLength Length `json:"default_length"`
}

// Summary returns the presentation view of t.
func (t Template) Summary() TemplateSummary {
	return TemplateSummary{
		Name:          t.Name,
		Description:   t.Description,
		DefaultLength: t.DefaultLength,
	}
}

// Validate enforces the curve rules: at least two points, first at 0, last
// at 1, strictly increasing positions, positive tempo and energy in [0,1].
func (t Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidTemplate)
	}
	if len(t.Curve) < 2 {
		return fmt.Errorf("%w: %q needs at least two control points", ErrInvalidTemplate, t.Name)
	}
	if t.Curve[0].Position != 0 {
		return fmt.Errorf("%w: %q curve must start at position 0", ErrInvalidTemplate, t.Name)
	}
	if last := t.Curve[len(t.Curve)-1]; last.Position != 1 {
		return fmt.Errorf("%w: %q curve must end at position 1", ErrInvalidTemplate, t.Name)
	}
	for i, p := range t.Curve {
		if math.IsNaN(p.Position) || p.Position < 0 || p.Position > 1 {
			return fmt.Errorf("%w: %q point %d position %v outside [0,1]", ErrInvalidTemplate, t.Name, i, p.Position)
		}
		if i > 0 && p.Position <= t.Curve[i-1].Position {
			return fmt.Errorf("%w: %q point %d position not increasing", ErrInvalidTemplate, t.Name, i)
		}
		if !(p.Tempo > 0) {
			return fmt.Errorf("%w: %q point %d tempo must be positive", ErrInvalidTemplate, t.Name, i)
		}
		if !(p.Energy >= 0 && p.Energy <= 1) {
			return fmt.Errorf("%w: %q point %d energy outside [0,1]", ErrInvalidTemplate, t.Name, i)
		}
	}
	if t.Tolerance.Tempo < 0 || t.Tolerance.Energy < 0 {
		return fmt.Errorf("%w: %q tolerance must not be negative", ErrInvalidTemplate, t.Name)
	}
	if !t.DefaultLength.IsZero() {
		if err := t.DefaultLength.Validate(); err != nil {
			return fmt.Errorf("%w: %q default length: %v", ErrInvalidTemplate, t.Name, err)
		}
	}
	return nil
}

// Target is the curve's expected tempo and energy at a position, with the
// template's tolerance band.
type Target struct {
	Position        float64 `json:"position"`
	Tempo           float64 `json:"tempo"`
	Energy          float64 `json:"energy"`
	TempoTolerance  float64 `json:"tempo_tolerance"`
	EnergyTolerance float64 `json:"energy_tolerance"`
}

// Contains reports whether track sits inside the tolerance band.
func (t Target) Contains(track Track) bool {
	return math.Abs(track.Features.Tempo-t.Tempo) <= t.TempoTolerance &&
		math.Abs(track.Features.Energy-t.Energy) <= t.EnergyTolerance
}
