package domain

import (
	"errors"
	"math"
	"testing"
)

func validTemplate() Template {
	return Template{
		Name:          "Ramp",
		Description:   "linear ramp",
		DefaultLength: Length{Mode: LengthByCount, Target: 10},
		Tolerance:     Tolerance{Tempo: 3, Energy: 0.1},
		Curve: []ControlPoint{
			{Position: 0, Tempo: 120, Energy: 0.3},
			{Position: 1, Tempo: 128, Energy: 0.8},
		},
	}
}

func TestTemplate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *Template)
		wantErr bool
	}{
		{name: "valid", mutate: func(t *Template) {}},
		{name: "zero default length is allowed", mutate: func(t *Template) { t.DefaultLength = Length{} }},
		{name: "empty name", mutate: func(t *Template) { t.Name = "" }, wantErr: true},
		{name: "single point", mutate: func(t *Template) { t.Curve = t.Curve[:1] }, wantErr: true},
		{name: "first point not at zero", mutate: func(t *Template) { t.Curve[0].Position = 0.1 }, wantErr: true},
		{name: "last point not at one", mutate: func(t *Template) { t.Curve[1].Position = 0.9 }, wantErr: true},
		{
			name: "positions not increasing",
			mutate: func(t *Template) {
				t.Curve = []ControlPoint{
					{Position: 0, Tempo: 120, Energy: 0.3},
					{Position: 0.6, Tempo: 122, Energy: 0.4},
					{Position: 0.6, Tempo: 124, Energy: 0.5},
					{Position: 1, Tempo: 128, Energy: 0.8},
				}
			},
			wantErr: true,
		},
		{name: "non-positive tempo", mutate: func(t *Template) { t.Curve[1].Tempo = 0 }, wantErr: true},
		{name: "energy above one", mutate: func(t *Template) { t.Curve[1].Energy = 1.2 }, wantErr: true},
		{name: "NaN energy", mutate: func(t *Template) { t.Curve[0].Energy = math.NaN() }, wantErr: true},
		{name: "negative tolerance", mutate: func(t *Template) { t.Tolerance.Energy = -0.1 }, wantErr: true},
		{name: "bad default length", mutate: func(t *Template) { t.DefaultLength = Length{Mode: "laps", Target: 3} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := validTemplate()
			tt.mutate(&tpl)
			err := tpl.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate: got err=%v, wantErr=%v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTemplate) {
				t.Fatalf("expected ErrInvalidTemplate, got %v", err)
			}
		})
	}
}

func TestLength_Validate(t *testing.T) {
	tests := []struct {
		name    string
		length  Length
		wantErr bool
	}{
		{name: "count", length: Length{Mode: LengthByCount, Target: 5}},
		{name: "duration", length: Length{Mode: LengthByDuration, Target: 3600}},
		{name: "zero target", length: Length{Mode: LengthByCount, Target: 0}, wantErr: true},
		{name: "negative target", length: Length{Mode: LengthByDuration, Target: -60}, wantErr: true},
		{name: "unknown mode", length: Length{Mode: "bars", Target: 16}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.length.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate: got err=%v, wantErr=%v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestTarget_Contains(t *testing.T) {
	target := Target{Tempo: 124, Energy: 0.5, TempoTolerance: 2, EnergyTolerance: 0.1}
	inside := Track{ID: "in", Features: AudioFeatures{Tempo: 125.5, Energy: 0.45}}
	tempoOut := Track{ID: "fast", Features: AudioFeatures{Tempo: 127, Energy: 0.5}}
	energyOut := Track{ID: "loud", Features: AudioFeatures{Tempo: 124, Energy: 0.7}}

	if !target.Contains(inside) {
		t.Error("expected track within band")
	}
	if target.Contains(tempoOut) {
		t.Error("expected tempo outside band")
	}
	if target.Contains(energyOut) {
		t.Error("expected energy outside band")
	}
}
