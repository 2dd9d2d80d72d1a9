package domain

import "math"

// MixRequest is the sequencer's input.
type MixRequest struct {
	Pool         []Track
	Template     Template
	Length       Length
	FirstTrackID string // optional pinned opening track
}

// MixResult is an ordered, duplicate-free selection from the pool along with
// per-step diagnostics. Targets and Deviations are parallel to Tracks.
type MixResult struct {
	Tracks           []Track   `json:"tracks"`
	Targets          []Target  `json:"targets"`
	Deviations       []float64 `json:"deviations"`
	Requested        Length    `json:"requested"`
	AchievedCount    int       `json:"achieved_count"`
	AchievedDuration int       `json:"achieved_duration"`
	TotalDeviation   float64   `json:"total_deviation"`
	MeanDeviation    float64   `json:"mean_deviation"`
	WithinTolerance  int       `json:"within_tolerance"`
	Degraded         bool      `json:"degraded"`
}

// TrackIDs returns the result's track identifiers in order.
func (r MixResult) TrackIDs() []string {
	ids := make([]string, len(r.Tracks))
	for i, t := range r.Tracks {
		ids[i] = t.ID
	}
	return ids
}

// Progression is per-position chart data: tempo in BPM and energy scaled
// to 0-100.
type Progression struct {
	Tempo  []float64 `json:"tempo"`
	Energy []int     `json:"energy"`
}

// Progression returns the tempo and energy series of the result.
func (r MixResult) Progression() Progression {
	p := Progression{
		Tempo:  make([]float64, len(r.Tracks)),
		Energy: make([]int, len(r.Tracks)),
	}
	for i, t := range r.Tracks {
		p.Tempo[i] = t.Features.Tempo
		p.Energy[i] = int(math.Round(t.Features.Energy * 100))
	}
	return p
}

// Mix is a generated set ready for presentation and export.
type Mix struct {
	ID              string      `json:"id"`
	TemplateName    string      `json:"template"`
	Result          MixResult   `json:"result"`
	Progression     Progression `json:"progression"`
	Playlist        Playlist    `json:"playlist"`
	SkippedTrackIDs []string    `json:"skipped_track_ids,omitempty"`
}
