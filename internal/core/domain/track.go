package domain

// AudioFeatures holds the descriptors the sequencer and the presentation
// layer read from a track. Tempo and Energy are required; the rest are
// carried through for display and playlist analysis.
type AudioFeatures struct {
	Tempo            float64 `json:"tempo"`
	Energy           float64 `json:"energy"`
	Danceability     float64 `json:"danceability"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
}

// Track represents a musical track in the domain layer.
type Track struct {
	ID          string        `json:"id"`
	Title       string        `json:"title,omitempty"`
	Artist      string        `json:"artist,omitempty"`
	Album       string        `json:"album,omitempty"` // optional
	URI         string        `json:"uri,omitempty"`
	DurationSec int           `json:"duration_sec"`
	Features    AudioFeatures `json:"features"`
}

// Validate reports whether the track carries usable sequencing features.
func (t Track) Validate() error {
	switch {
	case t.ID == "":
		return invalidRequest("track id is empty")
	case !(t.Features.Tempo > 0):
		return invalidRequest("track %q: tempo must be positive", t.ID)
	case !(t.Features.Energy >= 0 && t.Features.Energy <= 1):
		return invalidRequest("track %q: energy must be within [0,1]", t.ID)
	case t.DurationSec <= 0:
		return invalidRequest("track %q: duration must be positive", t.ID)
	}
	return nil
}
