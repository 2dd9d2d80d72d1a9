// Package spotify converts Spotify-shaped track records into domain tracks.
// It never talks to the Spotify API; callers supply the records.
package spotify

// TrackRecord is a track as the Spotify Web API and the web client shape it,
// with audio features attached.
type TrackRecord struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	URI           string               `json:"uri,omitempty"`
	DurationMs    int                  `json:"duration_ms"`
	Artists       []ArtistRecord       `json:"artists,omitempty"`
	Album         AlbumRecord          `json:"album"`
	AudioFeatures *AudioFeaturesRecord `json:"audioFeatures,omitempty"`
}

type ArtistRecord struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type AlbumRecord struct {
	Name string `json:"name"`
}

// AudioFeaturesRecord mirrors the /audio-features payload.
type AudioFeaturesRecord struct {
	Tempo            float64 `json:"tempo"`
	Energy           float64 `json:"energy"`
	Danceability     float64 `json:"danceability"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	DurationMs       int     `json:"duration_ms,omitempty"`
}
