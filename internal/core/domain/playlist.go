package domain

import (
	"errors"
	"fmt"
)

// Playlist is the export hand-off for a generated mix.
type Playlist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Tracks      []Track `json:"tracks"`
}

func NewPlaylist(id, name string) (*Playlist, error) {
	if id == "" || name == "" {
		return nil, errors.New("domain: invalid argument")
	}
	return &Playlist{
		ID:     id,
		Name:   name,
		Tracks: []Track{},
	}, nil
}

// AddTrack appends a track to the playlist while preventing duplicates.
// If a track with the same ID is already present, AddTrack returns
// ErrDuplicateTrack.
func (p *Playlist) AddTrack(t Track) error {
	for _, ex := range p.Tracks {
		if ex.ID == t.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateTrack, t.ID)
		}
	}
	p.Tracks = append(p.Tracks, t)
	return nil
}

// Analyze averages the audio features of every track in the playlist.
func (p Playlist) Analyze() AudioFeatures {
	if len(p.Tracks) == 0 {
		return AudioFeatures{}
	}
	var sum AudioFeatures
	for _, t := range p.Tracks {
		sum.Tempo += t.Features.Tempo
		sum.Energy += t.Features.Energy
		sum.Danceability += t.Features.Danceability
		sum.Valence += t.Features.Valence
		sum.Acousticness += t.Features.Acousticness
		sum.Instrumentalness += t.Features.Instrumentalness
	}
	n := float64(len(p.Tracks))
	return AudioFeatures{
		Tempo:            sum.Tempo / n,
		Energy:           sum.Energy / n,
		Danceability:     sum.Danceability / n,
		Valence:          sum.Valence / n,
		Acousticness:     sum.Acousticness / n,
		Instrumentalness: sum.Instrumentalness / n,
	}
}

// URIs returns the track URIs the export layer attaches to a remote
// playlist, in order.
func (p Playlist) URIs() []string {
	uris := make([]string, len(p.Tracks))
	for i, t := range p.Tracks {
		uris[i] = t.URI
		if uris[i] == "" {
			uris[i] = fmt.Sprintf("spotify:track:%s", t.ID)
		}
	}
	return uris
}
