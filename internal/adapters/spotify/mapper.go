package spotify

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/ewilliams-labs/setcurve/internal/core/domain"
)

// ConvertTrack maps a record onto a domain track. ok is false when the
// record lacks an ID, audio features, a positive tempo, an energy in [0,1]
// or a positive duration.
func ConvertTrack(rec TrackRecord) (domain.Track, bool) {
	if strings.TrimSpace(rec.ID) == "" || rec.AudioFeatures == nil {
		return domain.Track{}, false
	}
	f := *rec.AudioFeatures
	if allFeaturesZero(f) {
		return domain.Track{}, false
	}
	if !(f.Tempo > 0) || !(f.Energy >= 0 && f.Energy <= 1) {
		return domain.Track{}, false
	}

	// 1. Duration, falling back to the features payload
	ms := rec.DurationMs
	if ms <= 0 {
		ms = f.DurationMs
	}
	secs := int(math.Round(float64(ms) / 1000))
	if secs <= 0 {
		return domain.Track{}, false
	}

	// 2. Flatten Artists (List -> String)
	artistNames := make([]string, 0, len(rec.Artists))
	for _, a := range rec.Artists {
		if a.Name != "" {
			artistNames = append(artistNames, a.Name)
		}
	}

	uri := rec.URI
	if uri == "" {
		uri = fmt.Sprintf("spotify:track:%s", rec.ID)
	}

	return domain.Track{
		ID:          rec.ID,
		Title:       rec.Name,
		Artist:      strings.Join(artistNames, ", "),
		Album:       rec.Album.Name,
		URI:         uri,
		DurationSec: secs,
		Features: domain.AudioFeatures{
			Tempo:            f.Tempo,
			Energy:           f.Energy,
			Danceability:     f.Danceability,
			Valence:          f.Valence,
			Acousticness:     f.Acousticness,
			Instrumentalness: f.Instrumentalness,
		},
	}, true
}

// ConvertTracks converts a batch in input order. skipped lists the IDs of
// unusable records and of repeats of an ID already accepted.
func ConvertTracks(recs []TrackRecord) (tracks []domain.Track, skipped []string) {
	tracks = make([]domain.Track, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		t, ok := ConvertTrack(rec)
		if !ok {
			log.Printf("WARN spotify adapter: skipping track %q without usable features", rec.ID)
			skipped = append(skipped, rec.ID)
			continue
		}
		if _, dup := seen[t.ID]; dup {
			log.Printf("WARN spotify adapter: skipping duplicate track %q", t.ID)
			skipped = append(skipped, t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		tracks = append(tracks, t)
	}
	return tracks, skipped
}

// allFeaturesZero catches the empty payload Spotify returns for tracks it
// has not analysed.
func allFeaturesZero(f AudioFeaturesRecord) bool {
	return f.Danceability == 0 &&
		f.Energy == 0 &&
		f.Valence == 0 &&
		f.Tempo == 0 &&
		f.Instrumentalness == 0 &&
		f.Acousticness == 0
}
