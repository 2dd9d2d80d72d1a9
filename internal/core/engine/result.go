package engine

import "github.com/ewilliams-labs/setcurve/internal/core/domain"

// Package aggregates a finished sequence into a MixResult. targets and
// deviations must be parallel to tracks.
func Package(tracks []domain.Track, targets []domain.Target, deviations []float64, requested domain.Length) domain.MixResult {
	res := domain.MixResult{
		Tracks:        tracks,
		Targets:       targets,
		Deviations:    deviations,
		Requested:     requested,
		AchievedCount: len(tracks),
	}

	for i, t := range tracks {
		res.AchievedDuration += t.DurationSec
		if i < len(deviations) {
			res.TotalDeviation += deviations[i]
		}
		if i < len(targets) && targets[i].Contains(t) {
			res.WithinTolerance++
		}
	}
	if len(tracks) > 0 {
		res.MeanDeviation = res.TotalDeviation / float64(len(tracks))
	}

	achieved := res.AchievedCount
	if requested.Mode == domain.LengthByDuration {
		achieved = res.AchievedDuration
	}
	res.Degraded = achieved < requested.Target

	return res
}
