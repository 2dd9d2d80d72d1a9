package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/setcurve/internal/core/domain"
	"github.com/ewilliams-labs/setcurve/internal/core/ports"
)

// fallbackLength applies when neither the request nor the template names a
// length.
var fallbackLength = domain.Length{Mode: domain.LengthByCount, Target: 15}

// MixSpec is a mix request addressed by template name.
type MixSpec struct {
	TemplateName string
	Pool         []domain.Track
	Length       domain.Length // zero value selects the template default
	FirstTrackID string
	// SkippedTrackIDs are records the caller dropped before building Pool.
	SkippedTrackIDs []string
}

// Mixer resolves templates, runs the sequencer and packages the export
// playlist.
type Mixer struct {
	catalog ports.TemplateCatalog
	seq     ports.Sequencer
	curve   ports.CurveEvaluator
}

// NewMixer constructs a Mixer.
func NewMixer(catalog ports.TemplateCatalog, seq ports.Sequencer, curve ports.CurveEvaluator) *Mixer {
	return &Mixer{
		catalog: catalog,
		seq:     seq,
		curve:   curve,
	}
}

// GenerateMix sequences spec.Pool along the named template.
// Degraded completion is reported on the result, not as an error.
func (m *Mixer) GenerateMix(ctx context.Context, spec MixSpec) (domain.Mix, error) {
	if err := ctx.Err(); err != nil {
		return domain.Mix{}, fmt.Errorf("service: %w", err)
	}

	// 1. Resolve the template
	tpl, err := m.catalog.Lookup(spec.TemplateName)
	if err != nil {
		return domain.Mix{}, fmt.Errorf("service: failed to resolve template: %w", err)
	}

	length := spec.Length
	if length.IsZero() {
		length = tpl.DefaultLength
	}
	if length.IsZero() {
		length = fallbackLength
	}

	// 2. Sequence the pool
	res, err := m.seq.Generate(domain.MixRequest{
		Pool:         spec.Pool,
		Template:     tpl,
		Length:       length,
		FirstTrackID: spec.FirstTrackID,
	})
	if err != nil {
		return domain.Mix{}, fmt.Errorf("service: failed to generate mix: %w", err)
	}

	// 3. Build the export playlist
	id := uuid.NewString()
	pl, err := domain.NewPlaylist(id, fmt.Sprintf("%s Mix", tpl.Name))
	if err != nil {
		return domain.Mix{}, fmt.Errorf("service: failed to create playlist: %w", err)
	}
	pl.Description = fmt.Sprintf("Generated using the %s template", tpl.Name)
	for _, t := range res.Tracks {
		if err := pl.AddTrack(t); err != nil {
			return domain.Mix{}, fmt.Errorf("service: domain rule violation: %w", err)
		}
	}

	if res.Degraded {
		log.Printf("WARN service: mix %s degraded: %d/%d %s from a pool of %d", id, measured(res), length.Target, length.Mode, len(spec.Pool))
	}
	log.Printf("INFO service: mix %s template=%q tracks=%d mean_deviation=%.3f", id, tpl.Name, res.AchievedCount, res.MeanDeviation)

	return domain.Mix{
		ID:              id,
		TemplateName:    tpl.Name,
		Result:          res,
		Progression:     res.Progression(),
		Playlist:        *pl,
		SkippedTrackIDs: spec.SkippedTrackIDs,
	}, nil
}

// Templates lists the catalog in registration order.
func (m *Mixer) Templates() []domain.TemplateSummary {
	return m.catalog.List()
}

// Template returns the full definition of the named template.
func (m *Mixer) Template(name string) (domain.Template, error) {
	tpl, err := m.catalog.Lookup(name)
	if err != nil {
		return domain.Template{}, fmt.Errorf("service: %w", err)
	}
	return tpl, nil
}

// Curve samples the named template at points evenly spaced positions.
func (m *Mixer) Curve(name string, points int) ([]domain.Target, error) {
	tpl, err := m.catalog.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	targets, err := m.curve.Sample(tpl, points)
	if err != nil {
		return nil, fmt.Errorf("service: failed to sample curve: %w", err)
	}
	return targets, nil
}

func measured(res domain.MixResult) int {
	if res.Requested.Mode == domain.LengthByDuration {
		return res.AchievedDuration
	}
	return res.AchievedCount
}
