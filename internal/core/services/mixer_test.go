package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ewilliams-labs/setcurve/internal/core/curve"
	"github.com/ewilliams-labs/setcurve/internal/core/domain"
	"github.com/ewilliams-labs/setcurve/internal/core/engine"
	"github.com/ewilliams-labs/setcurve/internal/core/templates"
)

func pool() []domain.Track {
	return []domain.Track{
		{ID: "t1", Title: "Opener", DurationSec: 240, Features: domain.AudioFeatures{Tempo: 124, Energy: 0.65}},
		{ID: "t2", Title: "Lift", DurationSec: 260, Features: domain.AudioFeatures{Tempo: 127, Energy: 0.8}},
		{ID: "t3", Title: "Peak", DurationSec: 300, Features: domain.AudioFeatures{Tempo: 130, Energy: 0.95}},
		{ID: "t4", Title: "Release", DurationSec: 280, Features: domain.AudioFeatures{Tempo: 127, Energy: 0.8}},
	}
}

func newMixer() *Mixer {
	ev := curve.NewEvaluator(curve.DefaultConfig())
	return NewMixer(templates.Default(), engine.New(ev), ev)
}

// TestMixer_GenerateMix runs the real catalog, evaluator and engine.
func TestMixer_GenerateMix(t *testing.T) {
	m := newMixer()

	mix, err := m.GenerateMix(context.Background(), MixSpec{
		TemplateName:    templates.PeakTime,
		Pool:            pool(),
		SkippedTrackIDs: []string{"broken"},
	})
	if err != nil {
		t.Fatalf("GenerateMix: %v", err)
	}

	if _, err := uuid.Parse(mix.ID); err != nil {
		t.Fatalf("mix id is not a uuid: %q", mix.ID)
	}
	if mix.Playlist.ID != mix.ID {
		t.Errorf("playlist id %q differs from mix id %q", mix.Playlist.ID, mix.ID)
	}
	if mix.Playlist.Name != "Peak Time Mix" {
		t.Errorf("playlist name: got %q", mix.Playlist.Name)
	}
	if mix.Playlist.Description != "Generated using the Peak Time template" {
		t.Errorf("playlist description: got %q", mix.Playlist.Description)
	}
	// default length is 15 tracks, so four tracks is a degraded completion
	if mix.Result.Requested != (domain.Length{Mode: domain.LengthByCount, Target: 15}) {
		t.Errorf("expected template default length, got %+v", mix.Result.Requested)
	}
	if !mix.Result.Degraded || mix.Result.AchievedCount != 4 {
		t.Errorf("expected degraded result with 4 tracks, got %d degraded=%v", mix.Result.AchievedCount, mix.Result.Degraded)
	}
	if len(mix.Playlist.Tracks) != 4 || len(mix.Progression.Tempo) != 4 {
		t.Errorf("playlist/progression not aligned with result")
	}
	if mix.Result.Tracks[0].ID != "t1" {
		t.Errorf("expected t1 to open the set, got %s", mix.Result.Tracks[0].ID)
	}
	if len(mix.SkippedTrackIDs) != 1 || mix.SkippedTrackIDs[0] != "broken" {
		t.Errorf("skipped ids not carried: %v", mix.SkippedTrackIDs)
	}
}

func TestMixer_GenerateMix_Errors(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name      string
		ctx       context.Context
		spec      MixSpec
		seq       mockSequencer
		wantErr   error
		wantCalls int
	}{
		{
			name:    "unknown template",
			ctx:     context.Background(),
			spec:    MixSpec{TemplateName: "Polka Hour", Pool: pool()},
			wantErr: domain.ErrUnknownTemplate,
		},
		{
			name:    "cancelled context",
			ctx:     cancelled,
			spec:    MixSpec{TemplateName: templates.PeakTime, Pool: pool()},
			wantErr: context.Canceled,
		},
		{
			name:      "sequencer rejects request",
			ctx:       context.Background(),
			spec:      MixSpec{TemplateName: templates.PeakTime},
			seq:       mockSequencer{err: domain.InvalidRequestError{Reason: "track pool is empty"}},
			wantErr:   domain.ErrInvalidRequest,
			wantCalls: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &Mixer{
				catalog: templates.Default(),
				seq:     &tc.seq,
				curve:   curve.NewEvaluator(curve.DefaultConfig()),
			}

			_, err := m.GenerateMix(tc.ctx, tc.spec)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.seq.calls != tc.wantCalls {
				t.Fatalf("sequencer called %d times, want %d", tc.seq.calls, tc.wantCalls)
			}
		})
	}
}

func TestMixer_GenerateMix_ExplicitLength(t *testing.T) {
	seq := &mockSequencer{}
	m := &Mixer{catalog: templates.Default(), seq: seq, curve: curve.NewEvaluator(curve.DefaultConfig())}
	want := domain.Length{Mode: domain.LengthByDuration, Target: 1800}

	if _, err := m.GenerateMix(context.Background(), MixSpec{
		TemplateName: templates.Journey,
		Pool:         pool(),
		Length:       want,
		FirstTrackID: "t3",
	}); err != nil {
		t.Fatalf("GenerateMix: %v", err)
	}

	if seq.got.Length != want {
		t.Errorf("length: got %+v, want %+v", seq.got.Length, want)
	}
	if seq.got.FirstTrackID != "t3" {
		t.Errorf("first track: got %q", seq.got.FirstTrackID)
	}
	if seq.got.Template.Name != templates.Journey {
		t.Errorf("template: got %q", seq.got.Template.Name)
	}
}

func TestMixer_GenerateMix_FallbackLength(t *testing.T) {
	bare := domain.Template{
		Name: "Bare",
		Curve: []domain.ControlPoint{
			{Position: 0, Tempo: 120, Energy: 0.5},
			{Position: 1, Tempo: 130, Energy: 0.9},
		},
	}
	catalog, err := templates.NewCatalog(bare)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	seq := &mockSequencer{}
	m := NewMixer(catalog, seq, curve.NewEvaluator(curve.DefaultConfig()))

	if _, err := m.GenerateMix(context.Background(), MixSpec{TemplateName: "Bare", Pool: pool()}); err != nil {
		t.Fatalf("GenerateMix: %v", err)
	}
	if seq.got.Length != fallbackLength {
		t.Errorf("expected fallback length, got %+v", seq.got.Length)
	}
}

func TestMixer_Templates(t *testing.T) {
	m := newMixer()

	list := m.Templates()
	if len(list) != len(templates.Builtin()) {
		t.Fatalf("expected %d templates, got %d", len(templates.Builtin()), len(list))
	}
	if list[0].Name != templates.WarmUp {
		t.Errorf("expected registration order, first is %q", list[0].Name)
	}

	tpl, err := m.Template(templates.ClosingSet)
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if len(tpl.Curve) < 2 {
		t.Errorf("template returned without a curve")
	}
	if _, err := m.Template("nope"); !errors.Is(err, domain.ErrUnknownTemplate) {
		t.Errorf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestMixer_Curve(t *testing.T) {
	m := newMixer()

	targets, err := m.Curve(templates.SteadyGroove, 5)
	if err != nil {
		t.Fatalf("Curve: %v", err)
	}
	if len(targets) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(targets))
	}
	for _, tg := range targets {
		if tg.Tempo != 122 || tg.Energy != 0.6 {
			t.Fatalf("flat curve sampled as %+v", tg)
		}
	}

	if _, err := m.Curve("nope", 5); !errors.Is(err, domain.ErrUnknownTemplate) {
		t.Errorf("expected ErrUnknownTemplate, got %v", err)
	}
	if _, err := m.Curve(templates.SteadyGroove, 1); err == nil {
		t.Error("expected error for a single sample point")
	}
}

// --- Mocks ---

// mockSequencer records the request and returns a canned result.
type mockSequencer struct {
	res   domain.MixResult
	err   error
	got   domain.MixRequest
	calls int
}

func (m *mockSequencer) Generate(req domain.MixRequest) (domain.MixResult, error) {
	m.calls++
	m.got = req
	if m.err != nil {
		return domain.MixResult{}, m.err
	}
	return m.res, nil
}
