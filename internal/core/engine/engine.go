// Package engine sequences a track pool along a template curve.
//
// The sequencer is greedy: each step looks up the curve target at the set's
// current normalized position and appends the remaining track closest to
// it. An early locally good pick can force a worse match later; there is no
// backtracking. Each run is O(pool × output length), performs no I/O and
// keeps all bookkeeping local, so an Engine is safe for concurrent use.
package engine

import (
	"fmt"

	"github.com/ewilliams-labs/setcurve/internal/core/domain"
	"github.com/ewilliams-labs/setcurve/internal/core/ports"
)

// Engine implements ports.Sequencer.
type Engine struct {
	curve ports.CurveEvaluator
}

// compile-time interface assertion
var _ ports.Sequencer = (*Engine)(nil)

// New constructs an Engine scoring candidates with curve.
func New(curve ports.CurveEvaluator) *Engine {
	return &Engine{curve: curve}
}

// Generate orders a subset of req.Pool along req.Template until the length
// target is met or the pool runs out. A request that fails validation
// returns an error matching domain.ErrInvalidRequest and no result.
func (e *Engine) Generate(req domain.MixRequest) (domain.MixResult, error) {
	if err := validate(req); err != nil {
		return domain.MixResult{}, fmt.Errorf("engine: %w", err)
	}

	remaining := make([]domain.Track, len(req.Pool))
	copy(remaining, req.Pool)

	capacity := len(remaining)
	if req.Length.Mode == domain.LengthByCount && req.Length.Target < capacity {
		capacity = req.Length.Target
	}
	tracks := make([]domain.Track, 0, capacity)
	targets := make([]domain.Target, 0, capacity)
	deviations := make([]float64, 0, capacity)

	// Seed at position 0: the pinned track, or the closest match.
	target, err := e.curve.TargetAt(req.Template, 0)
	if err != nil {
		return domain.MixResult{}, fmt.Errorf("engine: %w", err)
	}
	idx := indexOf(remaining, req.FirstTrackID)
	if idx < 0 {
		idx = e.closest(remaining, target)
	}

	consumed := 0
	for {
		pick := remaining[idx]
		tracks = append(tracks, pick)
		targets = append(targets, target)
		deviations = append(deviations, e.curve.Deviation(pick, target))
		remaining = removeAt(remaining, idx)
		consumed += measure(pick, req.Length.Mode)

		if consumed >= req.Length.Target || len(remaining) == 0 {
			break
		}

		target, err = e.curve.TargetAt(req.Template, position(consumed, req.Length.Target))
		if err != nil {
			return domain.MixResult{}, fmt.Errorf("engine: %w", err)
		}
		idx = e.closest(remaining, target)
	}

	return Package(tracks, targets, deviations, req.Length), nil
}

// closest returns the index of the track with the lowest deviation from
// target, preferring the lexicographically smallest ID on ties.
func (e *Engine) closest(pool []domain.Track, target domain.Target) int {
	best := -1
	bestDev := 0.0
	for i, t := range pool {
		dev := e.curve.Deviation(t, target)
		if best < 0 || dev < bestDev || (dev == bestDev && t.ID < pool[best].ID) {
			best = i
			bestDev = dev
		}
	}
	return best
}

// position maps consumed progress onto the curve, clamped to [0,1].
func position(consumed, target int) float64 {
	p := float64(consumed) / float64(target)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func measure(t domain.Track, mode domain.LengthMode) int {
	if mode == domain.LengthByDuration {
		return t.DurationSec
	}
	return 1
}

func indexOf(pool []domain.Track, id string) int {
	if id == "" {
		return -1
	}
	for i, t := range pool {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// removeAt deletes pool[i] without preserving order; selection never
// depends on pool order.
func removeAt(pool []domain.Track, i int) []domain.Track {
	last := len(pool) - 1
	pool[i] = pool[last]
	return pool[:last]
}

func validate(req domain.MixRequest) error {
	if len(req.Pool) == 0 {
		return domain.InvalidRequestError{Reason: "track pool is empty"}
	}
	if err := req.Length.Validate(); err != nil {
		return err
	}
	if err := req.Template.Validate(); err != nil {
		return domain.InvalidRequestError{Reason: err.Error()}
	}

	seen := make(map[string]struct{}, len(req.Pool))
	for _, t := range req.Pool {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := seen[t.ID]; dup {
			return domain.InvalidRequestError{Reason: fmt.Sprintf("track %q appears more than once in the pool", t.ID)}
		}
		seen[t.ID] = struct{}{}
	}

	if req.FirstTrackID != "" {
		if _, ok := seen[req.FirstTrackID]; !ok {
			return domain.InvalidRequestError{Reason: fmt.Sprintf("first track %q is not in the pool", req.FirstTrackID)}
		}
	}
	return nil
}
