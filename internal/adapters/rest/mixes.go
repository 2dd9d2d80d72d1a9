package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ewilliams-labs/setcurve/internal/adapters/spotify"
	"github.com/ewilliams-labs/setcurve/internal/core/domain"
	"github.com/ewilliams-labs/setcurve/internal/core/services"
)

// randomFirstTrack asks for an unpinned opening track.
const randomFirstTrack = "random"

// mixRequest mirrors the web client's mix settings dialog.
type mixRequest struct {
	Template       string                `json:"template" validate:"required"`
	FirstTrackID   string                `json:"first_track_id"`
	DurationType   string                `json:"duration_type" validate:"omitempty,oneof=tracks time"`
	TargetTracks   int                   `json:"target_tracks" validate:"gte=0,lte=500"`
	TargetDuration int                   `json:"target_duration" validate:"gte=0,lte=1440"` // minutes
	Tracks         []spotify.TrackRecord `json:"tracks" validate:"required,min=1"`
}

type batchRequest struct {
	Mixes []mixRequest `json:"mixes" validate:"required,min=1,max=50"`
}

type batchItem struct {
	Index int          `json:"index"`
	Mix   *domain.Mix  `json:"mix,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
}

// CreateMix handles POST /mixes
func (h *Handler) CreateMix(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, CodeUnsupportedType, "Content-Type must be application/json", nil)
		return
	}

	// 1. Decode the Request Body
	var req mixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationError, "Invalid request body", nil)
		return
	}

	// 2. Validate Input
	spec, details := h.toSpec(req)
	if details != nil {
		writeError(w, http.StatusBadRequest, CodeValidationError, "Validation failed", details)
		return
	}

	// 3. Call the Service
	mix, err := h.svc.GenerateMix(r.Context(), spec)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// 4. Return the Response
	writeJSON(w, http.StatusOK, mix)
}

// CreateMixBatch handles POST /mixes/batch. Items are validated and
// generated independently; one failing item does not fail the batch.
func (h *Handler) CreateMixBatch(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, CodeUnsupportedType, "Content-Type must be application/json", nil)
		return
	}
	if h.pool == nil {
		writeError(w, http.StatusNotImplemented, CodeNotConfigured, "batch worker pool not configured", nil)
		return
	}

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationError, "Invalid request body", nil)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	results := make([]batchItem, len(req.Mixes))
	specs := make([]services.MixSpec, 0, len(req.Mixes))
	slots := make([]int, 0, len(req.Mixes))
	for i, item := range req.Mixes {
		results[i].Index = i
		spec, details := h.toSpec(item)
		if details != nil {
			results[i].Error = &errorDetail{Code: CodeValidationError, Message: "Validation failed", Details: details}
			continue
		}
		specs = append(specs, spec)
		slots = append(slots, i)
	}

	for j, o := range h.pool.RunBatch(r.Context(), specs) {
		i := slots[j]
		if o.Err != nil {
			_, detail := classify(o.Err)
			results[i].Error = &detail
			continue
		}
		mix := o.Mix
		results[i].Mix = &mix
	}

	writeJSON(w, http.StatusOK, batchResponse{Results: results})
}

// toSpec validates req and converts it into a service request. A non-nil
// details map reports the offending fields.
func (h *Handler) toSpec(req mixRequest) (services.MixSpec, interface{}) {
	if err := h.validate.Struct(&req); err != nil {
		return services.MixSpec{}, formatValidationErrors(err)
	}

	var length domain.Length
	switch req.DurationType {
	case "tracks":
		if req.TargetTracks == 0 {
			return services.MixSpec{}, map[string]string{"target_tracks": "required"}
		}
		length = domain.Length{Mode: domain.LengthByCount, Target: req.TargetTracks}
	case "time":
		if req.TargetDuration == 0 {
			return services.MixSpec{}, map[string]string{"target_duration": "required"}
		}
		length = domain.Length{Mode: domain.LengthByDuration, Target: req.TargetDuration * 60}
	default:
		// no duration_type: honour whichever target was sent, else the template default
		if req.TargetTracks > 0 {
			length = domain.Length{Mode: domain.LengthByCount, Target: req.TargetTracks}
		} else if req.TargetDuration > 0 {
			length = domain.Length{Mode: domain.LengthByDuration, Target: req.TargetDuration * 60}
		}
	}

	first := strings.TrimSpace(req.FirstTrackID)
	if strings.EqualFold(first, randomFirstTrack) {
		first = ""
	}

	pool, skipped := spotify.ConvertTracks(req.Tracks)
	return services.MixSpec{
		TemplateName:    req.Template,
		Pool:            pool,
		Length:          length,
		FirstTrackID:    first,
		SkippedTrackIDs: skipped,
	}, nil
}
