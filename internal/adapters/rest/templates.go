package rest

import (
	"net/http"
	"strconv"

	"github.com/ewilliams-labs/setcurve/internal/core/domain"
)

const (
	defaultCurvePoints = 20
	maxCurvePoints     = 200
)

type curveResponse struct {
	Template string          `json:"template"`
	Points   []domain.Target `json:"points"`
}

// ListTemplates handles GET /templates
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"templates": h.svc.Templates()})
}

// GetTemplate handles GET /templates/{name}
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.svc.Template(r.PathValue("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

// GetTemplateCurve handles GET /templates/{name}/curve?points=N
func (h *Handler) GetTemplateCurve(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	points := defaultCurvePoints
	if raw := r.URL.Query().Get("points"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeValidationError, "Validation failed", map[string]string{"points": "numeric"})
			return
		}
		points = n
	}
	if err := h.validate.Var(points, "min=2,max="+strconv.Itoa(maxCurvePoints)); err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationError, "points must be between 2 and "+strconv.Itoa(maxCurvePoints), map[string]string{"points": "range"})
		return
	}

	targets, err := h.svc.Curve(name, points)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, curveResponse{Template: name, Points: targets})
}
