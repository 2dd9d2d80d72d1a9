package rest

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ewilliams-labs/setcurve/internal/core/services"
	"github.com/ewilliams-labs/setcurve/internal/worker"
)

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc      *services.Mixer // Dependency on the Core Service
	pool     *worker.Pool    // optional; batch requests need it
	validate *validator.Validate
	router   *http.ServeMux // Standard library router
}

// NewHandler initializes the HTTP adapter and sets up routes. A nil pool
// disables the batch endpoint.
func NewHandler(svc *services.Mixer, pool *worker.Pool, validate *validator.Validate) *Handler {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	// report fields by their JSON names
	validate.RegisterTagNameFunc(jsonFieldName)

	h := &Handler{
		svc:      svc,
		pool:     pool,
		validate: validate,
		router:   http.NewServeMux(),
	}

	// Register Routes
	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)
	// Template Catalog
	h.router.HandleFunc("GET /templates", h.ListTemplates)
	h.router.HandleFunc("GET /templates/{name}", h.GetTemplate)
	h.router.HandleFunc("GET /templates/{name}/curve", h.GetTemplateCurve)
	// Mix Generation
	h.router.HandleFunc("POST /mixes", h.CreateMix)
	h.router.HandleFunc("POST /mixes/batch", h.CreateMixBatch)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "setcurve is live"})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
