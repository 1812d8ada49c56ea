package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Mees070/woningprijs-calculater/internal/services"
)

// ProfileHandler serves the currently loaded market profile
type ProfileHandler struct {
	service *services.EstimateService
	logger  *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service *services.EstimateService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With(slog.String("component", "profile_handler")),
	}
}

// Routes returns the profile routes
func (h *ProfileHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.GetProfile)
	return r
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile := h.service.Profile()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"loaded_at": h.service.LoadedAt(),
		"profile":   profile,
	})
}
