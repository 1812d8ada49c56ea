package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/Mees070/woningprijs-calculater/internal/errors"
	"github.com/Mees070/woningprijs-calculater/internal/middleware"
	"github.com/Mees070/woningprijs-calculater/internal/pricing"
	"github.com/Mees070/woningprijs-calculater/internal/services"
)

// EstimateRequest is the POST /api/estimate payload.
type EstimateRequest struct {
	City                string  `json:"city" validate:"required"`
	LivingArea          float64 `json:"living_area" validate:"required,gt=0"`
	BuildYear           int     `json:"build_year" validate:"omitempty,gte=1500"`
	HouseType           string  `json:"house_type"`
	Condition           string  `json:"condition" validate:"omitempty,condition"`
	GardenArea          float64 `json:"garden_area" validate:"omitempty,gte=0"`
	Roof                string  `json:"roof"`
	Position            string  `json:"position"`
	EnergyLabel         string  `json:"energy_label" validate:"omitempty,energylabel"`
	NeighborhoodPriceM2 float64 `json:"neighborhood_price_m2" validate:"omitempty,gte=0"`
	Rooms               int     `json:"rooms" validate:"omitempty,gte=0"`
	Bathrooms           int     `json:"bathrooms" validate:"omitempty,gte=0"`
	Toilets             int     `json:"toilets" validate:"omitempty,gte=0"`
	Floors              int     `json:"floors" validate:"omitempty,gte=0"`
	LotSize             float64 `json:"lot_size" validate:"omitempty,gte=0"`
	MicroLocation       float64 `json:"micro_location" validate:"omitempty,gte=-0.5,lte=0.5"`

	Renovation *RenovationRequest `json:"renovation,omitempty"`
}

// RenovationRequest is the optional renovation plan in an estimate request.
type RenovationRequest struct {
	Budget            float64 `json:"budget" validate:"gte=0"`
	Category          string  `json:"category"`
	TargetEnergyLabel string  `json:"target_energy_label" validate:"omitempty,energylabel"`
}

// toInput converts the request DTO to the engine input.
func (req *EstimateRequest) toInput() pricing.HouseInput {
	input := pricing.HouseInput{
		City:                req.City,
		LivingArea:          req.LivingArea,
		BuildYear:           req.BuildYear,
		HouseType:           req.HouseType,
		Condition:           pricing.Condition(req.Condition),
		GardenArea:          req.GardenArea,
		Roof:                req.Roof,
		Position:            req.Position,
		EnergyLabel:         req.EnergyLabel,
		NeighborhoodPriceM2: req.NeighborhoodPriceM2,
		Rooms:               req.Rooms,
		Bathrooms:           req.Bathrooms,
		Toilets:             req.Toilets,
		Floors:              req.Floors,
		LotSize:             req.LotSize,
		MicroLocation:       req.MicroLocation,
	}
	if req.Renovation != nil {
		input.Renovation = &pricing.RenovationPlan{
			Budget:            req.Renovation.Budget,
			Category:          req.Renovation.Category,
			TargetEnergyLabel: req.Renovation.TargetEnergyLabel,
		}
	}
	return input
}

// EstimateHandler handles estimation HTTP requests
type EstimateHandler struct {
	service   *services.EstimateService
	validator *middleware.Validator
	logger    *slog.Logger
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(service *services.EstimateService, logger *slog.Logger) *EstimateHandler {
	return &EstimateHandler{
		service:   service,
		validator: middleware.NewValidator(),
		logger:    logger.With(slog.String("component", "estimate_handler")),
	}
}

// Routes returns the estimate routes
func (h *EstimateHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/", h.Estimate)
	return r
}

// Estimate handles POST /api/estimate
func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetRequestID(ctx)

	var req EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "malformed estimate request",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		apierrors.WriteError(w, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		apierrors.WriteError(w, err.(*apierrors.APIError))
		return
	}

	result, err := h.service.Estimate(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "estimation rejected",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		apierrors.WriteError(w, apierrors.FromDomain(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}
