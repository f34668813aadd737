package handler

import (
	"encoding/json"
	"net/http"

	"momtech/internal/availability/service"
	httputil "momtech/pkg/http"
	"momtech/pkg/logger"
	"momtech/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caregiverID := ps.ByName("id")

	availability, err := h.service.Get(r.Context(), caregiverID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) Save(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	caregiverID := ps.ByName("id")

	var update model.AvailabilityUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Save", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	availability, err := h.service.Save(r.Context(), caregiverID, &update)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Save", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "Save", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/availability/caregiver/:id", h.Get)
	router.POST("/api/v1/availability/caregiver/:id", h.Save)
}
