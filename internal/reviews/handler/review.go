package handler

import (
	"encoding/json"
	"net/http"

	"momtech/internal/reviews/service"
	httputil "momtech/pkg/http"
	"momtech/pkg/logger"
	"momtech/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ReviewHandler struct {
	service service.ReviewService
	log     *logger.Logger
}

func NewReviewHandler(service service.ReviewService, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log,
	}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var review model.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Submit(r.Context(), &review); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, review); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReviewHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	reviews, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, reviews, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	result, err := h.service.Stats(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Stats", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Stats", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reviews", h.Create)
	router.GET("/api/v1/reviews", h.GetAll)
	router.GET("/api/v1/reviews/stats", h.Stats)
}
