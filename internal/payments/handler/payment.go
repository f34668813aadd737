package handler

import (
	"encoding/json"
	"net/http"

	"momtech/internal/payments/service"
	httputil "momtech/pkg/http"
	"momtech/pkg/logger"
	"momtech/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

func (h *PaymentHandler) ProcessTransaction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var transaction model.PaymentTransaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ProcessTransaction", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.ProcessTransaction(r.Context(), &transaction); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ProcessTransaction", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, transaction); err != nil {
		h.log.Error("failed to write created response", "handler", "ProcessTransaction", "operation", "WriteCreated", "error", err)
	}
}

func (h *PaymentHandler) SavePreference(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var preference model.PaymentPreference
	if err := json.NewDecoder(r.Body).Decode(&preference); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SavePreference", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.SavePreference(r.Context(), &preference); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SavePreference", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, preference); err != nil {
		h.log.Error("failed to write created response", "handler", "SavePreference", "operation", "WriteCreated", "error", err)
	}
}

func (h *PaymentHandler) GetReports(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetReports", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	transactions, total, err := h.service.GetReports(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetReports", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, transactions, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetReports", "operation", "WritePaginated", "error", err)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/payments/transactions", h.ProcessTransaction)
	router.POST("/api/v1/payments/preferences", h.SavePreference)
	router.GET("/api/v1/payments/reports", h.GetReports)
}
