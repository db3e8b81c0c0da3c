package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"car-agent/service"
)

type FinancingHandler struct {
	service *service.FinancingService
	log     *zap.SugaredLogger
}

func NewFinancingHandler(service *service.FinancingService, log *zap.SugaredLogger) *FinancingHandler {
	return &FinancingHandler{service: service, log: log}
}

// Punteros para distinguir campo ausente de cero explícito.
type financingRequest struct {
	CarPrice    *float64 `json:"car_price"`
	DownPayment *float64 `json:"down_payment"`
	TermMonths  *int     `json:"term_months"`
}

// CalculateFinancing atiende POST /api/financing.
func (h *FinancingHandler) CalculateFinancing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input financingRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log.Warnw("solicitud de financiamiento inválida", "error", err)
		writeError(w, http.StatusBadRequest, "Faltan campos requeridos")
		return
	}
	if input.CarPrice == nil || input.DownPayment == nil || input.TermMonths == nil {
		h.log.Warnw("solicitud de financiamiento incompleta")
		writeError(w, http.StatusBadRequest, "Faltan campos requeridos")
		return
	}

	schedule, err := h.service.AmortizationSchedule(*input.CarPrice, *input.DownPayment, *input.TermMonths)
	if err != nil {
		h.log.Warnw("cálculo de financiamiento rechazado", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}
