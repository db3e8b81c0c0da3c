package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"car-agent/domain"
	"car-agent/service"
)

func newFinancingHandler() *FinancingHandler {
	financingService := service.NewFinancingService(0.10, 36, 72, zap.NewNop().Sugar())
	return NewFinancingHandler(financingService, zap.NewNop().Sugar())
}

func TestFinancingHandler_OK(t *testing.T) {

	handler := newFinancingHandler()

	body := []byte(`{
		"car_price": 300000,
		"down_payment": 50000,
		"term_months": 36
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/financing", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CalculateFinancing(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var schedule domain.AmortizationSchedule
	if err := json.NewDecoder(w.Body).Decode(&schedule); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if schedule.LoanAmount != 250000 {
		t.Errorf("expected loan amount 250000, got %.2f", schedule.LoanAmount)
	}
	if len(schedule.Schedule) != 36 {
		t.Errorf("expected 36 rows, got %d", len(schedule.Schedule))
	}
}

func TestFinancingHandler_MissingFields(t *testing.T) {

	handler := newFinancingHandler()

	body := []byte(`{"car_price": 300000, "term_months": 36}`)
	req := httptest.NewRequest(http.MethodPost, "/api/financing", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CalculateFinancing(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestFinancingHandler_InvalidTerm(t *testing.T) {

	handler := newFinancingHandler()

	body := []byte(`{"car_price": 300000, "down_payment": 50000, "term_months": 12}`)
	req := httptest.NewRequest(http.MethodPost, "/api/financing", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CalculateFinancing(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestFinancingHandler_DownPaymentEqualsPrice(t *testing.T) {

	handler := newFinancingHandler()

	body := []byte(`{"car_price": 300000, "down_payment": 300000, "term_months": 36}`)
	req := httptest.NewRequest(http.MethodPost, "/api/financing", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CalculateFinancing(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestFinancingHandler_BadRequestBody(t *testing.T) {

	handler := newFinancingHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/financing",
		bytes.NewBuffer([]byte(`{invalid-json}`)))
	w := httptest.NewRecorder()

	handler.CalculateFinancing(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
