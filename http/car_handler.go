package http

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"car-agent/repository"
)

type CarHandler struct {
	catalog repository.CatalogRepository
	log     *zap.SugaredLogger
}

func NewCarHandler(catalog repository.CatalogRepository, log *zap.SugaredLogger) *CarHandler {
	return &CarHandler{catalog: catalog, log: log}
}

// GetCar atiende GET /api/car/{id}.
func (h *CarHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "El id debe ser un número entero")
		return
	}

	car, err := h.catalog.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			writeError(w, http.StatusNotFound, "Auto no encontrado")
			return
		}
		h.log.Errorw("error consultando el auto", "stock_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, car)
}
