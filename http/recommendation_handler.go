package http

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"car-agent/domain"
	"car-agent/repository"
)

type RecommendationHandler struct {
	catalog repository.CatalogRepository
	log     *zap.SugaredLogger
}

func NewRecommendationHandler(catalog repository.CatalogRepository, log *zap.SugaredLogger) *RecommendationHandler {
	return &RecommendationHandler{catalog: catalog, log: log}
}

// Recommend atiende POST /api/recommendations con cualquier
// subconjunto de los campos de preferencia.
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Warnw("error leyendo la solicitud", "error", err)
		writeError(w, http.StatusBadRequest, "Se requieren preferencias")
		return
	}

	prefs, dropped, err := domain.DecodePreferences(body)
	if err != nil {
		h.log.Warnw("solicitud de recomendaciones inválida", "error", err)
		writeError(w, http.StatusBadRequest, "Se requieren preferencias")
		return
	}
	for _, field := range dropped {
		h.log.Warnw("valor de preferencia inválido, se descarta", "field", field)
	}

	recommendations := h.catalog.Filter(prefs)
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recommendations})
}
