package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"car-agent/domain"
	"car-agent/service"
)

type ChatHandler struct {
	service *service.ChatService
	log     *zap.SugaredLogger
}

func NewChatHandler(service *service.ChatService, log *zap.SugaredLogger) *ChatHandler {
	return &ChatHandler{service: service, log: log}
}

type chatRequest struct {
	Message string           `json:"message"`
	Context []domain.Message `json:"context"`
}

// Chat atiende POST /api/chat. El canal directo es sin estado: el
// historial viene explícito en el cuerpo de cada solicitud.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input chatRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Message == "" {
		h.log.Warnw("solicitud de chat inválida: falta el mensaje")
		writeError(w, http.StatusBadRequest, "Se requiere un mensaje")
		return
	}
	if len(input.Message) > service.MaxMessageLength {
		writeError(w, http.StatusBadRequest, "El mensaje es demasiado largo")
		return
	}

	response := h.service.Respond(r.Context(), input.Message, input.Context)
	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}
