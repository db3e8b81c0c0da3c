package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"car-agent/domain"
	"car-agent/metrics"
	"car-agent/repository"
	"car-agent/service"
)

// MessageSender entrega la respuesta por el canal de mensajería.
type MessageSender interface {
	SendWhatsApp(ctx context.Context, to, body string) (string, error)
}

// WhatsAppHandler recibe los callbacks del proveedor de mensajería,
// mantiene el registro de conversaciones por remitente y despacha la
// respuesta generada.
type WhatsAppHandler struct {
	chat   *service.ChatService
	store  repository.ConversationStore
	sender MessageSender
	log    *zap.SugaredLogger
}

func NewWhatsAppHandler(
	chat *service.ChatService,
	store repository.ConversationStore,
	sender MessageSender,
	log *zap.SugaredLogger,
) *WhatsAppHandler {
	return &WhatsAppHandler{chat: chat, store: store, sender: sender, log: log}
}

// Webhook atiende POST /whatsapp/webhook con los campos de formulario
// Body y From del proveedor.
func (h *WhatsAppHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.WebhookLatency.Observe(float64(time.Since(start).Milliseconds()))
	}()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "error leyendo la solicitud")
		return
	}

	messageBody := r.FormValue("Body")
	fromNumber := r.FormValue("From")
	if strings.TrimSpace(messageBody) == "" || strings.TrimSpace(fromNumber) == "" {
		h.log.Warnw("webhook sin Body o From")
		writeError(w, http.StatusBadRequest, "Faltan los parámetros Body o From")
		return
	}

	h.log.Infow("mensaje de WhatsApp recibido", "from", fromNumber)

	history := h.store.GetHistory(fromNumber)
	response := h.chat.Respond(r.Context(), messageBody, history)

	if response != "" {
		h.store.AppendTurn(fromNumber, domain.Message{
			Role:    domain.RoleUser,
			Content: messageBody,
		})
		h.store.AppendTurn(fromNumber, domain.Message{
			Role:    domain.RoleAssistant,
			Content: response,
		})

		// El fallo de entrega no revierte el historial ni la
		// respuesta al proveedor.
		if _, err := h.sender.SendWhatsApp(r.Context(), fromNumber, response); err != nil {
			h.log.Errorw("error enviando mensaje de WhatsApp",
				"to", fromNumber, "error", err)
		} else {
			metrics.MessagesSent.Inc()
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
