package repository

import "car-agent/domain"

// ConversationStore guarda el historial acotado de cada conversación,
// indexado por identificador del remitente (número de WhatsApp).
type ConversationStore interface {
	// GetHistory devuelve el historial del remitente, vacío si no se
	// ha visto antes.
	GetHistory(conversationID string) []domain.Message
	// AppendTurn agrega un turno y trunca el historial a los últimos
	// domain.MaxHistoryMessages mensajes.
	AppendTurn(conversationID string, msg domain.Message)
}
