package domain

// MaxHistoryMessages limita el historial de cada conversación a los
// últimos N mensajes.
const MaxHistoryMessages = 10

// Roles de los mensajes de una conversación.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message es un turno de la conversación.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
