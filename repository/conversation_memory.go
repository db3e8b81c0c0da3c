package repository

import (
	"sync"

	"car-agent/domain"
)

// MemoryConversationStore es la implementación en memoria del registro
// de conversaciones. Vive lo que vive el proceso; no hay persistencia
// entre reinicios.
type MemoryConversationStore struct {
	mu            sync.Mutex
	conversations map[string][]domain.Message
}

func NewMemoryConversationStore() *MemoryConversationStore {
	return &MemoryConversationStore{
		conversations: make(map[string][]domain.Message),
	}
}

func (s *MemoryConversationStore) GetHistory(conversationID string) []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.conversations[conversationID]
	// Copia para que el llamador no pueda mutar el estado interno.
	out := make([]domain.Message, len(history))
	copy(out, history)
	return out
}

func (s *MemoryConversationStore) AppendTurn(conversationID string, msg domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.conversations[conversationID], msg)
	if len(history) > domain.MaxHistoryMessages {
		history = history[len(history)-domain.MaxHistoryMessages:]
	}
	s.conversations[conversationID] = history
}
