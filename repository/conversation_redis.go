package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"car-agent/domain"
)

// RedisConversationStore guarda el historial en Redis con expiración
// por conversación, para despliegues con varias réplicas o donde el
// conjunto de remitentes debe estar acotado por TTL.
//
// Los errores de Redis se registran y degradan a historial vacío o a
// descartar el turno: una conversación nunca falla por el almacén.
type RedisConversationStore struct {
	client *redis.Client
	ttl    time.Duration
	ctx    context.Context
	log    *zap.SugaredLogger
}

func NewRedisConversationStore(addr string, ttl time.Duration, log *zap.SugaredLogger) *RedisConversationStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisConversationStore{
		client: rdb,
		ttl:    ttl,
		ctx:    context.Background(),
		log:    log,
	}
}

func conversationKey(id string) string {
	return "conversation:" + id
}

func (s *RedisConversationStore) GetHistory(conversationID string) []domain.Message {
	values, err := s.client.LRange(s.ctx, conversationKey(conversationID), 0, -1).Result()
	if err != nil {
		s.log.Errorw("error leyendo historial de redis",
			"conversation", conversationID, "error", err)
		return nil
	}

	history := make([]domain.Message, 0, len(values))
	for _, raw := range values {
		var msg domain.Message
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			s.log.Warnw("mensaje corrupto en el historial, descartado",
				"conversation", conversationID, "error", err)
			continue
		}
		history = append(history, msg)
	}
	return history
}

func (s *RedisConversationStore) AppendTurn(conversationID string, msg domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.log.Errorw("no se pudo serializar el turno", "error", err)
		return
	}

	key := conversationKey(conversationID)
	pipe := s.client.TxPipeline()
	pipe.RPush(s.ctx, key, data)
	pipe.LTrim(s.ctx, key, -int64(domain.MaxHistoryMessages), -1)
	pipe.Expire(s.ctx, key, s.ttl)
	if _, err := pipe.Exec(s.ctx); err != nil {
		s.log.Errorw("error guardando turno en redis",
			"conversation", conversationID, "error", err)
	}
}
