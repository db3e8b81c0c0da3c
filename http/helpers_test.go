package http

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"car-agent/domain"
	"car-agent/repository"
	"car-agent/service"
)

var errProvider = errors.New("provider down")

type fakeCatalog struct {
	cars      []domain.Car
	lastPrefs domain.Preferences
}

func (f *fakeCatalog) Filter(prefs domain.Preferences) []domain.Car {
	f.lastPrefs = prefs
	matches := make([]domain.Car, 0, len(f.cars))
	for _, car := range f.cars {
		if prefs.Budget != nil && car.Price > *prefs.Budget {
			continue
		}
		matches = append(matches, car)
	}
	return matches
}

func (f *fakeCatalog) GetByID(stockID int) (domain.Car, error) {
	for _, car := range f.cars {
		if car.StockID == stockID {
			return car, nil
		}
	}
	return domain.Car{}, repository.ErrCarNotFound
}

func (f *fakeCatalog) Len() int { return len(f.cars) }

type fakeAI struct {
	reply       string
	completeErr error
}

func (f *fakeAI) ExtractPreferences(ctx context.Context, message string) domain.Preferences {
	return domain.Preferences{}
}

func (f *fakeAI) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, params service.CompletionParams) (string, error) {
	if f.completeErr != nil {
		return "", f.completeErr
	}
	return f.reply, nil
}

type fakeSender struct {
	sentTo   []string
	sentBody []string
	sendErr  error
}

func (f *fakeSender) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sentTo = append(f.sentTo, to)
	f.sentBody = append(f.sentBody, body)
	return "SM0001", nil
}

func newTestChatService(ai service.AIProvider) *service.ChatService {
	return service.NewChatService(ai, &fakeCatalog{}, zap.NewNop().Sugar())
}
