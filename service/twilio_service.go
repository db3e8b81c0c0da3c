package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TwilioService envía mensajes de WhatsApp a través de la API REST de
// Twilio.
type TwilioService struct {
	accountSID string
	authToken  string
	fromNumber string
	apiURL     string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

func NewTwilioService(accountSID, authToken, fromNumber string, log *zap.SugaredLogger) *TwilioService {
	return &TwilioService{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		apiURL:     fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", accountSID),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// SendWhatsApp entrega un mensaje al número destino y devuelve el SID
// asignado por Twilio.
func (s *TwilioService) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	s.log.Infow("enviando mensaje de WhatsApp", "to", to)

	form := url.Values{}
	form.Set("From", "whatsapp:"+s.fromNumber)
	form.Set("To", to)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("twilio API error (status %d): %s", resp.StatusCode, string(payload))
	}

	var result struct {
		SID string `json:"sid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	s.log.Infow("mensaje enviado correctamente", "sid", result.SID)
	return result.SID, nil
}
