package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"car-agent/domain"
	"car-agent/metrics"
)

const extractionPrompt = `Extrae preferencias de búsqueda de autos del mensaje.
Responde en formato JSON con las siguientes claves si están presentes:
- budget: presupuesto máximo (número)
- brand: marca del auto (string)
- model: modelo del auto (string)
- year_min: año mínimo (número)
- year_max: año máximo (número)
Si no hay preferencias, devuelve un objeto vacío.`

// CompletionParams son los parámetros de muestreo de una llamada al
// modelo.
type CompletionParams struct {
	Temperature      float32
	MaxTokens        int
	PresencePenalty  float32
	FrequencyPenalty float32
}

// AIService envuelve el cliente de chat completions de OpenAI.
type AIService struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     *zap.SugaredLogger
}

func NewAIService(apiKey, model string, timeout time.Duration, log *zap.SugaredLogger) *AIService {
	if apiKey == "" {
		log.Warnw("OPENAI_API_KEY no configurada, las llamadas al modelo fallarán")
	}
	return &AIService{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
		log:     log,
	}
}

// Complete ejecuta una chat completion con tiempo máximo acotado y
// devuelve el texto generado. Un solo intento, sin reintentos.
func (s *AIService) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, params CompletionParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:            s.model,
		Messages:         messages,
		Temperature:      params.Temperature,
		MaxTokens:        params.MaxTokens,
		PresencePenalty:  params.PresencePenalty,
		FrequencyPenalty: params.FrequencyPenalty,
	})
	metrics.LLMLatency.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("el modelo no devolvió ninguna respuesta")
	}
	return resp.Choices[0].Message.Content, nil
}

// ExtractPreferences obtiene las preferencias de búsqueda del mensaje
// del usuario. Cualquier fallo de transporte o de parseo degrada a
// preferencias vacías: una extracción fallida no bloquea la
// conversación.
func (s *AIService) ExtractPreferences(ctx context.Context, message string) domain.Preferences {
	content, err := s.Complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: extractionPrompt},
		{Role: openai.ChatMessageRoleUser, Content: message},
	}, CompletionParams{Temperature: 0.1, MaxTokens: 150})
	if err != nil {
		s.log.Errorw("error extrayendo preferencias", "error", err)
		return domain.Preferences{}
	}

	prefs, err := parsePreferences(content, s.log)
	if err != nil {
		s.log.Errorw("salida del modelo no parseable, se ignoran preferencias",
			"error", err)
		return domain.Preferences{}
	}
	return prefs
}

// parsePreferences valida la salida del modelo como JSON estricto.
// Un valor individual mal formado se descarta con una advertencia sin
// invalidar el resto del objeto.
func parsePreferences(content string, log *zap.SugaredLogger) (domain.Preferences, error) {
	raw := extractJSON(content)
	if raw == "" {
		return domain.Preferences{}, errors.New("la salida no contiene un objeto JSON")
	}

	prefs, dropped, err := domain.DecodePreferences([]byte(raw))
	if err != nil {
		return domain.Preferences{}, err
	}
	for _, field := range dropped {
		log.Warnw("valor de preferencia inválido, se descarta", "field", field)
	}
	return prefs, nil
}

// extractJSON recorta el primer objeto JSON de la respuesta, tolerando
// cercos de markdown y texto alrededor.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return ""
	}
	return content[start : end+1]
}
