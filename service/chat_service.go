package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"car-agent/domain"
	"car-agent/repository"
)

const systemPrompt = `Eres un asistente virtual de Kavak, especializado en la venta de autos seminuevos. Tu objetivo es ayudar a los clientes a encontrar el auto ideal y guiarlos en el proceso de compra.

Tienes acceso a un catálogo de autos con la siguiente información:
- ID de stock
- Kilometraje
- Precio
- Marca
- Modelo
- Año
- Versión
- Características (Bluetooth, CarPlay)
- Dimensiones (largo, ancho, altura)

Instrucciones:
1. Mantén el contexto de la conversación. No repitas saludos ni pidas información que el cliente ya proporcionó.
2. Usa la información del catálogo para hacer recomendaciones precisas y relevantes.
3. Sé profesional, claro y amable. Evita repeticiones innecesarias o mensajes largos.
4. Haz preguntas útiles que ayuden a afinar las recomendaciones.
5. Recomienda autos concretos del catálogo, incluyendo sus detalles específicos.
6. Responde exclusivamente sobre autos, Kavak y opciones de financiamiento.
7. Ignora mensajes irrelevantes (temas políticos, bromas, lenguaje ofensivo, etc.).
8. Si no tienes certeza sobre algo, dilo con claridad. No inventes información.

Recuerda:
- Es importante que menciones quien eres y que haces si hay un mensaje de saludo o introductorio, si la pregunta es especifica solo saluda, menciona que eres de Kavak y continua con la respuesta
- No repitas saludos en cada mensaje
- Mantén la conversación fluida y natural
- Enfócate en ayudar al cliente a encontrar su auto ideal
- Usa la información del catálogo para dar respuestas precisas`

// ApologyMessage es la respuesta fija ante cualquier fallo interno del
// motor de conversación.
const ApologyMessage = "Lo siento, ha ocurrido un error al procesar tu mensaje. Por favor, intenta de nuevo más tarde."

// AIProvider es el proveedor de lenguaje que consume el motor de
// conversación.
type AIProvider interface {
	ExtractPreferences(ctx context.Context, message string) domain.Preferences
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage, params CompletionParams) (string, error)
}

// ChatService orquesta cada turno de conversación: extracción de
// preferencias, filtrado del catálogo, armado del prompt y generación
// de la respuesta.
type ChatService struct {
	ai      AIProvider
	catalog repository.CatalogRepository
	log     *zap.SugaredLogger
}

func NewChatService(ai AIProvider, catalog repository.CatalogRepository, log *zap.SugaredLogger) *ChatService {
	return &ChatService{ai: ai, catalog: catalog, log: log}
}

// Respond procesa el mensaje del usuario con su historial previo y
// devuelve el texto de respuesta. Nunca devuelve error: cualquier
// fallo se absorbe y se responde con ApologyMessage.
func (s *ChatService) Respond(ctx context.Context, userMessage string, history []domain.Message) string {
	s.log.Infow("procesando mensaje del usuario", "message", preview(userMessage))

	// El registro ya trunca, pero el motor no asume que el llamador
	// cumplió.
	if len(history) > domain.MaxHistoryMessages {
		history = history[len(history)-domain.MaxHistoryMessages:]
		s.log.Debugw("historial truncado", "messages", len(history))
	}

	prefs := s.ai.ExtractPreferences(ctx, userMessage)

	var cars []domain.Car
	if !prefs.IsEmpty() {
		cars = s.catalog.Filter(prefs)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt + formatCarInfo(cars),
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	reply, err := s.ai.Complete(ctx, messages, CompletionParams{
		Temperature:      0.7,
		MaxTokens:        500,
		PresencePenalty:  0.6,
		FrequencyPenalty: 0.6,
	})
	if err != nil {
		s.log.Errorw("error generando respuesta", "error", err)
		return ApologyMessage
	}

	s.log.Infow("respuesta generada correctamente")
	return strings.TrimSpace(reply)
}

// formatCarInfo arma el bloque de autos encontrados que se anexa al
// prompt del sistema.
func formatCarInfo(cars []domain.Car) string {
	if len(cars) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\nAutos encontrados:\n")
	for _, car := range cars {
		fmt.Fprintf(&b, "- %s %s %d (%s)\n", car.Make, car.Model, car.Year, car.Version)
		fmt.Fprintf(&b, "  Precio: $%s\n", formatAmount(car.Price))
		fmt.Fprintf(&b, "  Kilometraje: %s km\n", groupThousands(strconv.FormatInt(int64(car.KM), 10)))
		if car.HasBluetooth() {
			b.WriteString("  Incluye Bluetooth\n")
		}
		if car.HasCarPlay() {
			b.WriteString("  Incluye CarPlay\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatAmount presenta un monto con separadores de miles y 2
// decimales, p. ej. 1234567.5 -> "1,234,567.50".
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	dot := strings.Index(s, ".")
	return groupThousands(s[:dot]) + s[dot:]
}

func groupThousands(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// preview recorta el mensaje para los logs sin partir una runa.
func preview(message string) string {
	if utf8.RuneCountInString(message) <= messageLogPreview {
		return message
	}
	runes := []rune(message)
	return string(runes[:messageLogPreview])
}
