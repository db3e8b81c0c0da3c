// Package metrics expone los histogramas de latencia del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogLatency mide la duración del filtrado del catálogo.
	CatalogLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "car_agent",
		Name:      "catalog_filter_duration_ms",
		Help:      "Duración del filtrado del catálogo en milisegundos.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	// LLMLatency mide la duración de cada llamada al modelo de lenguaje.
	LLMLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "car_agent",
		Name:      "llm_request_duration_ms",
		Help:      "Duración de las llamadas al LLM en milisegundos.",
		Buckets:   prometheus.ExponentialBuckets(25, 2, 12),
	})

	// WebhookLatency mide la duración total del webhook de WhatsApp.
	WebhookLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "car_agent",
		Name:      "whatsapp_webhook_duration_ms",
		Help:      "Duración del webhook de WhatsApp en milisegundos.",
		Buckets:   prometheus.ExponentialBuckets(25, 2, 12),
	})

	// MessagesSent cuenta los mensajes de WhatsApp entregados.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "car_agent",
		Name:      "whatsapp_messages_sent_total",
		Help:      "Mensajes de WhatsApp enviados con éxito.",
	})
)
