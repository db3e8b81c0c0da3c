// Package config carga la configuración de la aplicación desde
// variables de entorno, con valores por defecto razonables. Se lee una
// sola vez al arrancar.
package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port   string
	AppEnv string

	// OpenAI
	OpenAIAPIKey string
	OpenAIModel  string
	LLMTimeout   time.Duration

	// Twilio
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// Catálogo
	CatalogPath string

	// Financiamiento
	InterestRate float64
	MinTerm      int
	MaxTerm      int

	// Registro de conversaciones. Con REDIS_ADDR vacío se usa el
	// almacén en memoria.
	RedisAddr       string
	ConversationTTL time.Duration
}

func Load() *Config {
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	viper.SetDefault("LLM_TIMEOUT", "30s")
	viper.SetDefault("CATALOG_PATH", "data/catalog.csv")
	viper.SetDefault("INTEREST_RATE", 0.10)
	viper.SetDefault("MIN_TERM", 36)
	viper.SetDefault("MAX_TERM", 72)
	viper.SetDefault("CONVERSATION_TTL", "24h")

	return &Config{
		Port:              viper.GetString("PORT"),
		AppEnv:            viper.GetString("APP_ENV"),
		OpenAIAPIKey:      viper.GetString("OPENAI_API_KEY"),
		OpenAIModel:       viper.GetString("OPENAI_MODEL"),
		LLMTimeout:        viper.GetDuration("LLM_TIMEOUT"),
		TwilioAccountSID:  viper.GetString("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   viper.GetString("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber: viper.GetString("TWILIO_PHONE_NUMBER"),
		CatalogPath:       viper.GetString("CATALOG_PATH"),
		InterestRate:      viper.GetFloat64("INTEREST_RATE"),
		MinTerm:           viper.GetInt("MIN_TERM"),
		MaxTerm:           viper.GetInt("MAX_TERM"),
		RedisAddr:         viper.GetString("REDIS_ADDR"),
		ConversationTTL:   viper.GetDuration("CONVERSATION_TTL"),
	}
}
