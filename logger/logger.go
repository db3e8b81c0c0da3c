package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New construye el logger de la aplicación. En producción emite JSON
// estructurado; en desarrollo, salida legible en consola.
func New(env string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	zapLogger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return zapLogger.Sugar(), nil
}
