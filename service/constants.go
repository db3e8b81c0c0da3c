package service

const (
	MaxCarPrice      = 100_000_000.0 // 100 millones
	MaxMessageLength = 4000          // caracteres por mensaje de chat

	// messageLogPreview limita cuántos caracteres del mensaje del
	// usuario se escriben en los logs.
	messageLogPreview = 100
)
