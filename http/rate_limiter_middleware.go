package http

import (
	"net"
	"net/http"
)

// KeyFunc obtiene la clave de rate limiting de una solicitud.
type KeyFunc func(r *http.Request) string

// ClientIPKey limita por dirección IP del cliente.
func ClientIPKey(r *http.Request) string {
	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	return ip
}

// SenderKey limita por remitente del webhook de WhatsApp, con la IP
// como respaldo si el formulario no trae From.
func SenderKey(r *http.Request) string {
	if from := r.FormValue("From"); from != "" {
		return from
	}
	return ClientIPKey(r)
}

func RateLimitMiddleware(
	limiter *RateLimiter,
	key KeyFunc,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if !limiter.Allow(key(r)) {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
