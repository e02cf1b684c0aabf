package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS applies the configured origin allow-list. Credentials are allowed so the access cookie travels.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "HX-Request", "HX-Current-URL", "HX-Target"},
		ExposedHeaders:   []string{"HX-Location", "HX-Replace-Url", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
