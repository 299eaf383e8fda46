package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS builds the CORS policy for the browser client. X-API-Key and
// X-Time-Token are allowed so internal tooling can reach the protected
// recompute endpoint cross-origin.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-API-Key",
			"X-Time-Token",
		},
		ExposedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
