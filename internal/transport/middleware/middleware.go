// Package middleware holds the HTTP middleware mounted on the estimate API
// router: request IDs, access logging, panic recovery, CORS and per-client
// rate limiting of document downloads.
package middleware

import (
	"encoding/json"
	"net/http"
)

// Middleware wraps an http.Handler. It matches chi's Use signature.
type Middleware = func(http.Handler) http.Handler

// writeError writes the API's {"error": msg} envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
