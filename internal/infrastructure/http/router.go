package httpapi

import "net/http"

func NewRouter(webhook *WebhookHandler, health *HealthHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.Handle("/", webhook)

	return mux
}
