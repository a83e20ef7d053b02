package api

import (
	"net/http"

	"delivery-fee-service/internal/api/handlers"
	"delivery-fee-service/internal/ports"
	"delivery-fee-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(directory ports.PostalDirectory, quoteDeps services.QuoteDeps, whatsappPhone string) http.Handler {
	mux := http.NewServeMux()

	cepHandler := &handlers.CEPHandler{Directory: directory}
	quoteHandler := &handlers.QuoteHandler{Deps: quoteDeps}
	orderHandler := &handlers.OrderHandler{Phone: whatsappPhone}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/cep/lookup", cepHandler.Lookup)
	mux.HandleFunc("/delivery/quote", quoteHandler.Quote)
	mux.HandleFunc("/orders/message", orderHandler.Message)

	return requestIDMiddleware(loggingMiddleware(mux))
}
