package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"delivery-fee-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps the fee-resolution error taxonomy onto HTTP status
// codes and the storefront's user-facing messages. Transient and terminal
// failures keep distinct statuses so the UI knows whether re-prompting the
// customer or plain retrying is the right move.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, "Endereço incompleto. Informe CEP, rua, número e cidade.")
	case errors.Is(err, domain.ErrCEPNotFound):
		writeError(w, r, http.StatusNotFound, "CEP não encontrado. Verifique e tente novamente.")
	case errors.Is(err, domain.ErrAddressNotFound):
		writeError(w, r, http.StatusNotFound, "Endereço não encontrado. Verifique o CEP, rua e número.")
	case errors.Is(err, domain.ErrRouteNotFound):
		writeError(w, r, http.StatusUnprocessableEntity, "Não foi possível calcular a rota até o endereço informado.")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "Serviço temporariamente indisponível. Tente novamente.")
	default:
		writeError(w, r, http.StatusInternalServerError, "Erro interno do servidor. Tente novamente.")
	}
}
