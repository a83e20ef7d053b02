package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"delivery-fee-service/internal/api/dto"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/ports"
	"delivery-fee-service/internal/services"
)

// CEPHandler exposes the postal-directory lookup the order form uses while
// the customer types their CEP.
type CEPHandler struct {
	Directory ports.PostalDirectory
}

func (h *CEPHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CEPLookupRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	addr, err := services.LookupPostalCode(r.Context(), req.CEP, h.Directory)
	if err != nil {
		log.Printf("cep lookup failed: %v", err)
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CEPLookupResponse{
		CEP:          domain.FormatCEP(req.CEP),
		Street:       addr.Street,
		Neighborhood: addr.Neighborhood,
		City:         addr.City,
		State:        addr.State,
	})
}
