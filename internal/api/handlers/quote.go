package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"delivery-fee-service/internal/api/dto"
	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/services"
)

// QuoteHandler runs the full fee-resolution pipeline for one address.
type QuoteHandler struct {
	Deps services.QuoteDeps
}

func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.QuoteRequest

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

	result, err := services.QuoteDeliveryFee(r.Context(), services.QuoteRequest{
		CEP:          req.CEP,
		Street:       req.Street,
		Number:       req.Number,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
	}, h.Deps)

	// Out of coverage is a valid outcome: the address exists, the kitchen
	// just needs to quote it by hand. Not presented as an error banner.
	if errors.Is(err, domain.ErrOutOfCoverage) {
		writeJSON(w, r, http.StatusUnprocessableEntity, dto.OutOfCoverageResponse{
			OutOfCoverage: true,
			Message:       "Endereço fora da área de entrega. Entrega somente com orçamento manual.",
		})
		return
	}
	if err != nil {
		log.Printf("quote delivery fee failed: %v", err)
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.QuoteResponse{
		Fee:        result.Fee,
		DistanceKm: result.DistanceKm,
		RoundedKm:  result.RoundedKm,
	})
}
