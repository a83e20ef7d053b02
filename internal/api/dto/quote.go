package dto

type QuoteRequest struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type QuoteResponse struct {
	Fee        float64 `json:"fee"`
	DistanceKm float64 `json:"distance_km"`
	RoundedKm  float64 `json:"rounded_km"`
}

// OutOfCoverageResponse is a business outcome, not an error: the address is
// valid but only deliverable by manual quote.
type OutOfCoverageResponse struct {
	OutOfCoverage bool   `json:"out_of_coverage"`
	Message       string `json:"message"`
}
