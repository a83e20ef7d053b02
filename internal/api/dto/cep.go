package dto

type CEPLookupRequest struct {
	CEP string `json:"cep"`
}

type CEPLookupResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}
