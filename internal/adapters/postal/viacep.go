package postal

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"delivery-fee-service/internal/domain"
	"delivery-fee-service/internal/platform/obs"
)

// ViaCEPClient resolves Brazilian postal codes against the public ViaCEP
// directory. No retries: a failed lookup is surfaced immediately so the
// customer can correct the code and try again.
type ViaCEPClient struct {
	session *http.Client
	baseURL string
}

func NewViaCEPClient() *ViaCEPClient {
	return &ViaCEPClient{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://viacep.com.br",
	}
}

// NewViaCEPClientWithBase is used by tests to point at a fake directory.
func NewViaCEPClientWithBase(baseURL string, session *http.Client) *ViaCEPClient {
	if session == nil {
		session = &http.Client{Timeout: 10 * time.Second}
	}
	return &ViaCEPClient{session: session, baseURL: baseURL}
}

type viaCEPResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Erro         bool   `json:"erro"`
}

// Lookup fetches the directory record for a postal code. The code is
// normalized here as well, so no malformed input ever reaches the wire.
func (v *ViaCEPClient) Lookup(ctx context.Context, cep string) (_ domain.PartialAddress, err error) {
	defer obs.Time(ctx, "viacep.lookup")(&err)

	clean := domain.NormalizeCEP(cep)
	if len(clean) != 8 {
		return domain.PartialAddress{}, fmt.Errorf("viacep: code %q is not 8 digits: %w", cep, domain.ErrInvalidInput)
	}

	url := fmt.Sprintf("%s/ws/%s/json/", v.baseURL, clean)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.PartialAddress{}, fmt.Errorf("viacep: create request: %w", err)
	}

	resp, err := v.session.Do(req)
	if err != nil {
		log.Printf("op=viacep.lookup cep=%s transport_err=%v", clean, err)
		return domain.PartialAddress{}, fmt.Errorf("viacep: request failed: %w", domain.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("op=viacep.lookup cep=%s status=%d", clean, resp.StatusCode)
		return domain.PartialAddress{}, fmt.Errorf("viacep: unexpected status %d: %w", resp.StatusCode, domain.ErrServiceUnavailable)
	}

	var decoded viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.PartialAddress{}, fmt.Errorf("viacep: decode response: %w", domain.ErrServiceUnavailable)
	}

	// "not found" is a clean 200 with {"erro": true}; logged apart from
	// transport failures because only one of them is the customer's typo.
	if decoded.Erro {
		log.Printf("op=viacep.lookup cep=%s result=not_found", clean)
		return domain.PartialAddress{}, fmt.Errorf("viacep: no record for %s: %w", clean, domain.ErrCEPNotFound)
	}

	return domain.PartialAddress{
		Street:       decoded.Street,
		Neighborhood: decoded.Neighborhood,
		City:         decoded.City,
		State:        decoded.State,
	}, nil
}
