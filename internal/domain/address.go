package domain

import "strings"

// Address is a structured Brazilian street address assembled for one
// fee-resolution request. It never outlives the request that built it.
type Address struct {
	Street       string
	Number       string
	Neighborhood string
	City         string
	State        string
	CEP          string // digits only, 8 when valid
}

// PartialAddress is what a postal-directory lookup can fill in on its own.
// House number and complement come from the customer afterwards.
type PartialAddress struct {
	Street       string
	Neighborhood string
	City         string
	State        string
}

// NormalizeCEP strips everything but digits from a raw postal code.
func NormalizeCEP(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCEP reports whether raw normalizes to exactly 8 digits.
func ValidCEP(raw string) bool {
	return len(NormalizeCEP(raw)) == 8
}

// FormatCEP renders an 8-digit code as "79331-000" for display.
// Anything else is returned unchanged.
func FormatCEP(raw string) string {
	clean := NormalizeCEP(raw)
	if len(clean) != 8 {
		return raw
	}
	return clean[:5] + "-" + clean[5:]
}

// Freeform joins the available address parts into a single comma-separated
// geocoding query string, ending with the country.
func (a Address) Freeform() string {
	parts := make([]string, 0, 7)
	for _, p := range []string{a.Street, a.Number, a.Neighborhood, a.City, a.State, FormatCEP(a.CEP)} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	parts = append(parts, "Brasil")
	return strings.Join(parts, ", ")
}
