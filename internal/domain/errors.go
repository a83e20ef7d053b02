package domain

import "errors"

// Outcome taxonomy for one fee-resolution request. Callers branch with
// errors.Is; adapters wrap these with fmt.Errorf("...: %w", err) so the
// transport detail stays in the chain for logging.
var (
	// ErrInvalidInput: request rejected before any network call
	// (malformed CEP, missing street/number/city).
	ErrInvalidInput = errors.New("invalid input")

	// ErrCEPNotFound: the postal directory explicitly reported no match.
	ErrCEPNotFound = errors.New("cep not found")

	// ErrAddressNotFound: both structured and freeform geocoding
	// returned zero candidates.
	ErrAddressNotFound = errors.New("address not found")

	// ErrServiceUnavailable: a transient transport or upstream failure;
	// the caller may retry the whole resolution.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrRouteNotFound: the routing service answered but found no
	// driving route between origin and destination.
	ErrRouteNotFound = errors.New("route not found")

	// ErrOutOfCoverage: a valid address whose distance exceeds the fee
	// table. A business outcome, not a fault.
	ErrOutOfCoverage = errors.New("out of delivery coverage")
)
