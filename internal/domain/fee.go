package domain

import (
	"errors"
	"fmt"
	"math"
)

// FeeTier maps a maximum rounded distance (inclusive) to a delivery fee.
type FeeTier struct {
	MaxKm float64
	Fee   float64
}

// FeeTable is an ordered tier list, ascending by MaxKm with non-decreasing
// fees. It is built once at startup and read concurrently without locking.
type FeeTable []FeeTier

// DefaultFeeTable covers deliveries up to 4 km from the restaurant.
// Fees are in BRL; formatting is the caller's concern.
func DefaultFeeTable() FeeTable {
	return FeeTable{
		{MaxKm: 1.0, Fee: 7.00},
		{MaxKm: 1.5, Fee: 8.50},
		{MaxKm: 2.0, Fee: 9.50},
		{MaxKm: 2.5, Fee: 11.00},
		{MaxKm: 3.0, Fee: 12.00},
		{MaxKm: 3.5, Fee: 13.50},
		{MaxKm: 4.0, Fee: 15.00},
	}
}

// Validate checks the table invariants: non-empty, strictly ascending bounds,
// monotonically non-decreasing fees, no negative values.
func (t FeeTable) Validate() error {
	if len(t) == 0 {
		return errors.New("fee table: must have at least one tier")
	}
	for i, tier := range t {
		if tier.MaxKm <= 0 || tier.Fee < 0 {
			return fmt.Errorf("fee table: tier %d has invalid bounds (max_km=%.2f fee=%.2f)", i, tier.MaxKm, tier.Fee)
		}
		if i == 0 {
			continue
		}
		if tier.MaxKm <= t[i-1].MaxKm {
			return fmt.Errorf("fee table: tier %d max_km %.2f not above previous %.2f", i, tier.MaxKm, t[i-1].MaxKm)
		}
		if tier.Fee < t[i-1].Fee {
			return fmt.Errorf("fee table: tier %d fee %.2f below previous %.2f", i, tier.Fee, t[i-1].Fee)
		}
	}
	return nil
}

// FeeFor returns the fee for a rounded distance, scanning tiers in order.
// ok is false when the distance exceeds the largest bound (out of coverage).
func (t FeeTable) FeeFor(roundedKm float64) (fee float64, ok bool) {
	for _, tier := range t {
		if roundedKm <= tier.MaxKm {
			return tier.Fee, true
		}
	}
	return 0, false
}

// MaxKm returns the coverage limit of the table.
func (t FeeTable) MaxKm() float64 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].MaxKm
}

// RoundHalfKm rounds a distance to the nearest half kilometer.
// The result is always a non-negative multiple of 0.5 and the
// function is idempotent over its own output.
func RoundHalfKm(km float64) float64 {
	return math.Round(km*2) / 2
}
