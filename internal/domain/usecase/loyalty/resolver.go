package loyalty

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/podmarket/shop-backend/internal/domain/entity"
)

// Tier is one spend bracket of the loyalty program. Brackets are contiguous
// half-open intervals [MinSpend, MaxSpend) in kopecks, ascending, covering
// [0, ∞). MaxSpend == 0 marks the terminal, unbounded tier.
type Tier struct {
	MinSpend int64
	MaxSpend int64
	Rate     decimal.Decimal
	Name     string
}

// Unbounded marks the terminal tier's upper edge
const Unbounded int64 = 0

// DefaultTiers returns the production tier table. Thresholds are in kopecks
// (10 000.00 currency units = 1 000 000 kopecks).
func DefaultTiers() []Tier {
	return []Tier{
		{MinSpend: 0, MaxSpend: 1_000_000, Rate: decimal.RequireFromString("0.005"), Name: "Новичок"},
		{MinSpend: 1_000_000, MaxSpend: 2_000_000, Rate: decimal.RequireFromString("0.01"), Name: "Лояльный"},
		{MinSpend: 2_000_000, MaxSpend: 3_000_000, Rate: decimal.RequireFromString("0.02"), Name: "Постоянный"},
		{MinSpend: 3_000_000, MaxSpend: 4_000_000, Rate: decimal.RequireFromString("0.03"), Name: "Премиум"},
		{MinSpend: 4_000_000, MaxSpend: 5_000_000, Rate: decimal.RequireFromString("0.05"), Name: "VIP"},
		{MinSpend: 5_000_000, MaxSpend: Unbounded, Rate: decimal.RequireFromString("0.05"), Name: "Элита"},
	}
}

// Resolver maps cumulative spend to a loyalty tier. It is a pure calculator:
// no storage, no clock, safe for concurrent use.
type Resolver struct {
	tiers []Tier
}

// NewResolver creates a resolver over the given tier table. The table must be
// non-empty, ascending, gapless from zero and terminally unbounded.
func NewResolver(tiers []Tier) (*Resolver, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("loyalty: tier table is empty")
	}
	if tiers[0].MinSpend != 0 {
		return nil, fmt.Errorf("loyalty: first tier must start at 0, got %d", tiers[0].MinSpend)
	}
	for i, t := range tiers {
		last := i == len(tiers)-1
		if last {
			if t.MaxSpend != Unbounded {
				return nil, fmt.Errorf("loyalty: terminal tier %q must be unbounded", t.Name)
			}
			continue
		}
		if t.MaxSpend == Unbounded {
			return nil, fmt.Errorf("loyalty: only the terminal tier may be unbounded, got %q", t.Name)
		}
		if t.MaxSpend <= t.MinSpend {
			return nil, fmt.Errorf("loyalty: tier %q has max <= min", t.Name)
		}
		if tiers[i+1].MinSpend != t.MaxSpend {
			return nil, fmt.Errorf("loyalty: gap between tiers %q and %q", t.Name, tiers[i+1].Name)
		}
	}
	return &Resolver{tiers: tiers}, nil
}

// MustNewResolver is NewResolver for known-good tables (the defaults)
func MustNewResolver(tiers []Tier) *Resolver {
	r, err := NewResolver(tiers)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the tier whose [min, max) interval contains the cumulative
// spend. Boundary values fall into the higher tier. The scan is ascending and
// the first match wins; the table invariants guarantee exactly one match.
func (r *Resolver) Resolve(cumulativeSpendKopecks int64) Tier {
	if cumulativeSpendKopecks < 0 {
		cumulativeSpendKopecks = 0
	}
	for _, t := range r.tiers {
		if cumulativeSpendKopecks >= t.MinSpend &&
			(t.MaxSpend == Unbounded || cumulativeSpendKopecks < t.MaxSpend) {
			return t
		}
	}
	// Unreachable with a validated table
	return r.tiers[len(r.tiers)-1]
}

// Next returns the tier following the given one, for UI progress displays.
// Returns nil at the terminal tier.
func (r *Resolver) Next(current Tier) *Tier {
	for i, t := range r.tiers {
		if t.Name == current.Name && t.MinSpend == current.MinSpend {
			if i+1 < len(r.tiers) {
				next := r.tiers[i+1]
				return &next
			}
			return nil
		}
	}
	return nil
}

// Cashback computes the cashback for an order total at the given tier's rate,
// rounded to whole kopecks with banker's rounding (round half to even)
func (r *Resolver) Cashback(orderTotalKopecks int64, tier Tier) int64 {
	return entity.MulRounded(orderTotalKopecks, tier.Rate)
}

// TierForCashback identifies the tier whose rate reproduces a recorded
// cashback amount for the given order total, used to report a committed
// order's tier without re-resolving cumulative spend. When several tiers
// share a rate the lowest bracket wins; the rate itself is still exact.
// Returns nil when no tier matches (the table changed since the commit).
func (r *Resolver) TierForCashback(orderTotalKopecks, cashbackKopecks int64) *Tier {
	for _, t := range r.tiers {
		if entity.MulRounded(orderTotalKopecks, t.Rate) == cashbackKopecks {
			tier := t
			return &tier
		}
	}
	return nil
}

// RatePercent renders a tier's rate as a percentage for API responses
// (0.01 -> 1)
func (t Tier) RatePercent() float64 {
	percent, _ := t.Rate.Mul(decimal.NewFromInt(100)).Float64()
	return percent
}
