package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotComputable indicates that no quote can be derived yet because the
// job has no usable quantity. It is an expected intermediate state, not a
// failure: the caller simply has nothing to show.
var ErrNotComputable = errors.New("quote not computable")

// UnknownSelectionError indicates that a requested tier, urgency or
// complexity id does not exist in the configuration. No default is ever
// substituted.
type UnknownSelectionError struct {
	Field string
	ID    string
}

func (e *UnknownSelectionError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Field, e.ID)
}

// Tier is a named service level with its own base rates.
type Tier struct {
	ID               string
	Name             string
	Description      string
	BasePricePerPage float64
	BasePricePerWord float64
}

// UrgencyOption is a delivery-speed choice with a surcharge factor.
type UrgencyOption struct {
	ID          string
	Name        string
	Hours       float64
	Multiplier  float64
	Description string
}

// ComplexityOption is a topic-difficulty choice with a surcharge factor.
// Examples are display labels only; they never enter the calculation.
type ComplexityOption struct {
	ID          string
	Name        string
	Multiplier  float64
	Description string
	Examples    []string
}

// CommissionRates holds the three-way percentage split of a quoted price.
type CommissionRates struct {
	ExecutorPct float64
	ReviewerPct float64
	PlatformPct float64
}

// Config is the full pricing configuration. It is an immutable value passed
// explicitly into every calculation; the engine keeps no ambient state.
type Config struct {
	Tiers        []Tier
	Urgencies    []UrgencyOption
	Complexities []ComplexityOption
	Commission   CommissionRates
	Currency     string
}

// TierByID returns the tier with the given id, if present.
func (c Config) TierByID(id string) (Tier, bool) {
	for _, t := range c.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

// UrgencyByID returns the urgency option with the given id, if present.
func (c Config) UrgencyByID(id string) (UrgencyOption, bool) {
	for _, u := range c.Urgencies {
		if u.ID == id {
			return u, true
		}
	}
	return UrgencyOption{}, false
}

// ComplexityByID returns the complexity option with the given id, if present.
func (c Config) ComplexityByID(id string) (ComplexityOption, bool) {
	for _, x := range c.Complexities {
		if x.ID == id {
			return x, true
		}
	}
	return ComplexityOption{}, false
}

// SizingMode selects which base rate applies to a job.
type SizingMode string

const (
	ModePages SizingMode = "pages"
	ModeWords SizingMode = "words"
)

// Sizing is the job's single quantity measure. It can only be built through
// Pages or Words, so a job never carries both counts at once; the zero value
// means no quantity has been entered yet.
type Sizing struct {
	mode  SizingMode
	count float64
}

// Pages sizes a job by page count.
func Pages(count float64) Sizing { return Sizing{mode: ModePages, count: count} }

// Words sizes a job by word count.
func Words(count float64) Sizing { return Sizing{mode: ModeWords, count: count} }

// Mode reports the active sizing mode, or "" when no quantity has been set.
func (s Sizing) Mode() SizingMode { return s.mode }

// Count reports the raw quantity.
func (s Sizing) Count() float64 { return s.count }

// JobParameters describes one quote request.
type JobParameters struct {
	TierID       string
	UrgencyID    string
	ComplexityID string
	Size         Sizing
}

// CommissionSplit is the three-way division of a total price.
type CommissionSplit struct {
	ExecutorPayout     float64
	ReviewerCommission float64
	PlatformFee        float64
}

// Breakdown is the computed quote. It is a plain value recomputed on every
// call; the applied factors are carried for display only.
type Breakdown struct {
	BasePrice          float64 `json:"base_price"`
	TotalPrice         float64 `json:"total_price"`
	ExecutorPayout     float64 `json:"executor_payout"`
	ReviewerCommission float64 `json:"reviewer_commission"`
	PlatformFee        float64 `json:"platform_fee"`
	UrgencyFactor      float64 `json:"urgency_multiplier"`
	ComplexityFactor   float64 `json:"complexity_multiplier"`
}

// Calculate resolves the job's selections against cfg and derives the full
// price breakdown. An id with no match returns *UnknownSelectionError; a
// missing or non-positive quantity returns ErrNotComputable.
func Calculate(cfg Config, params JobParameters) (Breakdown, error) {
	tier, ok := cfg.TierByID(params.TierID)
	if !ok {
		return Breakdown{}, &UnknownSelectionError{Field: "tier", ID: params.TierID}
	}
	urgency, ok := cfg.UrgencyByID(params.UrgencyID)
	if !ok {
		return Breakdown{}, &UnknownSelectionError{Field: "urgency", ID: params.UrgencyID}
	}
	complexity, ok := cfg.ComplexityByID(params.ComplexityID)
	if !ok {
		return Breakdown{}, &UnknownSelectionError{Field: "complexity", ID: params.ComplexityID}
	}

	if params.Size.mode == "" {
		return Breakdown{}, fmt.Errorf("%w: no quantity entered", ErrNotComputable)
	}
	count := params.Size.count
	if count <= 0 || math.IsNaN(count) || math.IsInf(count, 0) {
		return Breakdown{}, fmt.Errorf("%w: quantity must be a positive number", ErrNotComputable)
	}

	var basePrice float64
	switch params.Size.mode {
	case ModePages:
		basePrice = tier.BasePricePerPage * count
	case ModeWords:
		basePrice = tier.BasePricePerWord * count
	default:
		return Breakdown{}, fmt.Errorf("%w: no quantity entered", ErrNotComputable)
	}

	totalPrice := basePrice * urgency.Multiplier * complexity.Multiplier
	split := SplitCommission(totalPrice, cfg.Commission)

	return Breakdown{
		BasePrice:          basePrice,
		TotalPrice:         totalPrice,
		ExecutorPayout:     split.ExecutorPayout,
		ReviewerCommission: split.ReviewerCommission,
		PlatformFee:        split.PlatformFee,
		UrgencyFactor:      urgency.Multiplier,
		ComplexityFactor:   complexity.Multiplier,
	}, nil
}

// SplitCommission partitions totalPrice per the configured percentages.
// No rounding happens here; rounding belongs to the presentation layer so
// the three shares always reconstruct the total.
func SplitCommission(totalPrice float64, rates CommissionRates) CommissionSplit {
	return CommissionSplit{
		ExecutorPayout:     totalPrice * rates.ExecutorPct / 100,
		ReviewerCommission: totalPrice * rates.ReviewerPct / 100,
		PlatformFee:        totalPrice * rates.PlatformPct / 100,
	}
}
