package pricing

import (
	"fmt"
	"math"
)

// percentSumTolerance absorbs float noise when checking that the three
// commission percentages add up to 100.
const percentSumTolerance = 1e-9

// Validate checks the structural integrity of a configuration. It is meant
// to run wherever a configuration enters the process (database load, file
// load, admin update); Calculate trusts the Config it is handed.
func (c Config) Validate() error {
	if len(c.Tiers) == 0 {
		return fmt.Errorf("pricing config has no tiers")
	}
	if len(c.Urgencies) == 0 {
		return fmt.Errorf("pricing config has no urgency options")
	}
	if len(c.Complexities) == 0 {
		return fmt.Errorf("pricing config has no complexity options")
	}

	seen := make(map[string]bool, len(c.Tiers))
	for _, t := range c.Tiers {
		if t.ID == "" {
			return fmt.Errorf("tier %q has an empty id", t.Name)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate tier id %q", t.ID)
		}
		seen[t.ID] = true
		if t.BasePricePerPage <= 0 || !isFiniteNumber(t.BasePricePerPage) {
			return fmt.Errorf("tier %q: base price per page must be positive", t.ID)
		}
		if t.BasePricePerWord <= 0 || !isFiniteNumber(t.BasePricePerWord) {
			return fmt.Errorf("tier %q: base price per word must be positive", t.ID)
		}
	}

	seen = make(map[string]bool, len(c.Urgencies))
	for _, u := range c.Urgencies {
		if u.ID == "" {
			return fmt.Errorf("urgency option %q has an empty id", u.Name)
		}
		if seen[u.ID] {
			return fmt.Errorf("duplicate urgency id %q", u.ID)
		}
		seen[u.ID] = true
		if u.Multiplier < 1 || !isFiniteNumber(u.Multiplier) {
			return fmt.Errorf("urgency %q: multiplier must be at least 1.0", u.ID)
		}
		if u.Hours <= 0 {
			return fmt.Errorf("urgency %q: turnaround hours must be positive", u.ID)
		}
	}

	seen = make(map[string]bool, len(c.Complexities))
	for _, x := range c.Complexities {
		if x.ID == "" {
			return fmt.Errorf("complexity option %q has an empty id", x.Name)
		}
		if seen[x.ID] {
			return fmt.Errorf("duplicate complexity id %q", x.ID)
		}
		seen[x.ID] = true
		if x.Multiplier < 1 || !isFiniteNumber(x.Multiplier) {
			return fmt.Errorf("complexity %q: multiplier must be at least 1.0", x.ID)
		}
	}

	return c.Commission.Validate()
}

// Validate checks that each percentage is within [0, 100] and that the
// three together partition exactly 100%. A split that does not sum to 100
// would silently leak or invent money, so it is rejected up front.
func (r CommissionRates) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"executor", r.ExecutorPct},
		{"reviewer", r.ReviewerPct},
		{"platform", r.PlatformPct},
	} {
		if p.value < 0 || p.value > 100 || !isFiniteNumber(p.value) {
			return fmt.Errorf("%s percentage must be between 0 and 100, got %v", p.name, p.value)
		}
	}

	sum := r.ExecutorPct + r.ReviewerPct + r.PlatformPct
	if math.Abs(sum-100) > percentSumTolerance {
		return fmt.Errorf("commission percentages must sum to 100, got %v", sum)
	}
	return nil
}

func isFiniteNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
