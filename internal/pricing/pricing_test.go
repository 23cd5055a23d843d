package pricing

import (
	"errors"
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func referenceConfig() Config {
	return Config{
		Tiers: []Tier{
			{ID: "basic", Name: "Basic", BasePricePerPage: 12, BasePricePerWord: 0.05},
			{ID: "standard", Name: "Standard", BasePricePerPage: 20, BasePricePerWord: 0.08},
			{ID: "premium", Name: "Premium", BasePricePerPage: 32, BasePricePerWord: 0.13},
		},
		Urgencies: []UrgencyOption{
			{ID: "standard", Name: "Standard", Hours: 120, Multiplier: 1.0},
			{ID: "72h", Name: "72 hours", Hours: 72, Multiplier: 1.15},
			{ID: "48h", Name: "48 hours", Hours: 48, Multiplier: 1.3},
			{ID: "24h", Name: "24 hours", Hours: 24, Multiplier: 1.6},
		},
		Complexities: []ComplexityOption{
			{ID: "easy", Name: "Easy", Multiplier: 1.0},
			{ID: "medium", Name: "Medium", Multiplier: 1.2},
			{ID: "hard", Name: "Hard", Multiplier: 1.5},
		},
		Commission: CommissionRates{ExecutorPct: 65, ReviewerPct: 15, PlatformPct: 20},
		Currency:   "USD",
	}
}

func TestCalculate_PagesWithMediumComplexity(t *testing.T) {
	params := JobParameters{
		TierID:       "standard",
		UrgencyID:    "standard",
		ComplexityID: "medium",
		Size:         Pages(5),
	}

	b, err := Calculate(referenceConfig(), params)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	nearlyEqual(t, "basePrice", b.BasePrice, 100)
	nearlyEqual(t, "totalPrice", b.TotalPrice, 120)
	nearlyEqual(t, "executorPayout", b.ExecutorPayout, 78)
	nearlyEqual(t, "reviewerCommission", b.ReviewerCommission, 18)
	nearlyEqual(t, "platformFee", b.PlatformFee, 24)
	nearlyEqual(t, "urgencyFactor", b.UrgencyFactor, 1.0)
	nearlyEqual(t, "complexityFactor", b.ComplexityFactor, 1.2)
}

func TestCalculate_RushHardJob(t *testing.T) {
	params := JobParameters{
		TierID:       "standard",
		UrgencyID:    "48h",
		ComplexityID: "hard",
		Size:         Pages(5),
	}

	b, err := Calculate(referenceConfig(), params)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	nearlyEqual(t, "basePrice", b.BasePrice, 100)
	nearlyEqual(t, "totalPrice", b.TotalPrice, 195)
	nearlyEqual(t, "executorPayout", b.ExecutorPayout, 126.75)
	nearlyEqual(t, "reviewerCommission", b.ReviewerCommission, 29.25)
	nearlyEqual(t, "platformFee", b.PlatformFee, 39)
}

func TestCalculate_WordsWithUnitFactors(t *testing.T) {
	params := JobParameters{
		TierID:       "standard",
		UrgencyID:    "standard",
		ComplexityID: "easy",
		Size:         Words(2500),
	}

	b, err := Calculate(referenceConfig(), params)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	nearlyEqual(t, "basePrice", b.BasePrice, 200)
	nearlyEqual(t, "totalPrice", b.TotalPrice, 200)
	nearlyEqual(t, "executorPayout", b.ExecutorPayout, 130)
	nearlyEqual(t, "reviewerCommission", b.ReviewerCommission, 30)
	nearlyEqual(t, "platformFee", b.PlatformFee, 40)
}

func TestCalculate_UnitFactorsKeepTotalEqualToBase(t *testing.T) {
	cfg := referenceConfig()
	for _, size := range []Sizing{Pages(3), Words(1200)} {
		b, err := Calculate(cfg, JobParameters{
			TierID:       "premium",
			UrgencyID:    "standard",
			ComplexityID: "easy",
			Size:         size,
		})
		if err != nil {
			t.Fatalf("Calculate returned error: %v", err)
		}
		nearlyEqual(t, "totalPrice", b.TotalPrice, b.BasePrice)
	}
}

func TestCalculate_MissingQuantityIsNotComputable(t *testing.T) {
	params := JobParameters{
		TierID:       "standard",
		UrgencyID:    "standard",
		ComplexityID: "easy",
	}

	if _, err := Calculate(referenceConfig(), params); !errors.Is(err, ErrNotComputable) {
		t.Fatalf("expected ErrNotComputable, got %v", err)
	}
}

func TestCalculate_BadQuantitiesAreNotComputable(t *testing.T) {
	cfg := referenceConfig()
	for _, size := range []Sizing{
		Pages(0),
		Pages(-2),
		Words(0),
		Words(math.NaN()),
		Words(math.Inf(1)),
	} {
		params := JobParameters{
			TierID:       "standard",
			UrgencyID:    "standard",
			ComplexityID: "easy",
			Size:         size,
		}
		if _, err := Calculate(cfg, params); !errors.Is(err, ErrNotComputable) {
			t.Fatalf("size %+v: expected ErrNotComputable, got %v", size, err)
		}
	}
}

func TestCalculate_UnknownSelectionsFail(t *testing.T) {
	cfg := referenceConfig()
	cases := []struct {
		field  string
		params JobParameters
	}{
		{"tier", JobParameters{TierID: "unknown-id", UrgencyID: "standard", ComplexityID: "easy", Size: Pages(5)}},
		{"urgency", JobParameters{TierID: "standard", UrgencyID: "instant", ComplexityID: "easy", Size: Pages(5)}},
		{"complexity", JobParameters{TierID: "standard", UrgencyID: "standard", ComplexityID: "impossible", Size: Pages(5)}},
	}

	for _, tc := range cases {
		_, err := Calculate(cfg, tc.params)
		var sel *UnknownSelectionError
		if !errors.As(err, &sel) {
			t.Fatalf("%s: expected UnknownSelectionError, got %v", tc.field, err)
		}
		if sel.Field != tc.field {
			t.Fatalf("expected failure on %s, got %s", tc.field, sel.Field)
		}
	}
}

func TestCalculate_IsDeterministic(t *testing.T) {
	cfg := referenceConfig()
	params := JobParameters{
		TierID:       "basic",
		UrgencyID:    "24h",
		ComplexityID: "hard",
		Size:         Words(3333),
	}

	first, err := Calculate(cfg, params)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Calculate(cfg, params)
		if err != nil {
			t.Fatalf("Calculate returned error: %v", err)
		}
		if again != first {
			t.Fatalf("iteration %d: breakdown changed: %+v vs %+v", i, again, first)
		}
	}
}

func TestSplitCommission_SharesReconstructTotal(t *testing.T) {
	rates := []CommissionRates{
		{ExecutorPct: 65, ReviewerPct: 15, PlatformPct: 20},
		{ExecutorPct: 80, ReviewerPct: 10, PlatformPct: 10},
		{ExecutorPct: 33.4, ReviewerPct: 33.3, PlatformPct: 33.3},
		{ExecutorPct: 100, ReviewerPct: 0, PlatformPct: 0},
	}
	totals := []float64{0, 0.01, 19.99, 120, 195, 123456.78}

	for _, r := range rates {
		for _, total := range totals {
			split := SplitCommission(total, r)
			sum := split.ExecutorPayout + split.ReviewerCommission + split.PlatformFee
			if math.Abs(sum-total) > 1e-9*math.Max(1, total) {
				t.Fatalf("split %+v of %v does not reconstruct total: sum=%v", r, total, sum)
			}
		}
	}
}

func TestSplitCommission_ReferenceSplit(t *testing.T) {
	split := SplitCommission(200, CommissionRates{ExecutorPct: 65, ReviewerPct: 15, PlatformPct: 20})
	nearlyEqual(t, "executorPayout", split.ExecutorPayout, 130)
	nearlyEqual(t, "reviewerCommission", split.ReviewerCommission, 30)
	nearlyEqual(t, "platformFee", split.PlatformFee, 40)
}
