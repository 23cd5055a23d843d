package money

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "0.00"},
		{120, "120.00"},
		{126.75, "126.75"},
		{29.25, "29.25"},
		{0.005, "0.01"},
		{-12.5, "-12.50"},
	}

	for _, tc := range cases {
		if got := Format(tc.amount); got != tc.want {
			t.Fatalf("Format(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatWithCurrency(t *testing.T) {
	if got := FormatWithCurrency(195, "USD"); got != "195.00 USD" {
		t.Fatalf("got %q", got)
	}
	if got := FormatWithCurrency(195, ""); got != "195.00" {
		t.Fatalf("got %q", got)
	}
}
