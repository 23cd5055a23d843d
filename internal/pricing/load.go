package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// fileDocument is the on-disk JSON shape of a pricing configuration. Tiers
// and options are keyed by their string ids.
type fileDocument struct {
	Tiers        map[string]tierEntry       `json:"tiers"`
	Urgencies    map[string]urgencyEntry    `json:"urgency_options"`
	Complexities map[string]complexityEntry `json:"complexity_options"`
	ExecutorPct  float64                    `json:"executor_pct"`
	ReviewerPct  float64                    `json:"reviewer_pct"`
	PlatformPct  float64                    `json:"platform_pct"`
	Currency     string                     `json:"currency"`
}

type tierEntry struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	BasePricePerPage float64 `json:"base_price_per_page"`
	BasePricePerWord float64 `json:"base_price_per_word"`
}

type urgencyEntry struct {
	Name        string  `json:"name"`
	Hours       float64 `json:"hours"`
	Multiplier  float64 `json:"multiplier"`
	Description string  `json:"description"`
}

type complexityEntry struct {
	Name        string   `json:"name"`
	Multiplier  float64  `json:"multiplier"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

// LoadFile reads and validates a pricing configuration from a JSON file.
// JSON objects carry no ordering, so entries are sorted by id to keep the
// loaded configuration deterministic.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read pricing file: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse pricing file: %w", err)
	}

	cfg := Config{
		Commission: CommissionRates{
			ExecutorPct: doc.ExecutorPct,
			ReviewerPct: doc.ReviewerPct,
			PlatformPct: doc.PlatformPct,
		},
		Currency: doc.Currency,
	}

	for _, id := range sortedKeys(doc.Tiers) {
		e := doc.Tiers[id]
		cfg.Tiers = append(cfg.Tiers, Tier{
			ID:               id,
			Name:             e.Name,
			Description:      e.Description,
			BasePricePerPage: e.BasePricePerPage,
			BasePricePerWord: e.BasePricePerWord,
		})
	}
	for _, id := range sortedKeys(doc.Urgencies) {
		e := doc.Urgencies[id]
		cfg.Urgencies = append(cfg.Urgencies, UrgencyOption{
			ID:          id,
			Name:        e.Name,
			Hours:       e.Hours,
			Multiplier:  e.Multiplier,
			Description: e.Description,
		})
	}
	for _, id := range sortedKeys(doc.Complexities) {
		e := doc.Complexities[id]
		cfg.Complexities = append(cfg.Complexities, ComplexityOption{
			ID:          id,
			Name:        e.Name,
			Multiplier:  e.Multiplier,
			Description: e.Description,
			Examples:    e.Examples,
		})
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid pricing file: %w", err)
	}
	return cfg, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
