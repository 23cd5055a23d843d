// Package store is the data access layer over SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/expertlane/ratecard/internal/pricing"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store handles database operations for pricing configuration and quotes.
type Store struct {
	db *sql.DB
}

// New creates a Store over an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// TierRecord is a pricing tier row, including its admin-only fields.
type TierRecord struct {
	pricing.Tier
	Position int
	Active   bool
}

// UrgencyRecord is an urgency option row, including its admin-only fields.
type UrgencyRecord struct {
	pricing.UrgencyOption
	Position int
	Active   bool
}

// ComplexityRecord is a complexity option row, including its admin-only fields.
type ComplexityRecord struct {
	pricing.ComplexityOption
	Position int
	Active   bool
}

// CommissionRecord is the singleton commission split row.
type CommissionRecord struct {
	Rates    pricing.CommissionRates
	Currency string
}

// PricingConfig assembles the engine configuration from the active rows in
// position order and validates it before handing it out.
func (s *Store) PricingConfig(ctx context.Context) (pricing.Config, error) {
	tiers, err := s.ListTiers(ctx)
	if err != nil {
		return pricing.Config{}, err
	}
	urgencies, err := s.ListUrgencyOptions(ctx)
	if err != nil {
		return pricing.Config{}, err
	}
	complexities, err := s.ListComplexityOptions(ctx)
	if err != nil {
		return pricing.Config{}, err
	}
	commission, err := s.Commission(ctx)
	if err != nil {
		return pricing.Config{}, err
	}

	cfg := pricing.Config{
		Commission: commission.Rates,
		Currency:   commission.Currency,
	}
	for _, t := range tiers {
		if t.Active {
			cfg.Tiers = append(cfg.Tiers, t.Tier)
		}
	}
	for _, u := range urgencies {
		if u.Active {
			cfg.Urgencies = append(cfg.Urgencies, u.UrgencyOption)
		}
	}
	for _, c := range complexities {
		if c.Active {
			cfg.Complexities = append(cfg.Complexities, c.ComplexityOption)
		}
	}

	if err := cfg.Validate(); err != nil {
		return pricing.Config{}, fmt.Errorf("stored pricing config is invalid: %w", err)
	}
	return cfg, nil
}

// ListTiers returns all tiers, active or not, in position order.
func (s *Store) ListTiers(ctx context.Context) ([]TierRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), base_price_per_page, base_price_per_word, position, active
		FROM pricing_tiers
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query pricing tiers: %w", err)
	}
	defer rows.Close()

	tiers := make([]TierRecord, 0)
	for rows.Next() {
		var t TierRecord
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.BasePricePerPage, &t.BasePricePerWord, &t.Position, &t.Active); err != nil {
			return nil, fmt.Errorf("scan pricing tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pricing tiers: %w", err)
	}
	return tiers, nil
}

// CreateTier inserts a tier row.
func (s *Store) CreateTier(ctx context.Context, t TierRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pricing_tiers (id, name, description, base_price_per_page, base_price_per_word, position, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Description, t.BasePricePerPage, t.BasePricePerWord, t.Position, t.Active)
	if err != nil {
		return fmt.Errorf("insert pricing tier: %w", err)
	}
	return nil
}

// UpdateTier updates an existing tier row.
func (s *Store) UpdateTier(ctx context.Context, t TierRecord) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE pricing_tiers
		SET
			name = ?,
			description = ?,
			base_price_per_page = ?,
			base_price_per_word = ?,
			position = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, t.Name, t.Description, t.BasePricePerPage, t.BasePricePerWord, t.Position, t.Active, t.ID)
	if err != nil {
		return fmt.Errorf("update pricing tier: %w", err)
	}
	return requireAffected(result)
}

// ListUrgencyOptions returns all urgency options in position order.
func (s *Store) ListUrgencyOptions(ctx context.Context) ([]UrgencyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, hours, multiplier, COALESCE(description, ''), position, active
		FROM urgency_options
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query urgency options: %w", err)
	}
	defer rows.Close()

	options := make([]UrgencyRecord, 0)
	for rows.Next() {
		var u UrgencyRecord
		if err := rows.Scan(&u.ID, &u.Name, &u.Hours, &u.Multiplier, &u.Description, &u.Position, &u.Active); err != nil {
			return nil, fmt.Errorf("scan urgency option: %w", err)
		}
		options = append(options, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate urgency options: %w", err)
	}
	return options, nil
}

// CreateUrgencyOption inserts an urgency option row.
func (s *Store) CreateUrgencyOption(ctx context.Context, u UrgencyRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO urgency_options (id, name, hours, multiplier, description, position, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Hours, u.Multiplier, u.Description, u.Position, u.Active)
	if err != nil {
		return fmt.Errorf("insert urgency option: %w", err)
	}
	return nil
}

// UpdateUrgencyOption updates an existing urgency option row.
func (s *Store) UpdateUrgencyOption(ctx context.Context, u UrgencyRecord) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE urgency_options
		SET
			name = ?,
			hours = ?,
			multiplier = ?,
			description = ?,
			position = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, u.Name, u.Hours, u.Multiplier, u.Description, u.Position, u.Active, u.ID)
	if err != nil {
		return fmt.Errorf("update urgency option: %w", err)
	}
	return requireAffected(result)
}

// ListComplexityOptions returns all complexity options in position order.
func (s *Store) ListComplexityOptions(ctx context.Context) ([]ComplexityRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, multiplier, COALESCE(description, ''), examples_json, position, active
		FROM complexity_options
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query complexity options: %w", err)
	}
	defer rows.Close()

	options := make([]ComplexityRecord, 0)
	for rows.Next() {
		var c ComplexityRecord
		var examplesJSON string
		if err := rows.Scan(&c.ID, &c.Name, &c.Multiplier, &c.Description, &examplesJSON, &c.Position, &c.Active); err != nil {
			return nil, fmt.Errorf("scan complexity option: %w", err)
		}
		if err := json.Unmarshal([]byte(examplesJSON), &c.Examples); err != nil {
			return nil, fmt.Errorf("decode complexity examples: %w", err)
		}
		options = append(options, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate complexity options: %w", err)
	}
	return options, nil
}

// CreateComplexityOption inserts a complexity option row.
func (s *Store) CreateComplexityOption(ctx context.Context, c ComplexityRecord) error {
	examplesJSON, err := encodeExamples(c.Examples)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO complexity_options (id, name, multiplier, description, examples_json, position, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Multiplier, c.Description, examplesJSON, c.Position, c.Active)
	if err != nil {
		return fmt.Errorf("insert complexity option: %w", err)
	}
	return nil
}

// UpdateComplexityOption updates an existing complexity option row.
func (s *Store) UpdateComplexityOption(ctx context.Context, c ComplexityRecord) error {
	examplesJSON, err := encodeExamples(c.Examples)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE complexity_options
		SET
			name = ?,
			multiplier = ?,
			description = ?,
			examples_json = ?,
			position = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, c.Name, c.Multiplier, c.Description, examplesJSON, c.Position, c.Active, c.ID)
	if err != nil {
		return fmt.Errorf("update complexity option: %w", err)
	}
	return requireAffected(result)
}

// EnsureCommission inserts the default commission split when none exists.
func (s *Store) EnsureCommission(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO commission_config (id, executor_pct, reviewer_pct, platform_pct, currency)
		VALUES (1, 65, 15, 20, 'USD')
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("insert default commission config: %w", err)
	}
	return nil
}

// Commission returns the singleton commission split.
func (s *Store) Commission(ctx context.Context) (CommissionRecord, error) {
	var rec CommissionRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT executor_pct, reviewer_pct, platform_pct, currency
		FROM commission_config
		WHERE id = 1
	`).Scan(&rec.Rates.ExecutorPct, &rec.Rates.ReviewerPct, &rec.Rates.PlatformPct, &rec.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return CommissionRecord{}, ErrNotFound
	}
	if err != nil {
		return CommissionRecord{}, fmt.Errorf("query commission config: %w", err)
	}
	return rec, nil
}

// UpdateCommission replaces the singleton commission split. The rates are
// validated so an inconsistent split never reaches the table.
func (s *Store) UpdateCommission(ctx context.Context, rec CommissionRecord) error {
	if err := rec.Rates.Validate(); err != nil {
		return err
	}
	if err := s.EnsureCommission(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE commission_config
		SET
			executor_pct = ?,
			reviewer_pct = ?,
			platform_pct = ?,
			currency = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, rec.Rates.ExecutorPct, rec.Rates.ReviewerPct, rec.Rates.PlatformPct, rec.Currency)
	if err != nil {
		return fmt.Errorf("update commission config: %w", err)
	}
	return nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeExamples(examples []string) (string, error) {
	if examples == nil {
		examples = []string{}
	}
	data, err := json.Marshal(examples)
	if err != nil {
		return "", fmt.Errorf("encode complexity examples: %w", err)
	}
	return string(data), nil
}
