package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/expertlane/ratecard/internal/pricing"
)

// Quote is a persisted quote snapshot. The breakdown is stored as computed
// and read back verbatim; nothing is recalculated on retrieval.
type Quote struct {
	Reference    string
	CreatedAt    string
	Title        string
	Notes        string
	TierID       string
	UrgencyID    string
	ComplexityID string
	SizingMode   pricing.SizingMode
	Quantity     float64
	Breakdown    pricing.Breakdown
	Currency     string
}

// QuoteListItem is the listing projection of a saved quote.
type QuoteListItem struct {
	Reference  string
	CreatedAt  string
	Title      string
	TotalPrice float64
	Currency   string
}

// SaveQuote inserts a quote snapshot.
func (s *Store) SaveQuote(ctx context.Context, q Quote) error {
	breakdownJSON, err := json.Marshal(q.Breakdown)
	if err != nil {
		return fmt.Errorf("encode breakdown: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (
			reference,
			title,
			notes,
			tier_id,
			urgency_id,
			complexity_id,
			sizing_mode,
			quantity,
			base_price,
			total_price,
			executor_payout,
			reviewer_commission,
			platform_fee,
			urgency_multiplier,
			complexity_multiplier,
			breakdown_json,
			currency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		q.Reference,
		q.Title,
		q.Notes,
		q.TierID,
		q.UrgencyID,
		q.ComplexityID,
		string(q.SizingMode),
		q.Quantity,
		q.Breakdown.BasePrice,
		q.Breakdown.TotalPrice,
		q.Breakdown.ExecutorPayout,
		q.Breakdown.ReviewerCommission,
		q.Breakdown.PlatformFee,
		q.Breakdown.UrgencyFactor,
		q.Breakdown.ComplexityFactor,
		string(breakdownJSON),
		q.Currency,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// ListQuotes returns saved quotes newest first, optionally filtered by a
// title/notes substring.
func (s *Store) ListQuotes(ctx context.Context, query string) ([]QuoteListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT reference, created_at, COALESCE(title, ''), total_price, currency
		FROM quotes
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]QuoteListItem, 0)
	for rows.Next() {
		var item QuoteListItem
		if err := rows.Scan(&item.Reference, &item.CreatedAt, &item.Title, &item.TotalPrice, &item.Currency); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	return quotes, nil
}

// GetQuote returns the full stored snapshot for a reference.
func (s *Store) GetQuote(ctx context.Context, reference string) (Quote, error) {
	var q Quote
	var mode, breakdownJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT
			reference,
			created_at,
			COALESCE(title, ''),
			COALESCE(notes, ''),
			tier_id,
			urgency_id,
			complexity_id,
			sizing_mode,
			quantity,
			breakdown_json,
			currency
		FROM quotes
		WHERE reference = ?
	`, reference).Scan(
		&q.Reference,
		&q.CreatedAt,
		&q.Title,
		&q.Notes,
		&q.TierID,
		&q.UrgencyID,
		&q.ComplexityID,
		&mode,
		&q.Quantity,
		&breakdownJSON,
		&q.Currency,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, ErrNotFound
	}
	if err != nil {
		return Quote{}, fmt.Errorf("query quote: %w", err)
	}

	q.SizingMode = pricing.SizingMode(mode)
	if err := json.Unmarshal([]byte(breakdownJSON), &q.Breakdown); err != nil {
		return Quote{}, fmt.Errorf("decode breakdown snapshot: %w", err)
	}
	return q, nil
}
