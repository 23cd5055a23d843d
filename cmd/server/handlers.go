package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/expertlane/ratecard/internal/logging"
	"github.com/expertlane/ratecard/internal/money"
	"github.com/expertlane/ratecard/internal/pricing"
	"github.com/expertlane/ratecard/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, errorResponse{Error: message})
}

// quoteRequest is the wire shape of a quote calculation. The sizing mode
// picks which count applies; the other is ignored.
type quoteRequest struct {
	Title        string   `json:"title"`
	Notes        string   `json:"notes"`
	TierID       string   `json:"tier_id"`
	UrgencyID    string   `json:"urgency_id"`
	ComplexityID string   `json:"complexity_id"`
	Mode         string   `json:"mode"`
	Pages        *float64 `json:"pages"`
	Words        *float64 `json:"words"`
}

func (q quoteRequest) jobParameters() (pricing.JobParameters, error) {
	params := pricing.JobParameters{
		TierID:       q.TierID,
		UrgencyID:    q.UrgencyID,
		ComplexityID: q.ComplexityID,
	}

	switch q.Mode {
	case string(pricing.ModePages):
		if q.Pages != nil {
			params.Size = pricing.Pages(*q.Pages)
		}
	case string(pricing.ModeWords):
		if q.Words != nil {
			params.Size = pricing.Words(*q.Words)
		}
	case "":
		// No mode selected yet; the zero sizing is reported as not computable.
	default:
		return pricing.JobParameters{}, fmt.Errorf("mode must be %q or %q", pricing.ModePages, pricing.ModeWords)
	}

	return params, nil
}

type previewResponse struct {
	Computable bool               `json:"computable"`
	Reason     string             `json:"reason,omitempty"`
	Breakdown  *pricing.Breakdown `json:"breakdown,omitempty"`
	Currency   string             `json:"currency,omitempty"`
}

func (s *server) handleQuotePreview(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params, err := req.jobParameters()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg, err := s.store.PricingConfig(r.Context())
	if err != nil {
		logging.L().Error("load pricing config", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to load pricing configuration")
		return
	}

	breakdown, err := pricing.Calculate(cfg, params)
	switch {
	case err == nil:
		respondWithJSON(w, http.StatusOK, previewResponse{
			Computable: true,
			Breakdown:  &breakdown,
			Currency:   cfg.Currency,
		})
	case errors.Is(err, pricing.ErrNotComputable):
		respondWithJSON(w, http.StatusOK, previewResponse{
			Computable: false,
			Reason:     err.Error(),
		})
	default:
		var sel *pricing.UnknownSelectionError
		if errors.As(err, &sel) {
			logging.L().Warn("quote with unknown selection",
				zap.String("field", sel.Field),
				zap.String("id", sel.ID))
			respondWithError(w, http.StatusUnprocessableEntity, sel.Error())
			return
		}
		logging.L().Error("calculate quote", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to calculate quote")
	}
}

type quoteResponse struct {
	Reference    string            `json:"reference"`
	CreatedAt    string            `json:"created_at,omitempty"`
	Title        string            `json:"title"`
	Notes        string            `json:"notes,omitempty"`
	TierID       string            `json:"tier_id"`
	UrgencyID    string            `json:"urgency_id"`
	ComplexityID string            `json:"complexity_id"`
	Mode         string            `json:"mode"`
	Quantity     float64           `json:"quantity"`
	Breakdown    pricing.Breakdown `json:"breakdown"`
	Currency     string            `json:"currency"`
}

func quoteToResponse(q store.Quote) quoteResponse {
	return quoteResponse{
		Reference:    q.Reference,
		CreatedAt:    q.CreatedAt,
		Title:        q.Title,
		Notes:        q.Notes,
		TierID:       q.TierID,
		UrgencyID:    q.UrgencyID,
		ComplexityID: q.ComplexityID,
		Mode:         string(q.SizingMode),
		Quantity:     q.Quantity,
		Breakdown:    q.Breakdown,
		Currency:     q.Currency,
	}
}

func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	params, err := req.jobParameters()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg, err := s.store.PricingConfig(r.Context())
	if err != nil {
		logging.L().Error("load pricing config", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to load pricing configuration")
		return
	}

	breakdown, err := pricing.Calculate(cfg, params)
	if err != nil {
		var sel *pricing.UnknownSelectionError
		if errors.As(err, &sel) {
			logging.L().Warn("quote with unknown selection",
				zap.String("field", sel.Field),
				zap.String("id", sel.ID))
		}
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	quote := store.Quote{
		Reference:    uuid.NewString(),
		Title:        strings.TrimSpace(req.Title),
		Notes:        strings.TrimSpace(req.Notes),
		TierID:       params.TierID,
		UrgencyID:    params.UrgencyID,
		ComplexityID: params.ComplexityID,
		SizingMode:   params.Size.Mode(),
		Quantity:     params.Size.Count(),
		Breakdown:    breakdown,
		Currency:     cfg.Currency,
	}
	if err := s.store.SaveQuote(r.Context(), quote); err != nil {
		logging.L().Error("save quote", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to save quote")
		return
	}

	respondWithJSON(w, http.StatusCreated, quoteToResponse(quote))
}

type quoteListResponse struct {
	Quotes []quoteListEntry `json:"quotes"`
}

type quoteListEntry struct {
	Reference  string  `json:"reference"`
	CreatedAt  string  `json:"created_at"`
	Title      string  `json:"title"`
	TotalPrice float64 `json:"total_price"`
	Currency   string  `json:"currency"`
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	items, err := s.store.ListQuotes(r.Context(), query)
	if err != nil {
		logging.L().Error("list quotes", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}

	resp := quoteListResponse{Quotes: make([]quoteListEntry, 0, len(items))}
	for _, item := range items {
		resp.Quotes = append(resp.Quotes, quoteListEntry{
			Reference:  item.Reference,
			CreatedAt:  item.CreatedAt,
			Title:      item.Title,
			TotalPrice: item.TotalPrice,
			Currency:   item.Currency,
		})
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	quote, err := s.store.GetQuote(r.Context(), chi.URLParam(r, "ref"))
	if errors.Is(err, store.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "quote not found")
		return
	}
	if err != nil {
		logging.L().Error("load quote", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to load quote")
		return
	}

	respondWithJSON(w, http.StatusOK, quoteToResponse(quote))
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	quote, err := s.store.GetQuote(r.Context(), chi.URLParam(r, "ref"))
	if errors.Is(err, store.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "quote not found")
		return
	}
	if err != nil {
		logging.L().Error("load quote", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to load quote")
		return
	}

	b := quote.Breakdown
	var sb strings.Builder
	fmt.Fprintf(&sb, "Quote %s\n", quote.Reference)
	if quote.Title != "" {
		fmt.Fprintf(&sb, "Title: %s\n", quote.Title)
	}
	fmt.Fprintf(&sb, "Created: %s\n\n", quote.CreatedAt)
	fmt.Fprintf(&sb, "Selection:\n")
	fmt.Fprintf(&sb, "  Tier: %s\n", quote.TierID)
	fmt.Fprintf(&sb, "  Urgency: %s (x%v)\n", quote.UrgencyID, b.UrgencyFactor)
	fmt.Fprintf(&sb, "  Complexity: %s (x%v)\n", quote.ComplexityID, b.ComplexityFactor)
	fmt.Fprintf(&sb, "  Size: %v %s\n\n", quote.Quantity, quote.SizingMode)
	fmt.Fprintf(&sb, "Base price: %s\n", money.FormatWithCurrency(b.BasePrice, quote.Currency))
	fmt.Fprintf(&sb, "Total: %s\n\n", money.FormatWithCurrency(b.TotalPrice, quote.Currency))
	fmt.Fprintf(&sb, "Split:\n")
	fmt.Fprintf(&sb, "  Executor payout: %s\n", money.FormatWithCurrency(b.ExecutorPayout, quote.Currency))
	fmt.Fprintf(&sb, "  Reviewer commission: %s\n", money.FormatWithCurrency(b.ReviewerCommission, quote.Currency))
	fmt.Fprintf(&sb, "  Platform fee: %s\n", money.FormatWithCurrency(b.PlatformFee, quote.Currency))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(sb.String()))
}

type pricingResponse struct {
	Tiers        []tierPayload       `json:"tiers"`
	Urgencies    []urgencyPayload    `json:"urgency_options"`
	Complexities []complexityPayload `json:"complexity_options"`
	ExecutorPct  float64             `json:"executor_pct"`
	ReviewerPct  float64             `json:"reviewer_pct"`
	PlatformPct  float64             `json:"platform_pct"`
	Currency     string              `json:"currency"`
}

type tierPayload struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	BasePricePerPage float64 `json:"base_price_per_page"`
	BasePricePerWord float64 `json:"base_price_per_word"`
}

type urgencyPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Hours       float64 `json:"hours"`
	Multiplier  float64 `json:"multiplier"`
	Description string  `json:"description"`
}

type complexityPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Multiplier  float64  `json:"multiplier"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
}

func (s *server) handlePricing(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.store.PricingConfig(r.Context())
	if err != nil {
		logging.L().Error("load pricing config", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to load pricing configuration")
		return
	}

	resp := pricingResponse{
		ExecutorPct: cfg.Commission.ExecutorPct,
		ReviewerPct: cfg.Commission.ReviewerPct,
		PlatformPct: cfg.Commission.PlatformPct,
		Currency:    cfg.Currency,
	}
	for _, t := range cfg.Tiers {
		resp.Tiers = append(resp.Tiers, tierPayload{
			ID:               t.ID,
			Name:             t.Name,
			Description:      t.Description,
			BasePricePerPage: t.BasePricePerPage,
			BasePricePerWord: t.BasePricePerWord,
		})
	}
	for _, u := range cfg.Urgencies {
		resp.Urgencies = append(resp.Urgencies, urgencyPayload{
			ID:          u.ID,
			Name:        u.Name,
			Hours:       u.Hours,
			Multiplier:  u.Multiplier,
			Description: u.Description,
		})
	}
	for _, c := range cfg.Complexities {
		examples := c.Examples
		if examples == nil {
			examples = []string{}
		}
		resp.Complexities = append(resp.Complexities, complexityPayload{
			ID:          c.ID,
			Name:        c.Name,
			Multiplier:  c.Multiplier,
			Description: c.Description,
			Examples:    examples,
		})
	}
	respondWithJSON(w, http.StatusOK, resp)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	valid, err := s.auth.validateCredentials(req.Email, req.Password)
	if err != nil {
		logging.L().Error("validate credentials", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "authentication error")
		return
	}
	if !valid {
		respondWithError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := s.auth.setSessionCookie(w, req.Email); err != nil {
		logging.L().Error("create session", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "authentication error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAuthenticated(r, s.auth) {
			respondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
