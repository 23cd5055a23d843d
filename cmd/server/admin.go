package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/expertlane/ratecard/internal/logging"
	"github.com/expertlane/ratecard/internal/pricing"
	"github.com/expertlane/ratecard/internal/store"
)

type tierForm struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	BasePricePerPage float64 `json:"base_price_per_page"`
	BasePricePerWord float64 `json:"base_price_per_word"`
	Position         int     `json:"position"`
	Active           bool    `json:"active"`
}

func (f tierForm) record() (store.TierRecord, error) {
	if strings.TrimSpace(f.Name) == "" {
		return store.TierRecord{}, fmt.Errorf("name is required")
	}
	if f.BasePricePerPage <= 0 {
		return store.TierRecord{}, fmt.Errorf("base_price_per_page must be positive")
	}
	if f.BasePricePerWord <= 0 {
		return store.TierRecord{}, fmt.Errorf("base_price_per_word must be positive")
	}

	return store.TierRecord{
		Tier: pricing.Tier{
			ID:               strings.TrimSpace(f.ID),
			Name:             strings.TrimSpace(f.Name),
			Description:      strings.TrimSpace(f.Description),
			BasePricePerPage: f.BasePricePerPage,
			BasePricePerWord: f.BasePricePerWord,
		},
		Position: f.Position,
		Active:   f.Active,
	}, nil
}

func (s *server) handleAdminTiersList(w http.ResponseWriter, r *http.Request) {
	tiers, err := s.store.ListTiers(r.Context())
	if err != nil {
		logging.L().Error("list tiers", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to load tiers")
		return
	}

	payload := make([]tierForm, 0, len(tiers))
	for _, t := range tiers {
		payload = append(payload, tierForm{
			ID:               t.ID,
			Name:             t.Name,
			Description:      t.Description,
			BasePricePerPage: t.BasePricePerPage,
			BasePricePerWord: t.BasePricePerWord,
			Position:         t.Position,
			Active:           t.Active,
		})
	}
	respondWithJSON(w, http.StatusOK, payload)
}

func (s *server) handleAdminTierCreate(w http.ResponseWriter, r *http.Request) {
	var form tierForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := form.record()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if rec.ID == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.CreateTier(r.Context(), rec); err != nil {
		logging.L().Error("create tier", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to create tier")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *server) handleAdminTierUpdate(w http.ResponseWriter, r *http.Request) {
	var form tierForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	form.ID = chi.URLParam(r, "id")

	rec, err := form.record()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch err := s.store.UpdateTier(r.Context(), rec); {
	case errors.Is(err, store.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "tier not found")
	case err != nil:
		logging.L().Error("update tier", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to update tier")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

type urgencyForm struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Hours       float64 `json:"hours"`
	Multiplier  float64 `json:"multiplier"`
	Description string  `json:"description"`
	Position    int     `json:"position"`
	Active      bool    `json:"active"`
}

func (f urgencyForm) record() (store.UrgencyRecord, error) {
	if strings.TrimSpace(f.Name) == "" {
		return store.UrgencyRecord{}, fmt.Errorf("name is required")
	}
	if f.Hours <= 0 {
		return store.UrgencyRecord{}, fmt.Errorf("hours must be positive")
	}
	if f.Multiplier < 1 {
		return store.UrgencyRecord{}, fmt.Errorf("multiplier must be at least 1.0")
	}

	return store.UrgencyRecord{
		UrgencyOption: pricing.UrgencyOption{
			ID:          strings.TrimSpace(f.ID),
			Name:        strings.TrimSpace(f.Name),
			Hours:       f.Hours,
			Multiplier:  f.Multiplier,
			Description: strings.TrimSpace(f.Description),
		},
		Position: f.Position,
		Active:   f.Active,
	}, nil
}

func (s *server) handleAdminUrgencyList(w http.ResponseWriter, r *http.Request) {
	options, err := s.store.ListUrgencyOptions(r.Context())
	if err != nil {
		logging.L().Error("list urgency options", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to load urgency options")
		return
	}

	payload := make([]urgencyForm, 0, len(options))
	for _, u := range options {
		payload = append(payload, urgencyForm{
			ID:          u.ID,
			Name:        u.Name,
			Hours:       u.Hours,
			Multiplier:  u.Multiplier,
			Description: u.Description,
			Position:    u.Position,
			Active:      u.Active,
		})
	}
	respondWithJSON(w, http.StatusOK, payload)
}

func (s *server) handleAdminUrgencyCreate(w http.ResponseWriter, r *http.Request) {
	var form urgencyForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := form.record()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if rec.ID == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.CreateUrgencyOption(r.Context(), rec); err != nil {
		logging.L().Error("create urgency option", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to create urgency option")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *server) handleAdminUrgencyUpdate(w http.ResponseWriter, r *http.Request) {
	var form urgencyForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	form.ID = chi.URLParam(r, "id")

	rec, err := form.record()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch err := s.store.UpdateUrgencyOption(r.Context(), rec); {
	case errors.Is(err, store.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "urgency option not found")
	case err != nil:
		logging.L().Error("update urgency option", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to update urgency option")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

type complexityForm struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Multiplier  float64  `json:"multiplier"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
	Position    int      `json:"position"`
	Active      bool     `json:"active"`
}

func (f complexityForm) record() (store.ComplexityRecord, error) {
	if strings.TrimSpace(f.Name) == "" {
		return store.ComplexityRecord{}, fmt.Errorf("name is required")
	}
	if f.Multiplier < 1 {
		return store.ComplexityRecord{}, fmt.Errorf("multiplier must be at least 1.0")
	}

	return store.ComplexityRecord{
		ComplexityOption: pricing.ComplexityOption{
			ID:          strings.TrimSpace(f.ID),
			Name:        strings.TrimSpace(f.Name),
			Multiplier:  f.Multiplier,
			Description: strings.TrimSpace(f.Description),
			Examples:    f.Examples,
		},
		Position: f.Position,
		Active:   f.Active,
	}, nil
}

func (s *server) handleAdminComplexityList(w http.ResponseWriter, r *http.Request) {
	options, err := s.store.ListComplexityOptions(r.Context())
	if err != nil {
		logging.L().Error("list complexity options", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to load complexity options")
		return
	}

	payload := make([]complexityForm, 0, len(options))
	for _, c := range options {
		payload = append(payload, complexityForm{
			ID:          c.ID,
			Name:        c.Name,
			Multiplier:  c.Multiplier,
			Description: c.Description,
			Examples:    c.Examples,
			Position:    c.Position,
			Active:      c.Active,
		})
	}
	respondWithJSON(w, http.StatusOK, payload)
}

func (s *server) handleAdminComplexityCreate(w http.ResponseWriter, r *http.Request) {
	var form complexityForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := form.record()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if rec.ID == "" {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.CreateComplexityOption(r.Context(), rec); err != nil {
		logging.L().Error("create complexity option", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to create complexity option")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *server) handleAdminComplexityUpdate(w http.ResponseWriter, r *http.Request) {
	var form complexityForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	form.ID = chi.URLParam(r, "id")

	rec, err := form.record()
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch err := s.store.UpdateComplexityOption(r.Context(), rec); {
	case errors.Is(err, store.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "complexity option not found")
	case err != nil:
		logging.L().Error("update complexity option", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to update complexity option")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

type commissionForm struct {
	ExecutorPct float64 `json:"executor_pct"`
	ReviewerPct float64 `json:"reviewer_pct"`
	PlatformPct float64 `json:"platform_pct"`
	Currency    string  `json:"currency"`
}

func (s *server) handleAdminCommissionGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Commission(r.Context())
	if err != nil {
		logging.L().Error("load commission config", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to load commission config")
		return
	}

	respondWithJSON(w, http.StatusOK, commissionForm{
		ExecutorPct: rec.Rates.ExecutorPct,
		ReviewerPct: rec.Rates.ReviewerPct,
		PlatformPct: rec.Rates.PlatformPct,
		Currency:    rec.Currency,
	})
}

func (s *server) handleAdminCommissionUpdate(w http.ResponseWriter, r *http.Request) {
	var form commissionForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if form.Currency == "" {
		form.Currency = "USD"
	}

	rates := pricing.CommissionRates{
		ExecutorPct: form.ExecutorPct,
		ReviewerPct: form.ReviewerPct,
		PlatformPct: form.PlatformPct,
	}
	if err := rates.Validate(); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateCommission(r.Context(), store.CommissionRecord{Rates: rates, Currency: form.Currency}); err != nil {
		logging.L().Error("update commission config", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "failed to update commission config")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
