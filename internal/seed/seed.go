// Package seed inserts the reference pricing catalog and admin account on
// first startup.
package seed

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

type tierSeed struct {
	id, name, description      string
	pricePerPage, pricePerWord float64
	position                   int
}

type urgencySeed struct {
	id, name, description string
	hours, multiplier     float64
	position              int
}

type complexitySeed struct {
	id, name, description string
	multiplier            float64
	examples              []string
	position              int
}

var defaultTiers = []tierSeed{
	{"basic", "Basic", "Budget service level for routine work", 12, 0.05, 1},
	{"standard", "Standard", "Default service level", 20, 0.08, 2},
	{"premium", "Premium", "Senior experts with extra review passes", 32, 0.13, 3},
}

var defaultUrgencies = []urgencySeed{
	{"standard", "Standard", "No rush, regular queue", 120, 1.0, 1},
	{"72h", "72 hours", "Three-day turnaround", 72, 1.15, 2},
	{"48h", "48 hours", "Two-day turnaround", 48, 1.3, 3},
	{"24h", "24 hours", "Next-day delivery", 24, 1.6, 4},
}

var defaultComplexities = []complexitySeed{
	{"easy", "Easy", "General topics, no specialist knowledge", 1.0, []string{"essays", "summaries"}, 1},
	{"medium", "Medium", "Requires subject familiarity", 1.2, []string{"lab reports", "case studies"}, 2},
	{"hard", "Hard", "Specialist or research-grade work", 1.5, []string{"theses", "econometrics"}, 3},
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := seedAdmin(tx, cfg.AdminEmail, cfg.AdminPassword, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := seedTiers(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := seedUrgencies(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := seedComplexities(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	if err := seedCommission(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, string(hash)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func seedTiers(tx *sql.Tx, stats *Stats) error {
	for _, t := range defaultTiers {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM pricing_tiers WHERE id = ? LIMIT 1)`, t.id).Scan(&exists); err != nil {
			return fmt.Errorf("check tier %s existence: %w", t.id, err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO pricing_tiers (id, name, description, base_price_per_page, base_price_per_word, position, active)
			VALUES (?, ?, ?, ?, ?, ?, TRUE)
		`, t.id, t.name, t.description, t.pricePerPage, t.pricePerWord, t.position); err != nil {
			return fmt.Errorf("insert tier %s: %w", t.id, err)
		}
		stats.Inserts++
	}
	return nil
}

func seedUrgencies(tx *sql.Tx, stats *Stats) error {
	for _, u := range defaultUrgencies {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM urgency_options WHERE id = ? LIMIT 1)`, u.id).Scan(&exists); err != nil {
			return fmt.Errorf("check urgency %s existence: %w", u.id, err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO urgency_options (id, name, hours, multiplier, description, position, active)
			VALUES (?, ?, ?, ?, ?, ?, TRUE)
		`, u.id, u.name, u.hours, u.multiplier, u.description, u.position); err != nil {
			return fmt.Errorf("insert urgency %s: %w", u.id, err)
		}
		stats.Inserts++
	}
	return nil
}

func seedComplexities(tx *sql.Tx, stats *Stats) error {
	for _, c := range defaultComplexities {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM complexity_options WHERE id = ? LIMIT 1)`, c.id).Scan(&exists); err != nil {
			return fmt.Errorf("check complexity %s existence: %w", c.id, err)
		}
		if exists {
			continue
		}

		examplesJSON, err := json.Marshal(c.examples)
		if err != nil {
			return fmt.Errorf("encode examples for %s: %w", c.id, err)
		}

		if _, err := tx.Exec(`
			INSERT INTO complexity_options (id, name, multiplier, description, examples_json, position, active)
			VALUES (?, ?, ?, ?, ?, ?, TRUE)
		`, c.id, c.name, c.multiplier, c.description, string(examplesJSON), c.position); err != nil {
			return fmt.Errorf("insert complexity %s: %w", c.id, err)
		}
		stats.Inserts++
	}
	return nil
}

func seedCommission(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM commission_config WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check commission config existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO commission_config (id, executor_pct, reviewer_pct, platform_pct, currency)
		VALUES (1, ?, ?, ?, ?)
	`, 65, 15, 20, "USD"); err != nil {
		return fmt.Errorf("insert commission config singleton: %w", err)
	}
	stats.Inserts++
	return nil
}
