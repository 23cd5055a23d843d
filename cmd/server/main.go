package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/expertlane/ratecard/internal/config"
	"github.com/expertlane/ratecard/internal/db"
	"github.com/expertlane/ratecard/internal/logging"
	"github.com/expertlane/ratecard/internal/migrations"
	"github.com/expertlane/ratecard/internal/seed"
	"github.com/expertlane/ratecard/internal/store"
)

type server struct {
	auth  *authService
	store *store.Store
	db    *sql.DB
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logging.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		panic(err)
	}
	defer logging.Sync()
	log := logging.L()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	}

	stats, err := seed.Run(database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		log.Fatal("failed to seed catalog", zap.Error(err))
	}
	if stats.Inserts > 0 {
		log.Info("seeded catalog defaults", zap.Int("inserts", stats.Inserts))
	}

	st := store.New(database)
	auth := newAuthService(database, cfg.SessionSecret)
	srv := &server{auth: auth, store: st, db: database}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/pricing", srv.handlePricing)
		r.Post("/quotes/preview", srv.handleQuotePreview)
		r.Post("/login", srv.handleLogin)
		r.Post("/logout", srv.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(srv.requireAuth)
			r.Post("/quotes", srv.handleQuoteCreate)
			r.Get("/quotes", srv.handleQuotesList)
			r.Get("/quotes/{ref}", srv.handleQuoteDetail)
			r.Get("/quotes/{ref}/text", srv.handleQuoteText)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/tiers", srv.handleAdminTiersList)
				r.Post("/tiers", srv.handleAdminTierCreate)
				r.Put("/tiers/{id}", srv.handleAdminTierUpdate)
				r.Get("/urgency", srv.handleAdminUrgencyList)
				r.Post("/urgency", srv.handleAdminUrgencyCreate)
				r.Put("/urgency/{id}", srv.handleAdminUrgencyUpdate)
				r.Get("/complexity", srv.handleAdminComplexityList)
				r.Post("/complexity", srv.handleAdminComplexityCreate)
				r.Put("/complexity/{id}", srv.handleAdminComplexityUpdate)
				r.Get("/commissions", srv.handleAdminCommissionGet)
				r.Put("/commissions", srv.handleAdminCommissionUpdate)
			})
		})
	})

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
