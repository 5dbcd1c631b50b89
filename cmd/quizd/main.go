package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/quizforge/quizforge/internal/api/http"
	"github.com/quizforge/quizforge/internal/assemble"
	"github.com/quizforge/quizforge/internal/audit"
	"github.com/quizforge/quizforge/internal/auth"
	"github.com/quizforge/quizforge/internal/bank"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/db"
	"github.com/quizforge/quizforge/internal/grading"
	"github.com/quizforge/quizforge/internal/selection"
	"github.com/quizforge/quizforge/internal/session"
	"github.com/quizforge/quizforge/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	banks := bank.NewSQLStore(dbh)
	bags := selection.NewSQLBagStore(dbh)
	sessions := session.NewSQLStore(dbh)

	assets, err := storage.NewFSStore(cfg.AssetDir)
	if err != nil {
		log.Fatalf("asset store: %v", err)
	}

	grader := grading.New(
		grading.WithThresholds(cfg.AcceptFullAt, cfg.AcceptPartialAt),
		grading.WithFuzzyDefault(cfg.FuzzyDefault),
	)
	svc := session.NewService(banks, bags, sessions, grader, assemble.Config{
		MCQPerTest:         cfg.MCQPerTest,
		WrittenPerTest:     cfg.WrittenPerTest,
		RevealMode:         assemble.RevealMode(cfg.RevealMode),
		RevealRatioDefault: cfg.RevealRatioDefault,
	}, time.Duration(cfg.SessionTimeLimitSec)*time.Second).
		WithAudit(audit.NewSQLLog(dbh))

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.AdminLoginHandler(authSvc, cfg.AdminUser, cfg.AdminPassHash))
	r.Post("/auth/guest", auth.GuestLoginHandler(authSvc))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Admin: bank management and coverage reset.
		pr.With(auth.Require("bank:upload")).
			Post("/banks/{bankID}", api.UploadBankHandler(banks))
		pr.With(auth.Require("coverage:reset")).
			Post("/coverage/reset", api.ResetCoverageHandler(svc))
		pr.With(auth.Require("asset:upload")).
			Put("/assets/*", api.UploadAssetHandler(assets))

		// Question images for everyone with a token.
		pr.With(auth.Require("bank:view")).
			Get("/assets/*", api.GetAssetHandler(assets))

		// Student flow.
		pr.With(auth.Require("bank:view")).
			Get("/banks", api.ListBanksHandler(banks))
		pr.With(auth.Require("bank:view")).
			Get("/banks/{bankID}", api.GetBankHandler(banks))
		pr.With(auth.Require("session:create")).
			Post("/sessions", api.CreateSessionHandler(svc))
		pr.With(auth.Require("session:save")).
			Post("/sessions/{sessionID}/responses", api.SaveSessionResponsesHandler(svc))
		pr.With(auth.Require("session:submit")).
			Post("/sessions/{sessionID}/submit", api.SubmitSessionHandler(svc))
		pr.With(auth.Require("session:view-own")).
			Get("/sessions/{sessionID}", api.GetSessionHandler(svc))
		pr.With(auth.Require("bank:view")).
			Get("/coverage", api.CoverageHandler(svc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
