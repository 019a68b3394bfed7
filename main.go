package main

import (
	"log"
	"net/http"

	"jjreviews/config"
	"jjreviews/database"
	"jjreviews/handlers"
	"jjreviews/logger"
	"jjreviews/middleware"
	"jjreviews/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Environment, cfg.Debug)

	logger.Info("initializing JJ Reviews components")

	services.InitSessionStore(cfg)

	if err := database.Connect(cfg); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := database.SeedAdminUser(cfg); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	handlers.Init(cfg)

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/login", handlers.LoginHandler)
	mux.HandleFunc("/api/logout", handlers.LogoutHandler)
	mux.HandleFunc("/api/session", handlers.SessionHandler)
	mux.HandleFunc("/api/movies", handlers.MoviesHandler)
	mux.HandleFunc("/api/verdicts", handlers.VerdictsHandler)
	mux.HandleFunc("/api/sharecard", handlers.ShareCardHandler)
	mux.HandleFunc("/api/roulette/spin", handlers.RouletteHandler)
	mux.HandleFunc("/api/battle/start", handlers.RequirePostMethod(handlers.StartBattleHandler))
	mux.HandleFunc("/api/battle/state", handlers.BattleStateHandler)
	mux.HandleFunc("/api/battle/vote", handlers.RequirePostMethod(handlers.VoteHandler))
	mux.HandleFunc("/api/battle/replay", handlers.RequirePostMethod(handlers.ReplayBattleHandler))

	// Admin routes
	mux.Handle("/api/search", middleware.RequireAdmin(http.HandlerFunc(handlers.SearchHandler)))
	mux.Handle("/api/reviews/create", middleware.RequireAdmin(handlers.RequirePostMethod(handlers.CreateReviewHandler)))
	mux.Handle("/api/reviews/update", middleware.RequireAdmin(handlers.RequirePostMethod(handlers.UpdateReviewHandler)))
	mux.Handle("/api/reviews/delete", middleware.RequireAdmin(handlers.RequirePostMethod(handlers.DeleteReviewHandler)))

	loggingMux := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		mux.ServeHTTP(w, r)
	})

	addr := ":" + cfg.ServerPort
	logger.Info("JJ Reviews is starting", "addr", addr, "env", cfg.Environment, "debug", cfg.Debug)

	if err := http.ListenAndServe(addr, loggingMux); err != nil {
		log.Fatalf("FATAL: Server failed to start: %v", err)
	}
}
