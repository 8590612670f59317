// Package main is the entry point for the smartblog server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"smartblog/internal/cache"
	"smartblog/internal/config"
	"smartblog/internal/database"
	"smartblog/internal/events"
	"smartblog/internal/handlers"
	"smartblog/internal/router"
	"smartblog/internal/search"
	"smartblog/internal/session"
	"smartblog/internal/store"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	// Structured logger — outputs text; level is generous for development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"comments_type", cfg.Comments.Type,
		"search_enabled", cfg.SearchEnabled,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Initialize data stores.
	languageStore := store.NewLanguageStore(db)
	categoryStore := store.NewCategoryStore(db)
	translationStore := store.NewTranslationStore(db)
	commentStore := store.NewCommentStore(db)
	userStore := store.NewUserStore(db)

	// Full-text search over visible posts.
	searcher := search.NewPostgresSearcher(db, 50)

	// Cached public responses live in Valkey next to the sessions.
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Comment-added events: logged locally and forwarded to Valkey pub/sub
	// for out-of-process consumers.
	dispatcher := events.NewDispatcher(
		events.LogSubscriber{},
		events.NewValkeySubscriber(valkeyClient),
	)

	// Create handler groups with their dependencies. No captcha backend is
	// bundled; hosts plug one in here when they need it.
	readerHandlers := handlers.NewReader(cfg, categoryStore, translationStore, commentStore, searcher, nil, pageCache)
	commentHandlers := handlers.NewComments(cfg, translationStore, commentStore, dispatcher, nil, pageCache)
	authHandlers := handlers.NewAuth(userStore, sessionStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, languageStore, readerHandlers, commentHandlers, authHandlers)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
