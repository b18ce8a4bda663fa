package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sqliteadapter "github.com/calebdraper/inkwell/internal/adapter/driven/sqlite"
	httphandler "github.com/calebdraper/inkwell/internal/adapter/driving/http"
	webhandler "github.com/calebdraper/inkwell/internal/adapter/driving/web"
	"github.com/calebdraper/inkwell/internal/application"
	"github.com/calebdraper/inkwell/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"session_ttl", cfg.SessionTTL,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := db.Migrate(); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	articleStore := sqliteadapter.NewArticleRepo(db)
	userStore := sqliteadapter.NewUserRepo(db)
	sessionStore := sqliteadapter.NewSessionRepo(db)

	// 6. Create services.
	articleSvc := application.NewArticleService(articleStore, slog.Default())
	authSvc := application.NewAuthService(userStore, sessionStore, cfg.SessionTTL, cfg.BcryptCost, slog.Default())

	// 6b. Sweep expired sessions periodically so the table does not grow
	// without bound. Expired sessions are also rejected on sight during
	// validation, so the sweep cadence is not correctness-critical.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := sessionStore.DeleteExpired(ctx, time.Now().UTC()); err != nil {
					slog.Warn("expired session sweep failed", "error", err)
				}
			}
		}
	}()

	// 7. Create HTTP handler and register API routes.
	apiHandler := httphandler.NewHandler(articleSvc, slog.Default())
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, apiHandler)

	// 7b. Create web handler and register GUI routes.
	webHandler, err := webhandler.NewHandler(articleSvc, authSvc, cfg.SessionTTL, slog.Default())
	if err != nil {
		return err
	}
	webhandler.RegisterRoutes(mux, webHandler)

	// Apply middleware. The authorization gate wraps the mux so every route,
	// API and GUI alike, passes through the same rule list; recovery and
	// request logging wrap the gate.
	gate := webhandler.NewGate(webhandler.DefaultRules(), authSvc)
	handler := httphandler.ApplyMiddleware(gate.Middleware(mux), slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("inkwell started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
