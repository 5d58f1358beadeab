package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"Formulary/internal/auth"
	"Formulary/internal/calc"
	"Formulary/internal/calc/batch"
	"Formulary/internal/calc/embed"
	"Formulary/internal/calc/importer"
	"Formulary/internal/calc/report"
	"Formulary/internal/config"
	"Formulary/internal/history"
	"Formulary/internal/logging"
	"Formulary/internal/repo"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HandleList builds the router. Accounts and history are mounted only when
// store is non-nil.
func HandleList(cfg *config.Config, log *zap.Logger, store repo.Repository) http.Handler {
	router := mux.NewRouter()
	reg := calc.Default

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	calcH := calc.NewHandler(reg, log)
	batchH := &batch.Handler{Registry: reg, Log: log}
	calcH.Register(api)
	batchH.Register(api)
	(&importer.Handler{Batch: batchH}).Register(api)
	(&report.Handler{Registry: reg, Log: log}).Register(api)
	(&embed.Handler{Registry: reg, Log: log}).Register(router)

	if store != nil {
		authEnv := &auth.Env{Key: []byte(cfg.TokenKey), Repo: store, Log: log, Secure: cfg.TLS()}
		api.HandleFunc("/register", authEnv.RegisterHandler).Methods(http.MethodPost)
		api.HandleFunc("/login", authEnv.LoginHandler).Methods(http.MethodPost)
		api.HandleFunc("/logout", authEnv.LogoutHandler).Methods(http.MethodPost)

		secureAPI := api.PathPrefix("/user").Subrouter()
		secureAPI.Use(authEnv.Middleware)
		history.NewHandler(store, log).Register(secureAPI, calcH)
	}

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		calc.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return logging.Middleware(log)(CORS(router))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
	log.Info("server stopped")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var store repo.Repository
	if cfg.HistoryEnabled() {
		db, r, err := repo.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()
		store = r
		log.Info("database ready", zap.String("driver", cfg.Database.Driver))
	} else {
		log.Info("no database configured; accounts and history are disabled")
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           HandleList(cfg, log, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS()))
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
