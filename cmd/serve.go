package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/anviksha/anviksha/internal/cpi"
	"github.com/anviksha/anviksha/internal/detect"
	"github.com/anviksha/anviksha/internal/ingest"
	"github.com/anviksha/anviksha/internal/model"
)

var (
	serveCSV     string
	serveDataset string
	serveSample  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis engine as a JSON API",
	Long: `Loads one dataset at startup and exposes it over HTTP. The server owns
and holds the dataset; the engine itself stays stateless, so filtered
analysis requests can run concurrently.

Endpoints:
  GET  /health
  GET  /api/summary?district=&department=
  GET  /api/observations?district=&department=
  GET  /api/analyze?district=&department=
  GET  /api/methodology
  POST /api/flag            (text/csv body, runs the flag-mode profile)`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveCSV, "csv", "", "path to a procurement CSV to serve")
	f.StringVar(&serveDataset, "dataset", "", "stored dataset id to serve")
	f.BoolVar(&serveSample, "sample", true, "serve the embedded sample dataset (default)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	records, err := loadRecords(ctx, serveCSV, serveDataset, serveSample)
	if err != nil {
		return eris.Wrap(err, "serve: load records")
	}

	p, err := newPipeline(0)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))
	r.Use(rateLimit(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/summary", func(w http.ResponseWriter, req *http.Request) {
		result := p.Run(records, filterFromQuery(req))
		writeJSON(w, http.StatusOK, map[string]any{
			"summary":   result.Summary,
			"narrative": result.Narrative,
		})
	})

	r.Get("/api/observations", func(w http.ResponseWriter, req *http.Request) {
		result := p.Run(records, filterFromQuery(req))
		writeJSON(w, http.StatusOK, result.Observations)
	})

	r.Get("/api/analyze", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, p.Run(records, filterFromQuery(req)))
	})

	r.Get("/api/methodology", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"analysis":  detect.Methodology(),
			"inflation": cpi.Info(p.BaseYear()),
		})
	})

	r.Post("/api/flag", func(w http.ResponseWriter, req *http.Request) {
		uploaded, err := ingest.ParseCSV(req.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not parse csv"})
			return
		}
		writeJSON(w, http.StatusOK, p.Flag(uploaded, model.Filter{}))
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(cmd.Context())
	}()

	zap.L().Info("serving analysis API",
		zap.Int("port", cfg.Server.Port),
		zap.Int("records", len(records)),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "serve: listen")
	}
	return nil
}

// rateLimit applies a process-wide token bucket to all requests.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func filterFromQuery(req *http.Request) model.Filter {
	return model.Filter{
		District:   req.URL.Query().Get("district"),
		Department: req.URL.Query().Get("department"),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("serve: encode response", zap.Error(err))
	}
}

