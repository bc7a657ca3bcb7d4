package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/extract"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/navigate"
	"github.com/sells-group/leadgen-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extraction API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		nav := initNavigator()
		router := newRouter(nav, st)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		go drainOnDone(ctx, srv, 10*time.Second)

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		return nil
	},
}

// drainOnDone waits for ctx, then gracefully shuts the server down.
// The signal context is already done at that point, so the drain runs
// on a fresh timeout context.
func drainOnDone(ctx context.Context, srv *http.Server, timeout time.Duration) {
	<-ctx.Done()
	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("server shutdown", zap.Error(err))
	}
}

// newRouter builds the HTTP surface. Split from the command so tests
// can drive it with httptest.
func newRouter(nav *navigate.Client, st store.Store) http.Handler {
	extractor := extract.New(nav)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/extract", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			URL  string `json:"url"`
			HTML string `json:"html"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.URL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		snap, err := snapshotFor(req, nav, body.URL, body.HTML)
		if err != nil {
			zap.L().Warn("extract snapshot failed",
				zap.String("url", body.URL),
				zap.Error(err),
			)
			writeError(w, http.StatusBadGateway, "could not fetch page")
			return
		}

		record := extractor.Extract(req.Context(), snap)
		writeJSON(w, http.StatusOK, record)
	})

	r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
		limit := 50
		if raw := req.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		runs, err := st.ListRuns(req.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "list runs failed")
			return
		}
		writeJSON(w, http.StatusOK, runs)
	})

	r.Get("/runs/{id}", func(w http.ResponseWriter, req *http.Request) {
		runID := chi.URLParam(req, "id")
		run, err := st.GetRun(req.Context(), runID)
		if err != nil {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}

		resp := map[string]any{"run": run}
		switch run.Kind {
		case store.RunKindCompanies:
			companies, err := st.ListCompanies(req.Context(), runID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "list companies failed")
				return
			}
			resp["companies"] = companies
		default:
			leads, err := st.ListLeads(req.Context(), runID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "list leads failed")
				return
			}
			resp["leads"] = leads
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return r
}

// snapshotFor builds a snapshot from inline HTML when the caller
// supplies it, otherwise fetches the URL live.
func snapshotFor(req *http.Request, nav *navigate.Client, url, html string) (*model.PageSnapshot, error) {
	if html != "" {
		return navigate.BuildSnapshot(url, html)
	}
	return nav.Snapshot(req.Context(), url)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
