package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/reelpack/reelpack-agent/internal/config"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))
		r.Post("/export", exportHandler(cfg))
		r.Get("/exports", listRunsHandler(cfg))
		r.Get("/exports/{id}", getRunHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:   "ok",
			Version:  config.Version,
			UptimeS:  uptime,
			DeviceID: cfg.DeviceID,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		total, err := cfg.Repository.CountRuns(ctx)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to read run history", "INTERNAL_ERROR")
			return
		}
		runs, err := cfg.Repository.ListRuns(ctx, 1)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to read run history", "INTERNAL_ERROR")
			return
		}

		resp := StatusResponse{
			State:     "idle",
			RunsTotal: total,
		}
		if len(runs) > 0 {
			last := RunToResponse(runs[0])
			resp.LastRun = &last
			if runs[0].ErrorCount > 0 {
				resp.State = "degraded"
			}
		}

		WriteJSON(w, http.StatusOK, resp)
	}
}

func listRunsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := cfg.Repository.ListRuns(r.Context(), 50)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list export runs", "INTERNAL_ERROR")
			return
		}

		resp := RunsResponse{Runs: make([]RunResponse, len(runs))}
		for i, run := range runs {
			resp.Runs[i] = RunToResponse(run)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func getRunHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "run id required", "BAD_REQUEST")
			return
		}

		run, err := cfg.Repository.GetRun(r.Context(), id)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		if run == nil {
			WriteError(w, http.StatusNotFound, "run not found", "NOT_FOUND")
			return
		}

		WriteJSON(w, http.StatusOK, RunToResponse(run))
	}
}
