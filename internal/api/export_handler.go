package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"time"

	"github.com/reelpack/reelpack-agent/internal/bundle"
	"github.com/reelpack/reelpack-agent/internal/exports"
)

// exportHandler runs one packaging run synchronously. Any completed run is a
// 200, even with stage errors in the body; only a failed bundle-directory
// allocation is a 500.
func exportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bundle.ExportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		if req.OutputRoot == "" {
			req.OutputRoot = cfg.DefaultOutputRoot
		}
		if err := bundle.ValidateOutputRoot(req.OutputRoot); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		report, err := cfg.Packager.Package(r.Context(), &req)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "EXPORT_FAILED")
			return
		}

		run := &exports.Run{
			ID:              exports.NewID(),
			BundleName:      filepath.Base(report.BundlePath),
			BundlePath:      report.BundlePath,
			ArtifactCount:   len(report.Exported),
			ErrorCount:      len(report.Errors),
			MetadataApplied: report.MetadataApplied,
			FinalFilename:   report.FinalFilename,
			CreatedAt:       time.Now(),
		}
		if err := cfg.Repository.CreateRun(r.Context(), run); err != nil {
			cfg.Logger.Error("failed to record export run", "error", err, "bundle", report.BundlePath)
		} else if cfg.OnRunRecorded != nil {
			cfg.OnRunRecorded(run)
		}

		WriteJSON(w, http.StatusOK, report)
	}
}
