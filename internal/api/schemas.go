package api

import (
	"time"

	"github.com/reelpack/reelpack-agent/internal/exports"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	UptimeS  int64  `json:"uptime_s"`
	DeviceID string `json:"device_id"`
}

type StatusResponse struct {
	State     string       `json:"state"`
	RunsTotal int          `json:"runs_total"`
	LastRun   *RunResponse `json:"last_run,omitempty"`
	LastError string       `json:"last_error,omitempty"`
}

type RunResponse struct {
	ID              string `json:"id"`
	BundleName      string `json:"bundle_name"`
	BundlePath      string `json:"bundle_path"`
	ArtifactCount   int    `json:"artifact_count"`
	ErrorCount      int    `json:"error_count"`
	MetadataApplied bool   `json:"metadata_applied"`
	FinalFilename   string `json:"final_filename,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type RunsResponse struct {
	Runs []RunResponse `json:"runs"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func RunToResponse(run *exports.Run) RunResponse {
	return RunResponse{
		ID:              run.ID,
		BundleName:      run.BundleName,
		BundlePath:      run.BundlePath,
		ArtifactCount:   run.ArtifactCount,
		ErrorCount:      run.ErrorCount,
		MetadataApplied: run.MetadataApplied,
		FinalFilename:   run.FinalFilename,
		CreatedAt:       run.CreatedAt.Format(time.RFC3339),
	}
}
