// Package exports persists a summary of every packaging run so the API can
// serve run history. The packaging pipeline itself never writes here; the
// handler records the outcome around the call.
package exports

import (
	"time"

	"github.com/google/uuid"
)

// Run is one recorded packaging run.
type Run struct {
	ID              string    `json:"id"`
	BundleName      string    `json:"bundle_name"`
	BundlePath      string    `json:"bundle_path"`
	ArtifactCount   int       `json:"artifact_count"`
	ErrorCount      int       `json:"error_count"`
	MetadataApplied bool      `json:"metadata_applied"`
	FinalFilename   string    `json:"final_filename,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewID returns a short run identifier.
func NewID() string {
	return uuid.NewString()[:8]
}
