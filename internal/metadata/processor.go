// Package metadata injects descriptive container metadata into rendered
// videos. The packaging pipeline treats the Processor as an external
// collaborator: it derives an output filename from a metadata record and
// produces a rewritten copy of a video without mutating the source file.
package metadata

import (
	"context"
	"strings"
)

// Record is the descriptive metadata attached to one finished video.
type Record struct {
	PrimaryKeyword    string   `json:"primary_keyword"`
	SecondaryKeywords []string `json:"secondary_keywords,omitempty"`
	Title             string   `json:"title"`
	Description       string   `json:"description,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	FilenameHint      string   `json:"filename_hint,omitempty"`
	Channel           string   `json:"channel,omitempty"`
	Platform          string   `json:"platform,omitempty"`
}

// Processor rewrites a video file with injected metadata.
//
// Rewrite must write a complete, independently valid file at dest and must
// never modify src. Callers own the temp-then-rename choreography around it.
type Processor interface {
	FilenameFor(rec *Record, ext string) string
	Rewrite(ctx context.Context, src, dest string, rec *Record) error
	ContentHash(path string) (string, error)
}

// FilenameFor derives a filesystem-safe output filename from a record.
// Preference order: explicit filename hint, then title, then primary keyword.
func FilenameFor(rec *Record, ext string) string {
	base := rec.FilenameHint
	if base == "" {
		base = rec.Title
	}
	if base == "" {
		base = rec.PrimaryKeyword
	}

	base = SanitizeName(base, 120)
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" {
		base = "final_video"
	}
	return base + ext
}
