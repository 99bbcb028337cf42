package bundle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reelpack/reelpack-agent/internal/metadata"
)

// rewriteMetadata replaces the bundled video with a renamed copy carrying
// injected metadata. Preconditions short-circuit with a recorded error, and
// the original is deleted only after the replacement's full write has been
// confirmed, so the bundle always ends up with exactly one playable video.
func (p *Packager) rewriteMetadata(ctx context.Context, bundlePath string, rec *metadata.Record, report *ExportReport) {
	if len(report.Exported) == 0 {
		report.recordErrorf(StageMetadata, "nothing exported, metadata rewrite skipped")
		return
	}
	if err := guardRecord(rec); err != nil {
		report.recordError(StageMetadata, err)
		return
	}

	videoPath, err := findBundleVideo(bundlePath)
	if err != nil {
		report.recordError(StageMetadata, err)
		return
	}

	ext := filepath.Ext(videoPath)
	targetName := p.proc.FilenameFor(rec, ext)
	// Temp file keeps the video extension so a rename failure after the
	// original's deletion still leaves a playable file behind.
	tmpPath := filepath.Join(bundlePath, ".rewrite_tmp"+ext)

	if err := p.proc.Rewrite(ctx, videoPath, tmpPath, rec); err != nil {
		os.Remove(tmpPath)
		report.recordErrorf(StageMetadata, "metadata rewrite failed: %v", err)
		return
	}

	info, err := os.Stat(tmpPath)
	if err != nil || info.Size() == 0 {
		os.Remove(tmpPath)
		report.recordErrorf(StageMetadata, "metadata rewrite produced no output")
		return
	}

	if err := os.Remove(videoPath); err != nil {
		os.Remove(tmpPath)
		report.recordErrorf(StageMetadata, "remove original video: %v", err)
		return
	}
	if err := os.Rename(tmpPath, filepath.Join(bundlePath, targetName)); err != nil {
		report.recordErrorf(StageMetadata, "rename rewritten video: %v", err)
		return
	}

	report.MetadataApplied = true
	report.FinalFilename = targetName
}

// guardRecord refuses a rewrite that would strip metadata from the video: a
// record with neither a primary keyword nor a title carries no signal and
// must be rejected, not applied as blank.
func guardRecord(rec *metadata.Record) error {
	if rec == nil {
		return fmt.Errorf("no metadata record supplied")
	}
	if strings.TrimSpace(rec.PrimaryKeyword) == "" && strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("metadata record incomplete: primary keyword and title both empty")
	}
	return nil
}

// findBundleVideo returns the first video file in the bundle directory. At
// most one final video is ever copied in per run.
func findBundleVideo(bundlePath string) (string, error) {
	entries, err := os.ReadDir(bundlePath)
	if err != nil {
		return "", fmt.Errorf("scan bundle directory: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if videoExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			return filepath.Join(bundlePath, e.Name()), nil
		}
	}
	return "", fmt.Errorf("no video file found in bundle")
}
