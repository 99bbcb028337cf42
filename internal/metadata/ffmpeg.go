package metadata

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

const hashPrefixSize = 64 * 1024

// FFmpegProcessor injects metadata by remuxing with ffmpeg. All streams are
// copied bit-exact (-map 0 -c copy); only container-level tags change.
type FFmpegProcessor struct {
	binPath string
	logger  *slog.Logger
}

// NewFFmpegProcessor resolves the ffmpeg binary (binPath, or "ffmpeg" on
// PATH when empty) and returns a processor bound to it.
func NewFFmpegProcessor(binPath string, logger *slog.Logger) (*FFmpegProcessor, error) {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	resolved, err := exec.LookPath(binPath)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not available: %w", err)
	}
	return &FFmpegProcessor{binPath: resolved, logger: logger}, nil
}

func (p *FFmpegProcessor) FilenameFor(rec *Record, ext string) string {
	return FilenameFor(rec, ext)
}

func (p *FFmpegProcessor) Rewrite(ctx context.Context, src, dest string, rec *Record) error {
	args := []string{"-y", "-i", src, "-map", "0", "-c", "copy"}

	title := rec.Title
	if title == "" {
		title = rec.PrimaryKeyword
	}
	args = append(args, "-metadata", "title="+title)

	if rec.Description != "" {
		args = append(args, "-metadata", "description="+rec.Description)
	}
	if keywords := joinKeywords(rec); keywords != "" {
		args = append(args, "-metadata", "comment="+keywords)
	}
	if rec.Channel != "" {
		args = append(args, "-metadata", "artist="+rec.Channel)
	}
	args = append(args, dest)

	cmd := exec.CommandContext(ctx, p.binPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if p.logger != nil {
		p.logger.Debug("running ffmpeg metadata rewrite", "src", src, "dest", dest)
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg rewrite failed: %w: %s", err, tailLines(stderr.String(), 3))
	}
	return nil
}

// ContentHash fingerprints a file from its leading bytes plus its size, the
// same scheme used to deduplicate variant outputs.
func (p *FFmpegProcessor) ContentHash(path string) (string, error) {
	return contentHash(path)
}

func contentHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, io.LimitReader(f, hashPrefixSize)); err != nil {
		return "", err
	}

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(h, ":%d", info.Size())

	return hex.EncodeToString(h.Sum(nil)), nil
}

func joinKeywords(rec *Record) string {
	var parts []string
	if rec.PrimaryKeyword != "" {
		parts = append(parts, rec.PrimaryKeyword)
	}
	parts = append(parts, rec.SecondaryKeywords...)
	parts = append(parts, rec.Tags...)
	return strings.Join(parts, ", ")
}

func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
