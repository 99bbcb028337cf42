package metadata

import (
	"context"
	"errors"
	"log/slog"
)

// StubProcessor stands in when ffmpeg is not installed. Filename derivation
// and hashing still work, but Rewrite always refuses: a byte-copy would let
// the run report injected metadata that was never written, so the stage
// records an error and the original video stays in place instead.
type StubProcessor struct {
	logger *slog.Logger
}

func NewStubProcessor(logger *slog.Logger) *StubProcessor {
	return &StubProcessor{logger: logger}
}

func (p *StubProcessor) FilenameFor(rec *Record, ext string) string {
	return FilenameFor(rec, ext)
}

func (p *StubProcessor) Rewrite(ctx context.Context, src, dest string, rec *Record) error {
	if p.logger != nil {
		p.logger.Warn("metadata rewrite skipped: ffmpeg unavailable", "src", src)
	}
	return errors.New("ffmpeg unavailable: metadata injection skipped")
}

func (p *StubProcessor) ContentHash(path string) (string, error) {
	return contentHash(path)
}
