package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/reelpack/reelpack-agent/internal/metadata"
)

// Packager runs the packaging pipeline. Stages execute in a fixed order,
// each gated by its flag and its own data availability; a failing stage is
// recorded in the report and never stops the stages after it. Only the
// directory allocation step can fail the run as a whole.
type Packager struct {
	voiceDir string
	proc     metadata.Processor
	logger   *slog.Logger
	now      func() time.Time
}

func NewPackager(voiceDir string, proc metadata.Processor, logger *slog.Logger) *Packager {
	return &Packager{
		voiceDir: voiceDir,
		proc:     proc,
		logger:   logger,
		now:      time.Now,
	}
}

// Package executes one packaging run and returns the aggregate report.
// The returned error is non-nil only when the bundle directory could not be
// allocated; every other failure surfaces inside Report.Errors, so callers
// must inspect that list to detect partial failure.
func (p *Packager) Package(ctx context.Context, req *ExportRequest) (*ExportReport, error) {
	report := &ExportReport{
		Exported: []Artifact{},
		Errors:   []StageError{},
	}

	bundlePath, err := allocateBundleDir(req.OutputRoot, req.BundleName, p.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StageAllocate, err)
	}
	report.BundlePath = bundlePath

	log := p.logger
	if log != nil {
		log = log.With("bundle", bundlePath)
		log.Info("packaging run started")
	}

	if req.Stages.Script && req.FullScript != "" {
		if err := writeScript(bundlePath, req.FullScript); err != nil {
			report.recordError(StageScript, err)
		} else {
			report.addArtifact(ScriptFilename, 0)
		}
	}

	if req.Stages.SceneTable {
		if err := writeSceneCSV(bundlePath, req.Scenes); err != nil {
			report.recordError(StageSceneTable, err)
		} else {
			report.addArtifact(SceneCSVFilename, 0)
		}
	}

	if req.Stages.Keywords {
		written, err := writeKeywords(bundlePath, req.Scenes)
		if err != nil {
			report.recordError(StageKeywords, err)
		} else if written {
			report.addArtifact(KeywordsFilename, 0)
		}
	}

	if req.Stages.Prompts {
		written, err := writePrompts(bundlePath, req.Scenes)
		if err != nil {
			report.recordError(StagePrompts, err)
		} else if written {
			report.addArtifact(PromptsFilename, 0)
		}
	}

	if req.Stages.FinalVideo && req.FinalVideoPath != "" {
		name, err := copyFinalVideo(bundlePath, req.FinalVideoPath)
		if err != nil {
			report.recordError(StageFinalVideo, err)
		} else {
			report.addArtifact(name, 0)
		}
	}

	if req.Stages.MetadataRewrite {
		p.rewriteMetadata(ctx, bundlePath, req.Metadata, report)
	}

	if req.Stages.VoiceArchive && len(req.VoiceFiles) > 0 {
		sources := resolveVoiceRefs(p.voiceDir, req.VoiceFiles)
		p.archiveStage(report, StageVoiceArchive, bundlePath, VoiceArchiveName, sources)
	}

	if req.Stages.FootageArchive && len(req.FootageFiles) > 0 {
		p.archiveStage(report, StageFootageArchive, bundlePath, FootageArchiveName, req.FootageFiles)
	}

	if log != nil {
		log.Info("packaging run finished",
			"exported", len(report.Exported),
			"errors", len(report.Errors),
			"metadata_applied", report.MetadataApplied,
		)
	}
	return report, nil
}

func (p *Packager) archiveStage(report *ExportReport, stage, bundlePath, name string, sources []string) {
	added, err := buildArchive(bundlePath, name, sources, p.logger)
	if err != nil {
		report.recordError(stage, err)
		return
	}
	report.addArtifact(name, added)
}
