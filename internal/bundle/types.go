// Package bundle assembles the outputs of one video-production run (script
// text, scene table, rendered video, voice clips, stock footage) into a
// single output folder, with per-stage failure isolation: one stage failing
// never aborts or corrupts the others.
package bundle

import (
	"fmt"

	"github.com/reelpack/reelpack-agent/internal/metadata"
)

// Stage tags used in report errors.
const (
	StageAllocate       = "allocate"
	StageScript         = "script"
	StageSceneTable     = "scene_table"
	StageKeywords       = "keywords"
	StagePrompts        = "prompts"
	StageFinalVideo     = "final_video"
	StageMetadata       = "metadata_rewrite"
	StageVoiceArchive   = "voice_archive"
	StageFootageArchive = "footage_archive"
)

// Artifact filenames inside a bundle.
const (
	ScriptFilename     = "script_full.txt"
	SceneCSVFilename   = "scenes.csv"
	KeywordsFilename   = "keywords.txt"
	PromptsFilename    = "prompts.txt"
	VideoBasename      = "final_video"
	VoiceArchiveName   = "voices.zip"
	FootageArchiveName = "footage.zip"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".avi":  true,
	".webm": true,
}

// Scene is one scripted scene. IDs are unique but not necessarily
// contiguous; written artifacts always sort by ID ascending.
type Scene struct {
	ID          int      `json:"id"`
	Content     string   `json:"content"`
	Keywords    []string `json:"keywords,omitempty"`
	ImagePrompt string   `json:"image_prompt,omitempty"`
	VideoPrompt string   `json:"video_prompt,omitempty"`
}

// StageFlags enables individual pipeline stages. Any subset may be set.
type StageFlags struct {
	Script          bool `json:"script"`
	SceneTable      bool `json:"scene_table"`
	FinalVideo      bool `json:"final_video"`
	VoiceArchive    bool `json:"voice_archive"`
	FootageArchive  bool `json:"footage_archive"`
	Keywords        bool `json:"keywords"`
	Prompts         bool `json:"prompts"`
	MetadataRewrite bool `json:"metadata_rewrite"`
}

// ExportRequest is the immutable input to one packaging run.
type ExportRequest struct {
	OutputRoot     string           `json:"output_root"`
	BundleName     string           `json:"bundle_name,omitempty"`
	Stages         StageFlags       `json:"stages"`
	FullScript     string           `json:"full_script,omitempty"`
	Scenes         []Scene          `json:"scenes,omitempty"`
	VoiceFiles     []string         `json:"voice_files,omitempty"`
	FootageFiles   []string         `json:"footage_files,omitempty"`
	FinalVideoPath string           `json:"final_video_path,omitempty"`
	Metadata       *metadata.Record `json:"metadata,omitempty"`
}

// Artifact describes one file written into the bundle. Count is set for
// archives only.
type Artifact struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

// StageError is one recorded, non-fatal stage failure.
type StageError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// ExportReport is the outcome of one packaging run. Exported and Errors
// together are the source of truth for what the bundle contains; a run that
// returned a report always completed every enabled stage.
type ExportReport struct {
	BundlePath      string       `json:"bundle_path"`
	Exported        []Artifact   `json:"exported"`
	Errors          []StageError `json:"errors"`
	MetadataApplied bool         `json:"metadata_applied"`
	FinalFilename   string       `json:"final_filename,omitempty"`
}

// Stages append into the report through these two methods only, so the
// ledger stays single-owner and its ordering deterministic.
func (r *ExportReport) addArtifact(name string, count int) {
	r.Exported = append(r.Exported, Artifact{Name: name, Count: count})
}

func (r *ExportReport) recordError(stage string, err error) {
	r.Errors = append(r.Errors, StageError{Stage: stage, Message: err.Error()})
}

func (r *ExportReport) recordErrorf(stage, format string, args ...any) {
	r.Errors = append(r.Errors, StageError{Stage: stage, Message: fmt.Sprintf(format, args...)})
}
