package bundle

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// utf8BOM makes scenes.csv open correctly in spreadsheet applications.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// writeScript writes the full script verbatim. An empty script is an
// omission, not a failure: the caller skips the stage entirely.
func writeScript(bundlePath, script string) error {
	return writeFileAtomic(filepath.Join(bundlePath, ScriptFilename), []byte(script))
}

// writeSceneCSV writes the scene table sorted by scene ID ascending,
// UTF-8 with byte-order mark.
func writeSceneCSV(bundlePath string, scenes []Scene) error {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"scene_id", "content", "image_prompt", "video_prompt"}); err != nil {
		return err
	}
	for _, sc := range sortedScenes(scenes) {
		row := []string{strconv.Itoa(sc.ID), sc.Content, sc.ImagePrompt, sc.VideoPrompt}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return writeFileAtomic(filepath.Join(bundlePath, SceneCSVFilename), buf.Bytes())
}

// writeKeywords emits one line per scene that carries at least one keyword.
// Returns false without writing when no scene qualifies.
func writeKeywords(bundlePath string, scenes []Scene) (bool, error) {
	var lines []string
	for _, sc := range sortedScenes(scenes) {
		if len(sc.Keywords) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("Scene %d: %s", sc.ID, strings.Join(sc.Keywords, ", ")))
	}
	if len(lines) == 0 {
		return false, nil
	}

	content := strings.Join(lines, "\n") + "\n"
	if err := writeFileAtomic(filepath.Join(bundlePath, KeywordsFilename), []byte(content)); err != nil {
		return false, err
	}
	return true, nil
}

// writePrompts emits one block per scene with a non-empty image or video
// prompt. Returns false without writing when no scene qualifies.
func writePrompts(bundlePath string, scenes []Scene) (bool, error) {
	var blocks []string
	for _, sc := range sortedScenes(scenes) {
		if sc.ImagePrompt == "" && sc.VideoPrompt == "" {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "=== Scene %d ===\n", sc.ID)
		if sc.VideoPrompt != "" {
			b.WriteString("[Video Prompt]\n")
			b.WriteString(sc.VideoPrompt)
			b.WriteString("\n")
		}
		if sc.ImagePrompt != "" {
			b.WriteString("[Image Prompt]\n")
			b.WriteString(sc.ImagePrompt)
			b.WriteString("\n")
		}
		blocks = append(blocks, b.String())
	}
	if len(blocks) == 0 {
		return false, nil
	}

	content := strings.Join(blocks, "\n")
	if err := writeFileAtomic(filepath.Join(bundlePath, PromptsFilename), []byte(content)); err != nil {
		return false, err
	}
	return true, nil
}

func sortedScenes(scenes []Scene) []Scene {
	out := make([]Scene, len(scenes))
	copy(out, scenes)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// writeFileAtomic writes to a sibling temp file and renames it into place,
// so an interrupted write never leaves a partial artifact.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
