package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWritePrompts_Format(t *testing.T) {
	dir := t.TempDir()

	scenes := []Scene{
		{ID: 2, ImagePrompt: "a foggy pier"},
		{ID: 1, VideoPrompt: "slow dolly in", ImagePrompt: "dim alley"},
		{ID: 3},
	}

	written, err := writePrompts(dir, scenes)
	if err != nil {
		t.Fatalf("writePrompts() error = %v", err)
	}
	if !written {
		t.Fatal("expected prompts file to be written")
	}

	data, err := os.ReadFile(filepath.Join(dir, PromptsFilename))
	if err != nil {
		t.Fatalf("read prompts: %v", err)
	}
	content := string(data)

	want := "=== Scene 1 ===\n[Video Prompt]\nslow dolly in\n[Image Prompt]\ndim alley\n\n=== Scene 2 ===\n[Image Prompt]\na foggy pier\n"
	if content != want {
		t.Fatalf("prompts content = %q, want %q", content, want)
	}
	if strings.Contains(content, "Scene 3") {
		t.Fatal("scene without prompts must be omitted")
	}
}

func TestWritePrompts_NoQualifyingScenes(t *testing.T) {
	dir := t.TempDir()

	written, err := writePrompts(dir, []Scene{{ID: 1, Content: "no prompts"}})
	if err != nil {
		t.Fatalf("writePrompts() error = %v", err)
	}
	if written {
		t.Fatal("no scene qualifies, nothing should be written")
	}
	if _, err := os.Stat(filepath.Join(dir, PromptsFilename)); !os.IsNotExist(err) {
		t.Fatal("prompts.txt must not exist")
	}
}

func TestWriteKeywords_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()

	scenes := []Scene{
		{ID: 5, Keywords: []string{"harbor", "night"}},
		{ID: 2, Keywords: []string{"rain"}},
		{ID: 3},
	}

	written, err := writeKeywords(dir, scenes)
	if err != nil {
		t.Fatalf("writeKeywords() error = %v", err)
	}
	if !written {
		t.Fatal("expected keywords file")
	}

	data, err := os.ReadFile(filepath.Join(dir, KeywordsFilename))
	if err != nil {
		t.Fatalf("read keywords: %v", err)
	}

	want := "Scene 2: rain\nScene 5: harbor, night\n"
	if string(data) != want {
		t.Fatalf("keywords content = %q, want %q", data, want)
	}
}

func TestWriteKeywords_NoneQualify(t *testing.T) {
	dir := t.TempDir()

	written, err := writeKeywords(dir, []Scene{{ID: 1}, {ID: 2}})
	if err != nil {
		t.Fatalf("writeKeywords() error = %v", err)
	}
	if written {
		t.Fatal("keywords file must be omitted when no scene has keywords")
	}
}

func TestWriteSceneCSV_QuotesEmbeddedCommas(t *testing.T) {
	dir := t.TempDir()

	err := writeSceneCSV(dir, []Scene{{ID: 1, Content: "rain, then thunder"}})
	if err != nil {
		t.Fatalf("writeSceneCSV() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, SceneCSVFilename))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.Contains(string(data), `"rain, then thunder"`) {
		t.Fatalf("embedded comma not quoted: %q", data)
	}
}

func TestWriteFileAtomic_NoTempLeftBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	if err := writeFileAtomic(path, []byte("payload")); err != nil {
		t.Fatalf("writeFileAtomic() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.txt" {
		t.Fatalf("dir entries = %v, want only out.txt", entries)
	}
}
