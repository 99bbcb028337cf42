package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// buildArchive builds <name> inside the bundle from the given source paths
// using deflate compression. Missing sources are skipped with a warning; if
// nothing was added the empty archive is deleted so the bundle never carries
// a misleading zero-entry zip.
func buildArchive(bundlePath, name string, sources []string, logger *slog.Logger) (int, error) {
	archivePath := filepath.Join(bundlePath, name)

	f, err := os.Create(archivePath)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", name, err)
	}

	zw := zip.NewWriter(f)
	added := 0

	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil || info.IsDir() {
			if logger != nil {
				logger.Warn("archive source missing, skipping", "archive", name, "source", src)
			}
			continue
		}

		if err := addArchiveEntry(zw, src, info); err != nil {
			zw.Close()
			f.Close()
			os.Remove(archivePath)
			return 0, fmt.Errorf("add %s to %s: %w", filepath.Base(src), name, err)
		}
		added++
	}

	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(archivePath)
		return 0, fmt.Errorf("finalize %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(archivePath)
		return 0, fmt.Errorf("finalize %s: %w", name, err)
	}

	if added == 0 {
		os.Remove(archivePath)
		return 0, fmt.Errorf("%s: no files found", name)
	}
	return added, nil
}

func addArchiveEntry(zw *zip.Writer, src string, info os.FileInfo) error {
	hdr := &zip.FileHeader{
		Name:     filepath.Base(src),
		Method:   zip.Deflate,
		Modified: info.ModTime(),
	}

	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	_, err = io.Copy(w, in)
	return err
}

// resolveVoiceRefs resolves bare voice filenames against the voice output
// directory. Absolute references pass through unchanged.
func resolveVoiceRefs(voiceDir string, refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if filepath.IsAbs(ref) || voiceDir == "" {
			out = append(out, ref)
			continue
		}
		out = append(out, filepath.Join(voiceDir, ref))
	}
	return out
}
