package bundle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// copyFinalVideo copies the rendered video into the bundle as
// final_video<ext>, byte-for-byte. The metadata rewrite stage operates on
// this copy, never on the caller's original.
func copyFinalVideo(bundlePath, srcPath string) (string, error) {
	info, err := os.Stat(srcPath)
	if err != nil {
		return "", fmt.Errorf("final video not found: %s", srcPath)
	}
	if info.IsDir() {
		return "", fmt.Errorf("final video is a directory: %s", srcPath)
	}

	name := VideoBasename + filepath.Ext(srcPath)
	destPath := filepath.Join(bundlePath, name)

	if err := copyFile(srcPath, destPath); err != nil {
		return "", fmt.Errorf("copy final video: %w", err)
	}
	return name, nil
}

// copyFile copies via a temp file and renames, so the destination is either
// complete or absent.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
